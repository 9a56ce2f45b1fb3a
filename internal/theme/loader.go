package theme

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const themeExt = ".theme"

// Loader finds themes by name. Themes shipped in the binary win over the
// user's config directory, which wins over the system directory.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader returns a Loader using the standard directories.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "imagetweaks", "themes"),
		SystemDir: "/usr/share/imagetweaks/themes",
	}
}

func (l *Loader) sources() []fs.FS {
	srcs := []fs.FS{mustSub(EmbeddedThemes, "defaults")}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir != "" {
			srcs = append(srcs, os.DirFS(dir))
		}
	}
	return srcs
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Load returns the theme called name. An existing file path is read
// directly; otherwise name is looked up, with or without the .theme suffix,
// in each source. An empty name is the default theme.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return parseFile(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}
	file := name
	if !strings.HasSuffix(file, themeExt) {
		file += themeExt
	}
	if !fs.ValidPath(file) || strings.Contains(file, "/") {
		return nil, fmt.Errorf("theme %q not found", name)
	}
	for _, src := range l.sources() {
		if _, err := fs.Stat(src, file); err == nil {
			return parseFile(src, file)
		}
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

// Available lists the theme names Load can find by name, sorted and without
// duplicates.
func (l *Loader) Available() []string {
	seen := map[string]bool{}
	for _, src := range l.sources() {
		matches, err := fs.Glob(src, "*"+themeExt)
		if err != nil {
			continue
		}
		for _, m := range matches {
			seen[strings.TrimSuffix(m, themeExt)] = true
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func parseFile(fsys fs.FS, name string) (*Theme, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", name, err)
	}
	return t, nil
}
