package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/example/imagetweaks/internal/theme"
)

// EnvTheme overrides the configured theme name.
const EnvTheme = "IMAGETWEAKS_THEME"

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme         string
	SaveDir       string
	Format        string // png or jpg, used when an output name has no extension
	JPEGQuality   int
	HistoryLimit  int // 0 keeps every action
	ToolbarLayout string
	Notify        Notify
	Themes        map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:       "", // Default to empty to allow fallback to Env/Default
		Format:      "png",
		JPEGQuality: 95,
		Themes:      make(map[string]*theme.Theme),
	}
}

// ThemeName resolves the theme to use: flag, then environment, then file.
func (c *Config) ThemeName(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(EnvTheme); env != "" {
		return env
	}
	return c.Theme
}

// ResolveTheme returns the named theme from the config's own sections, or
// through the loader, or the default.
func (c *Config) ResolveTheme(name string, l *theme.Loader) (*theme.Theme, error) {
	if name == "" {
		return theme.Default(), nil
	}
	if t, ok := c.Themes[name]; ok {
		return t, nil
	}
	if l == nil {
		l = theme.NewLoader()
	}
	return l.Load(name)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "format = %s\n", c.Format)
	fmt.Fprintf(&sb, "jpeg_quality = %d\n", c.JPEGQuality)
	fmt.Fprintf(&sb, "history_limit = %d\n", c.HistoryLimit)
	if c.ToolbarLayout != "" {
		fmt.Fprintf(&sb, "toolbar_layout = %s\n", c.ToolbarLayout)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, kv := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", kv[0], kv[1])
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
