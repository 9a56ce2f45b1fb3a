package config

import (
	"os"
	"path/filepath"
)

const (
	devFile  = ".imagetweaksrc"
	rcFile   = "config.rc"
	altFile  = "imagetweaks.rc"
	appDir   = "imagetweaks"
	envXDGRC = "XDG_CONFIG_HOME"
)

// Loader finds, reads and writes the RC file.
type Loader struct {
	Version      string // "dev" also searches the working directory
	OverridePath string // from --config or set at link time
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// configDir is $XDG_CONFIG_HOME/imagetweaks, falling back to ~/.config.
func configDir() string {
	if dir := os.Getenv(envXDGRC); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appDir)
}

// candidates lists the RC locations in search order.
func (l *Loader) candidates() []string {
	var paths []string
	if l.OverridePath != "" {
		paths = append(paths, l.OverridePath)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, devFile))
		}
	}
	dir := configDir()
	return append(paths, filepath.Join(dir, rcFile), filepath.Join(dir, altFile))
}

// GetConfigPath returns the first existing RC file, or "" when there is none.
func (l *Loader) GetConfigPath() string {
	for _, p := range l.candidates() {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// Load parses the RC file, or returns defaults when none exists.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// SavePath returns where Save writes: the override, or config.rc in the
// config directory.
func (l *Loader) SavePath() string {
	if l.OverridePath != "" {
		return l.OverridePath
	}
	return filepath.Join(configDir(), rcFile)
}

// Save writes cfg in RC format, creating the directory if needed.
func (l *Loader) Save(cfg *Config) (string, error) {
	path := l.SavePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(cfg.String()), 0o644)
}
