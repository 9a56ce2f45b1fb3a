package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/edits
format = jpeg
jpeg_quality = 80
history_limit = 25
toolbar_layout = "/etc/imagetweaks/layout.yaml"

[notify]
save = true
copy = false

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/edits" {
		t.Errorf("Expected save_dir '/tmp/edits', got '%s'", cfg.SaveDir)
	}
	if cfg.Format != "jpg" {
		t.Errorf("Expected format 'jpg', got %q", cfg.Format)
	}
	if cfg.JPEGQuality != 80 || cfg.HistoryLimit != 25 {
		t.Errorf("Unexpected numbers: quality %d limit %d", cfg.JPEGQuality, cfg.HistoryLimit)
	}
	if cfg.ToolbarLayout != "/etc/imagetweaks/layout.yaml" {
		t.Errorf("Unexpected toolbar_layout %q", cfg.ToolbarLayout)
	}
	if !cfg.Notify.Save {
		t.Error("Expected notify.save to be true")
	}
	if cfg.Notify.Copy {
		t.Error("Expected notify.copy to be false")
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	for _, in := range []string{
		"history_limit = -1",
		"jpeg_quality = 0",
		"format = gif",
		"[notify]\nsave = maybe",
		"[theme.x]\nBackground = blue",
	} {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/edits
history_limit = 3

[notify]
save = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.HistoryLimit != cfg2.HistoryLimit {
		t.Errorf("HistoryLimit mismatch: %d vs %d", cfg.HistoryLimit, cfg2.HistoryLimit)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestThemeNamePrecedence(t *testing.T) {
	cfg := New()
	cfg.Theme = "fromfile"
	t.Setenv(EnvTheme, "")
	if got := cfg.ThemeName(""); got != "fromfile" {
		t.Errorf("got %q", got)
	}
	t.Setenv(EnvTheme, "fromenv")
	if got := cfg.ThemeName(""); got != "fromenv" {
		t.Errorf("got %q", got)
	}
	if got := cfg.ThemeName("fromflag"); got != "fromflag" {
		t.Errorf("got %q", got)
	}
}

func TestResolveThemePrefersConfigSection(t *testing.T) {
	cfg, err := Parse(strings.NewReader("[theme.dark]\nBackground = #010203\n"))
	if err != nil {
		t.Fatal(err)
	}
	th, err := cfg.ResolveTheme("dark", nil)
	if err != nil {
		t.Fatal(err)
	}
	if th.Background.B != 3 {
		t.Errorf("expected config section theme, got %+v", th.Background)
	}
	def, err := cfg.ResolveTheme("", nil)
	if err != nil || def.Name != "Default" {
		t.Errorf("expected default theme, got %v %v", def, err)
	}
}

func TestLoaderOverrideAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.rc")
	l := NewLoader("v1", path)

	cfg := New()
	cfg.HistoryLimit = 7
	written, err := l.Save(cfg)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if written != path {
		t.Errorf("wrote %q, want %q", written, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}

	got, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.HistoryLimit != 7 {
		t.Errorf("HistoryLimit = %d", got.HistoryLimit)
	}
}

func TestLoaderSearchOrder(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	wd := t.TempDir()
	testChdir(t, wd)

	l := NewLoader("dev", "")
	if got := l.GetConfigPath(); got != "" {
		t.Fatalf("expected no config, got %q", got)
	}
	if want := filepath.Join(xdg, "imagetweaks", "config.rc"); l.SavePath() != want {
		t.Fatalf("SavePath = %q, want %q", l.SavePath(), want)
	}

	alt := filepath.Join(xdg, "imagetweaks", "imagetweaks.rc")
	if err := os.MkdirAll(filepath.Dir(alt), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(alt, []byte("format = jpg\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := l.GetConfigPath(); got != alt {
		t.Fatalf("GetConfigPath = %q, want %q", got, alt)
	}

	dev := filepath.Join(wd, ".imagetweaksrc")
	if err := os.WriteFile(dev, []byte("format = png\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := l.GetConfigPath(); got != dev {
		t.Fatalf("dev build should prefer %q, got %q", dev, got)
	}
	if got := NewLoader("v1.0.0", "").GetConfigPath(); got != alt {
		t.Fatalf("release build should skip the working directory, got %q", got)
	}
}
