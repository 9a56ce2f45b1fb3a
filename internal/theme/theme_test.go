package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	th, err := Parse(strings.NewReader(`
# comment
Name: Custom
buttontextdisabled: #102030
CropOverlay: #11223344
Unknown: #000000
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "Custom" {
		t.Errorf("name = %q", th.Name)
	}
	if th.ButtonTextDisabled != (color.RGBA{0x10, 0x20, 0x30, 255}) {
		t.Errorf("ButtonTextDisabled = %v", th.ButtonTextDisabled)
	}
	if th.CropOverlay != (color.RGBA{0x11, 0x22, 0x33, 0x44}) {
		t.Errorf("CropOverlay = %v", th.CropOverlay)
	}
	if th.Background != Default().Background {
		t.Errorf("Background should keep its default")
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Background: red")); err == nil {
		t.Fatal("expected error")
	}
	if _, err := Parse(strings.NewReader("Background: #12345")); err == nil {
		t.Fatal("expected error for short hex")
	}
}

func TestFieldsRoundTrip(t *testing.T) {
	src := Default()
	src.PanelBackground = color.RGBA{1, 2, 3, 4}
	var sb strings.Builder
	for _, kv := range src.Fields() {
		sb.WriteString(kv[0] + ": " + kv[1] + "\n")
	}
	got, err := Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got.Name = src.Name
	if *got != *src {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, src)
	}
}

func TestLoaderEmbedded(t *testing.T) {
	l := &Loader{ConfigDir: t.TempDir(), SystemDir: t.TempDir()}
	th, err := l.Load("dark")
	if err != nil {
		t.Fatalf("Load dark: %v", err)
	}
	if th.Name != "Dark" {
		t.Errorf("name = %q", th.Name)
	}
	if _, err := l.Load("nope"); err == nil {
		t.Error("expected missing theme error")
	}
	def, err := l.Load("")
	if err != nil || def.Name != "Default" {
		t.Errorf("empty name should give default, got %v %v", def, err)
	}
}

func TestLoaderSearchOrderAndAvailable(t *testing.T) {
	cfg, sys := t.TempDir(), t.TempDir()
	write := func(dir, name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(cfg, "mine.theme", "Name: Mine\n")
	write(sys, "mine.theme", "Name: System Mine\n")
	write(sys, "site.theme", "Name: Site\n")
	write(cfg, "dark.theme", "Name: Shadowed\n")

	l := &Loader{ConfigDir: cfg, SystemDir: sys}
	th, err := l.Load("mine")
	if err != nil || th.Name != "Mine" {
		t.Fatalf("Load mine = %v, %v", th, err)
	}
	th, err = l.Load("site.theme")
	if err != nil || th.Name != "Site" {
		t.Fatalf("Load site.theme = %v, %v", th, err)
	}
	th, err = l.Load("dark")
	if err != nil || th.Name != "Dark" {
		t.Fatalf("embedded dark should win, got %v, %v", th, err)
	}
	th, err = l.Load(filepath.Join(sys, "mine.theme"))
	if err != nil || th.Name != "System Mine" {
		t.Fatalf("Load by path = %v, %v", th, err)
	}
	if _, err := l.Load("../escape"); err == nil {
		t.Fatal("expected error for a name with a path separator")
	}

	got := strings.Join(l.Available(), ",")
	if got != "dark,light,mine,site" {
		t.Fatalf("Available = %s", got)
	}
}
