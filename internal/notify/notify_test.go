package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/imagetweaks/internal/platform"
)

func capture(t *testing.T) *[]platform.Notification {
	t.Helper()
	var got []platform.Notification
	orig := send
	send = func(n platform.Notification) error {
		got = append(got, n)
		return nil
	}
	t.Cleanup(func() { send = orig })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences(), nil)
	n.Save("out.png")
	n.Copy("")
	if len(*got) != 0 {
		t.Fatalf("expected no notifications, got %v", *got)
	}
	var nilNotifier *Notifier
	nilNotifier.Enable(EventSave, true)
	nilNotifier.Save("x")
}

func TestSaveAndCopy(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences(), nil)
	n.Enable(EventSave, true)
	n.Enable(EventCopy, true)

	dir := t.TempDir()
	n.Save(filepath.Join(dir, "missing.png"))
	n.Copy("")

	if len(*got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(*got))
	}
	if (*got)[0].Title != platform.AppName {
		t.Errorf("title = %q", (*got)[0].Title)
	}
	if want := "Saved " + filepath.Join(dir, "missing.png"); (*got)[0].Body != want {
		t.Errorf("body = %q, want %q", (*got)[0].Body, want)
	}
	if (*got)[0].Preview != "" {
		t.Errorf("missing file should not be used as a preview")
	}
	if (*got)[1].Body != "Copied image to clipboard" {
		t.Errorf("copy body = %q", (*got)[1].Body)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("IMAGETWEAKS_NOTIFY_TITLE", "Edits")
	t.Setenv("IMAGETWEAKS_NOTIFY_SAVE_TEXT", "Wrote %s")
	prefs := LoadPreferences()
	if prefs.Title != "Edits" {
		t.Errorf("title = %q", prefs.Title)
	}
	if prefs.Events[EventSave].Template != "Wrote %s" {
		t.Errorf("save template = %q", prefs.Events[EventSave].Template)
	}
	if prefs.Events[EventCopy].Template != DefaultPreferences().Events[EventCopy].Template {
		t.Errorf("copy template should keep its default")
	}
}

func TestSavePreviewsWrittenFile(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences(), nil)
	n.Enable(EventSave, true)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n.Save(path)
	if len(*got) != 1 || (*got)[0].Preview != path {
		t.Fatalf("expected preview %q, got %+v", path, *got)
	}
}
