package notify

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sent struct {
	title, body string
	opts        Options
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	prev := send
	send = func(title, body string, opts Options) error {
		got = append(got, sent{title, body, opts})
		if opts.IconPath != "" {
			if _, err := os.Stat(opts.IconPath); err != nil {
				t.Errorf("icon %s missing during send: %v", opts.IconPath, err)
			}
		}
		return nil
	}
	t.Cleanup(func() { send = prev })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Save("out.png")
	n.Copy("", nil)
	var nilNotifier *Notifier
	nilNotifier.Save("out.png")
	nilNotifier.Enable(EventSave, true)
	if len(*got) != 0 {
		t.Fatalf("expected no notifications, got %+v", *got)
	}
}

func TestSaveUsesAbsolutePathAndIcon(t *testing.T) {
	got := capture(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(path)
	if len(*got) != 1 {
		t.Fatalf("expected one notification, got %d", len(*got))
	}
	s := (*got)[0]
	if s.title != AppName || s.body != "Saved "+path || s.opts.IconPath != path {
		t.Fatalf("unexpected notification %+v", s)
	}
}

func TestCopyPreviewIsRemoved(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy("", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if len(*got) != 1 {
		t.Fatalf("expected one notification, got %d", len(*got))
	}
	s := (*got)[0]
	if !strings.HasPrefix(s.body, "Copied image") {
		t.Fatalf("body = %q", s.body)
	}
	if s.opts.IconPath == "" {
		t.Fatalf("expected preview icon")
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview not cleaned up: %v", err)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("PHOTOEDIT_NOTIFY_TITLE", "Editor")
	t.Setenv("PHOTOEDIT_NOTIFY_SAVE_TEXT", "Wrote %s")
	t.Setenv("PHOTOEDIT_NOTIFY_COPY_TEXT", "")
	prefs := LoadPreferences()
	if prefs.Title != "Editor" || prefs.Templates[EventSave] != "Wrote %s" {
		t.Fatalf("unexpected prefs %+v", prefs)
	}
	if prefs.Templates[EventCopy] != DefaultPreferences().Templates[EventCopy] {
		t.Fatalf("copy template should keep default")
	}
}
