package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/photocanvas/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func captureSends(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	prev := send
	send = func(title, body string, opts platform.Options) error {
		if opts.IconPath != "" {
			if _, err := os.Stat(opts.IconPath); err != nil {
				t.Errorf("icon %s missing during send: %v", opts.IconPath, err)
			}
		}
		got = append(got, sent{title, body, opts})
		return nil
	}
	t.Cleanup(func() { send = prev })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := captureSends(t)
	n := New(DefaultPreferences())
	n.Save("/tmp/x.jpg")
	n.Copy("")
	n.SaveFailed(errors.New("disk full"))
	var nilNotifier *Notifier
	nilNotifier.Save("/tmp/x.jpg")
	nilNotifier.Enable(EventSave, true)
	if len(*got) != 0 {
		t.Fatalf("sent %d notifications", len(*got))
	}
}

func TestSaveAndFailure(t *testing.T) {
	got := captureSends(t)
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)

	path := filepath.Join(t.TempDir(), "EditedPhoto_20240101_000000.jpg")
	if err := os.WriteFile(path, []byte("jpeg"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	n.Save(path)
	n.SaveFailed(errors.New("disk full"))

	if len(*got) != 2 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	if (*got)[0].title != "photocanvas" || (*got)[0].body != "Saved "+path || (*got)[0].opts.IconPath != path {
		t.Fatalf("save notification = %+v", (*got)[0])
	}
	if !(*got)[1].opts.Urgent || !strings.Contains((*got)[1].body, "disk full") {
		t.Fatalf("failure notification = %+v", (*got)[1])
	}
}

func TestCapturePreviewIsRemoved(t *testing.T) {
	got := captureSends(t)
	n := New(DefaultPreferences())
	n.Enable(EventCapture, true)
	n.Capture("file:///tmp/a.jpg", image.NewRGBA(image.Rect(0, 0, 800, 400)))
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	icon := (*got)[0].opts.IconPath
	if icon == "" {
		t.Fatal("expected preview icon")
	}
	if _, err := os.Stat(icon); !os.IsNotExist(err) {
		t.Fatalf("preview not removed: %v", err)
	}
}

func TestPreviewImage(t *testing.T) {
	small := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if previewImage(small) != image.Image(small) {
		t.Fatal("small images should be used as is")
	}
	b := previewImage(image.NewRGBA(image.Rect(0, 0, 300, 1200))).Bounds()
	if b.Dx() != 64 || b.Dy() != previewSize {
		t.Fatalf("preview bounds = %v", b)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("PHOTOCANVAS_NOTIFY_TITLE", "Editor")
	t.Setenv("PHOTOCANVAS_NOTIFY_SAVE_TEXT", "Stored %s")
	prefs := LoadPreferences()
	if prefs.Title != "Editor" || prefs.Templates[EventSave] != "Stored %s" {
		t.Fatalf("prefs = %+v", prefs)
	}
	if prefs.Templates[EventCopy] != DefaultPreferences().Templates[EventCopy] {
		t.Fatalf("copy template changed: %q", prefs.Templates[EventCopy])
	}
}
