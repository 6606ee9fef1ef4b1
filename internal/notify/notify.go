// Package notify raises desktop notifications for capture and export
// events.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/example/photocanvas/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	EventCapture    Event = "capture"
	EventSave       Event = "save"
	EventSaveFailed Event = "save_failed"
	EventCopy       Event = "copy"
)

// previewSize bounds the longest edge of a notification icon.
const previewSize = 256

// Preferences holds the notification title and per-event body templates.
// Each template receives one %s argument.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in texts.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "photocanvas",
		Templates: map[Event]string{
			EventCapture:    "Captured %s",
			EventSave:       "Saved %s",
			EventSaveFailed: "Failed to save photo: %s",
			EventCopy:       "Copied %s to clipboard",
		},
	}
}

var envKeys = map[Event]string{
	EventCapture:    "PHOTOCANVAS_NOTIFY_CAPTURE_TEXT",
	EventSave:       "PHOTOCANVAS_NOTIFY_SAVE_TEXT",
	EventSaveFailed: "PHOTOCANVAS_NOTIFY_SAVE_FAILED_TEXT",
	EventCopy:       "PHOTOCANVAS_NOTIFY_COPY_TEXT",
}

// LoadPreferences applies PHOTOCANVAS_NOTIFY_* overrides to the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("PHOTOCANVAS_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for event, key := range envKeys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

// send is replaced in tests.
var send = platform.Notify

// Notifier dispatches notifications for the events it has enabled. A nil
// Notifier is valid and silent.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Templates: make(map[Event]string, len(prefs.Templates))}
	for k, v := range prefs.Templates {
		cloned.Templates[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles one event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Capture reports a new photo, attaching a preview when img is set.
func (n *Notifier) Capture(handle string, img image.Image) {
	if !n.enabledFor(EventCapture) {
		return
	}
	opts := platform.Options{}
	if img != nil {
		path, cleanup, err := createPreview(img)
		if err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCapture, handle, opts)
}

// Save reports an exported picture.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// SaveFailed reports a failed export. It follows the save switch.
func (n *Notifier) SaveFailed(err error) {
	if !n.enabledFor(EventSave) || err == nil {
		return
	}
	n.dispatch(EventSaveFailed, err.Error(), platform.Options{Urgent: true})
}

// Copy reports a clipboard export.
func (n *Notifier) Copy(detail string) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "photo"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

// Enabled reports whether event raises notifications.
func (n *Notifier) Enabled(event Event) bool { return n.enabledFor(event) }

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "photocanvas-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, previewImage(img)); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}

// previewImage shrinks img so its longest edge is at most previewSize.
func previewImage(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= previewSize && h <= previewSize {
		return img
	}
	if w >= h {
		h = max(1, h*previewSize/w)
		w = previewSize
	} else {
		w = max(1, w*previewSize/h)
		h = previewSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
