// Package editor implements the edit screen: the captured photo with the
// user's strokes and sticker on top, a sticker grid and Save, Copy and
// Discard buttons.
package editor

import (
	"fmt"
	"image"
	"log"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"

	"github.com/example/photocanvas/internal/clipboard"
	"github.com/example/photocanvas/internal/imageio"
	"github.com/example/photocanvas/internal/nav"
	"github.com/example/photocanvas/internal/notify"
	"github.com/example/photocanvas/internal/session"
	"github.com/example/photocanvas/internal/stickers"
	"github.com/example/photocanvas/internal/theme"
)

// User-visible messages.
const (
	SaveSuccessMessage       = "Photo saved successfully"
	SaveFailedMessage        = "Failed to save photo"
	StoragePermissionMessage = "Storage permission is required to export"
	LoadFailedMessage        = "Failed to load Picture"
	CopySuccessMessage       = "Photo copied to clipboard"
	CopyFailedMessage        = "Failed to copy photo"
)

// messageDuration is how long a status message stays on screen.
const messageDuration = 2 * time.Second

type action int

const (
	actionSave action = iota
	actionCopy
	actionDiscard
	actionQuit
)

var buttons = []struct {
	label string
	act   action
}{
	{"Save", actionSave},
	{"Copy", actionCopy},
	{"Discard", actionDiscard},
}

// KeyShortcut is a key combination bound to an action. Either Rune or
// Code is set.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

var shortcuts = map[KeyShortcut]action{
	{Rune: 's', Modifiers: key.ModControl}: actionSave,
	{Rune: 'c', Modifiers: key.ModControl}: actionCopy,
	{Code: key.CodeEscape}:                 actionDiscard,
	{Rune: 'q'}:                            actionQuit,
}

// saveDone carries the result of a background save back to the UI loop.
type saveDone struct {
	path string
	err  error
}

// Screen is one visit of the edit screen. All methods except the
// background save run on the UI goroutine.
type Screen struct {
	Handle  string
	Base    *image.RGBA
	Catalog []*stickers.Sticker
	Session *session.Session

	gallery        *imageio.Gallery
	notifier       *notify.Notifier
	theme          *theme.Theme
	storageGranted bool
	copyImage      func(image.Image) error
	now            func() time.Time

	layout   Layout
	hover    Hit
	pressed  Hit
	dragging bool
	last     image.Point
	status   status
	closed   bool
	back     bool

	// rev counts session changes; flat is the photo flattened at flatRev.
	rev     int
	flat    *image.RGBA
	flatRev int

	// pending counts saves whose saveDone has not been handled yet.
	pending int

	// post delivers events to the UI loop from any goroutine.
	post func(any)
}

// Option configures a Screen.
type Option func(*Screen)

// WithGallery sets where Save writes.
func WithGallery(g *imageio.Gallery) Option { return func(s *Screen) { s.gallery = g } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(s *Screen) { s.notifier = n } }

// WithTheme sets the palette.
func WithTheme(t *theme.Theme) Option { return func(s *Screen) { s.theme = t } }

// WithStorageGranted records whether exporting is permitted.
func WithStorageGranted(granted bool) Option { return func(s *Screen) { s.storageGranted = granted } }

// WithCatalog replaces the bundled sticker catalog.
func WithCatalog(c []*stickers.Sticker) Option { return func(s *Screen) { s.Catalog = c } }

// WithClipboard replaces the clipboard writer used by Copy.
func WithClipboard(fn func(image.Image) error) Option { return func(s *Screen) { s.copyImage = fn } }

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) Option { return func(s *Screen) { s.now = fn } }

// Open loads the photo behind handle and starts a fresh session. A photo
// that cannot be loaded leaves Base nil and the screen shows a fallback
// message.
func Open(handle string, opts ...Option) *Screen {
	s := &Screen{
		Handle:         handle,
		storageGranted: true,
		copyImage:      clipboard.WriteImage,
		now:            time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.Catalog == nil {
		s.Catalog = stickers.Default()
	}
	if s.gallery == nil {
		s.gallery = imageio.NewGallery("")
	}
	if s.theme == nil {
		s.theme = theme.Default()
	}
	s.Base = imageio.LoadImage(handle)
	s.Session = session.New(session.WithChangeListener(s.sessionChanged))
	s.resize(preferredSize(s.baseBounds(), len(s.Catalog)))
	return s
}

func (s *Screen) baseBounds() image.Rectangle {
	if s.Base == nil {
		return image.Rectangle{}
	}
	return s.Base.Bounds()
}

func (s *Screen) resize(width, height int) {
	s.layout = NewLayout(width, height, s.baseBounds(), len(s.Catalog), len(buttons))
}

func (s *Screen) sessionChanged() {
	s.rev++
	s.repaint()
}

func (s *Screen) repaint() {
	if s.post != nil {
		s.post(paint.Event{})
	}
}

func (s *Screen) setStatus(msg string) {
	log.Print(msg)
	s.status = status{text: msg, until: s.now().Add(messageDuration)}
	if s.post != nil {
		time.AfterFunc(messageDuration, s.repaint)
	}
}

// Message returns the status message currently on screen.
func (s *Screen) Message() string { return s.status.visible(s.now()) }

// Frame captures the state to paint.
func (s *Screen) Frame() Frame {
	labels := make([]string, len(buttons))
	for i, b := range buttons {
		labels[i] = b.label
	}
	snap := s.Session.Snapshot()
	if s.Base != nil && (s.flat == nil || s.flatRev != s.rev) {
		s.flat = snap.Flatten(s.Base)
		s.flatRev = s.rev
	}
	return Frame{
		Layout:   s.layout,
		Theme:    s.theme,
		Base:     s.Base,
		Snapshot: snap,
		Flat:     s.flat,
		Catalog:  s.Catalog,
		Labels:   labels,
		Hover:    s.hover,
		Pressed:  s.pressed,
		Message:  s.Message(),
	}
}

// SelectSticker selects catalog entry i.
func (s *Screen) SelectSticker(i int) {
	if i < 0 || i >= len(s.Catalog) {
		return
	}
	s.Session.SelectSticker(s.Catalog[i])
}

// Save flattens the session onto the photo and writes it to the gallery
// on a background goroutine. It reports whether a save was started; the
// outcome arrives later as a status message.
func (s *Screen) Save() bool {
	if s.Base == nil {
		return false
	}
	if !s.storageGranted {
		s.setStatus(StoragePermissionMessage)
		return false
	}
	snap := s.Session.Snapshot()
	base := s.Base
	gallery := s.gallery
	post := s.post
	if post != nil {
		s.pending++
	}
	go func() {
		path, err := gallery.Save(snap.Flatten(base))
		if post != nil {
			post(saveDone{path: path, err: err})
		}
	}()
	return true
}

func (s *Screen) finishSave(d saveDone) {
	if s.pending > 0 {
		s.pending--
	}
	if d.err != nil {
		log.Printf("save: %v", d.err)
		s.setStatus(SaveFailedMessage)
		s.notifier.SaveFailed(d.err)
		return
	}
	log.Printf("saved %s", d.path)
	s.setStatus(SaveSuccessMessage)
	s.notifier.Save(d.path)
}

// Copy places the flattened photo on the clipboard.
func (s *Screen) Copy() {
	if s.Base == nil {
		return
	}
	img := s.Session.Snapshot().Flatten(s.Base)
	if err := s.copyImage(img); err != nil {
		log.Printf("copy: %v", err)
		s.setStatus(CopyFailedMessage)
		return
	}
	s.setStatus(CopySuccessMessage)
	s.notifier.Copy("photo")
}

// Discard drops the session and leaves the screen, asking the shell to go
// back to the camera.
func (s *Screen) Discard() {
	s.Session.Reset()
	s.back = true
	s.closed = true
}

// Result is what Run returns once the screen has closed.
func (s *Screen) Result() error {
	if s.back {
		return fmt.Errorf("discarded: %w", nav.ErrBack)
	}
	return nil
}

func (s *Screen) perform(a action) {
	switch a {
	case actionSave:
		s.Save()
	case actionCopy:
		s.Copy()
	case actionDiscard:
		s.Discard()
	case actionQuit:
		s.closed = true
	}
}

// handleEvent applies events posted from outside the UI loop.
func (s *Screen) handleEvent(e any) bool {
	switch e := e.(type) {
	case saveDone:
		s.finishSave(e)
		return true
	}
	return false
}

// handleMouse applies a pointer event and reports whether to repaint.
func (s *Screen) handleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	hit := s.layout.Hit(p)
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		s.pressed = hit
		switch hit.Region {
		case RegionButton:
			s.perform(buttons[hit.Index].act)
		case RegionGrid:
			s.SelectSticker(hit.Index)
		case RegionCanvas:
			if s.Base != nil {
				s.dragging = true
				s.last = p
			}
		}
		return true
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		s.pressed = Hit{}
		if s.dragging {
			s.dragging = false
			s.Session.EndStroke()
		}
		return true
	case e.Direction == mouse.DirNone:
		changed := hit != s.hover
		s.hover = hit
		if !s.dragging {
			return changed
		}
		pos := s.layout.ToImage(p)
		delta := pos.Sub(s.layout.ToImage(s.last))
		s.last = p
		DispatchDrag(s.Session, pos, delta)
		return true
	}
	return false
}

// handleKey applies a key press and reports whether to repaint.
func (s *Screen) handleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	if e.Rune > 0 {
		if a, ok := shortcuts[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers}]; ok {
			s.perform(a)
			return true
		}
	}
	if a, ok := shortcuts[KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}]; ok {
		s.perform(a)
		return true
	}
	return false
}

// DispatchDrag applies one step of a drag gesture: with a sticker selected
// the sticker moves by delta, otherwise the open stroke extends to pos.
func DispatchDrag(sess *session.Session, pos, delta image.Point) {
	if sess.HasSticker() {
		sess.MoveSticker(sess.StickerPosition().Add(delta))
		return
	}
	sess.AddPoint(pos)
}
