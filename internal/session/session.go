package session

import (
	"image"

	"github.com/google/uuid"

	"github.com/example/photocanvas/internal/render"
	"github.com/example/photocanvas/internal/stickers"
)

// DefaultStickerPosition is where a freshly selected sticker is placed.
var DefaultStickerPosition = image.Pt(100, 100)

// Stroke is a freehand polyline in image coordinates.
type Stroke struct {
	ID     string
	Points []image.Point
}

func (s Stroke) clone() Stroke {
	return Stroke{ID: s.ID, Points: append([]image.Point(nil), s.Points...)}
}

// Session is the in-memory state of one editing pass. It is owned by a
// single goroutine; hand a Snapshot to anything running elsewhere.
type Session struct {
	ID string

	strokes    []Stroke
	open       *Stroke
	sticker    *stickers.Sticker
	stickerPos image.Point

	onChange func()
}

// Option modifies a Session during creation.
type Option func(*Session)

// WithChangeListener registers fn to run after every mutation.
func WithChangeListener(fn func()) Option { return func(s *Session) { s.onChange = fn } }

// New returns an empty session.
func New(opts ...Option) *Session {
	s := &Session{ID: uuid.NewString()}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// AddPoint extends the open stroke to p, opening a new stroke at p when
// none is open.
func (s *Session) AddPoint(p image.Point) {
	if s.open == nil {
		s.open = &Stroke{ID: uuid.NewString(), Points: []image.Point{p}}
	} else {
		s.open.Points = append(s.open.Points, p)
	}
	s.changed()
}

// EndStroke commits the open stroke. The next AddPoint starts a new one.
func (s *Session) EndStroke() {
	if s.open == nil {
		return
	}
	s.strokes = append(s.strokes, *s.open)
	s.open = nil
	s.changed()
}

// SelectSticker makes st the active sticker and moves it back to
// DefaultStickerPosition.
func (s *Session) SelectSticker(st *stickers.Sticker) {
	s.sticker = st
	s.stickerPos = DefaultStickerPosition
	s.changed()
}

// MoveSticker sets the sticker position. The position is not clamped and is
// kept even when no sticker is selected.
func (s *Session) MoveSticker(p image.Point) {
	s.stickerPos = p
	s.changed()
}

// Reset discards every stroke and the sticker selection.
func (s *Session) Reset() {
	s.strokes = nil
	s.open = nil
	s.sticker = nil
	s.stickerPos = image.Point{}
	s.changed()
}

// Strokes returns the committed strokes followed by the open stroke, if
// any. The result is a copy.
func (s *Session) Strokes() []Stroke {
	n := len(s.strokes)
	if s.open != nil {
		n++
	}
	out := make([]Stroke, 0, n)
	for _, st := range s.strokes {
		out = append(out, st.clone())
	}
	if s.open != nil {
		out = append(out, s.open.clone())
	}
	return out
}

// OpenStroke returns a copy of the stroke being drawn.
func (s *Session) OpenStroke() (Stroke, bool) {
	if s.open == nil {
		return Stroke{}, false
	}
	return s.open.clone(), true
}

// Sticker returns the selected sticker or nil.
func (s *Session) Sticker() *stickers.Sticker { return s.sticker }

// HasSticker reports whether a sticker is selected.
func (s *Session) HasSticker() bool { return s.sticker != nil }

// StickerPosition returns the sticker's top-left corner.
func (s *Session) StickerPosition() image.Point { return s.stickerPos }

// Snapshot is an immutable copy of a session's drawable state.
type Snapshot struct {
	Strokes    []Stroke
	Sticker    *stickers.Sticker
	StickerPos image.Point
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{Strokes: s.Strokes(), Sticker: s.sticker, StickerPos: s.stickerPos}
}

// Polylines returns the stroke points in drawing order.
func (sn Snapshot) Polylines() [][]image.Point {
	out := make([][]image.Point, len(sn.Strokes))
	for i, st := range sn.Strokes {
		out[i] = st.Points
	}
	return out
}

// StickerImage returns the sticker pixels or nil when none is selected.
func (sn Snapshot) StickerImage() image.Image {
	if sn.Sticker == nil || sn.Sticker.Image == nil {
		return nil
	}
	return sn.Sticker.Image
}

// Flatten composites the snapshot onto base.
func (sn Snapshot) Flatten(base image.Image) *image.RGBA {
	return render.Composite(base, sn.Polylines(), sn.StickerImage(), sn.StickerPos)
}
