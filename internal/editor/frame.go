package editor

import (
	"image"
	"image/color"
	"image/draw"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/example/photocanvas/internal/session"
	"github.com/example/photocanvas/internal/stickers"
	"github.com/example/photocanvas/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Frame is everything needed to paint one picture of the edit screen.
type Frame struct {
	Layout   Layout
	Theme    *theme.Theme
	Base     *image.RGBA
	Snapshot session.Snapshot
	// Flat is Snapshot flattened onto Base. RenderFrame flattens itself
	// when it is nil.
	Flat    *image.RGBA
	Catalog []*stickers.Sticker
	Labels  []string
	Hover   Hit
	Pressed Hit
	Message string
}

// RenderFrame paints f into dst. dst is expected to cover the layout's
// window size.
func RenderFrame(dst *image.RGBA, f Frame) {
	th := f.Theme
	if th == nil {
		th = theme.Default()
	}
	l := f.Layout
	fill(dst, dst.Bounds(), th.Background)

	if f.Base != nil && !l.Photo.Empty() {
		drawCheckerboard(dst, l.Photo, 8, th.CheckerLight, th.CheckerDark)
		flat := f.Flat
		if flat == nil {
			flat = f.Snapshot.Flatten(f.Base)
		}
		xdraw.NearestNeighbor.Scale(dst, l.Photo, flat, flat.Bounds(), draw.Over, nil)
	} else if f.Base == nil && !l.Canvas.Empty() {
		r := image.Rect(l.Canvas.Min.X+16, l.Canvas.Min.Y+16, l.Canvas.Max.X-16, l.Canvas.Min.Y+48)
		drawTextCentered(dst, labelFace, th.Foreground, r, LoadFailedMessage)
	}

	if !l.Grid.Empty() {
		fill(dst, l.Grid, th.GridBackground)
	}
	selected := f.Snapshot.Sticker
	for i, cell := range l.Cells {
		if i >= len(f.Catalog) {
			break
		}
		st := f.Catalog[i]
		if st == selected {
			outline(dst, cell.Inset(-2), th.GridSelected, 2)
		}
		thumb := st.Thumbnail(min(cell.Dx(), cell.Dy()))
		if thumb == nil {
			continue
		}
		tb := thumb.Bounds()
		at := cell.Min.Add(image.Pt((cell.Dx()-tb.Dx())/2, (cell.Dy()-tb.Dy())/2))
		draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(tb.Size())}, thumb, tb.Min, draw.Over)
	}

	fill(dst, l.Bar, th.ToolbarBackground)
	for i, r := range l.Buttons {
		if i >= len(f.Labels) {
			break
		}
		btn := Hit{Region: RegionButton, Index: i}
		state := StateDefault
		switch {
		case f.Pressed == btn:
			state = StatePressed
		case f.Hover == btn:
			state = StateHover
		}
		drawButton(dst, r, f.Labels[i], state, th)
	}

	if f.Message != "" {
		drawMessage(dst, l, f.Message, th)
	}
}

func drawButton(dst *image.RGBA, r image.Rectangle, label string, state ButtonState, th *theme.Theme) {
	bg := th.ButtonBackground
	switch state {
	case StateHover:
		bg = th.ButtonBackgroundHover
	case StatePressed:
		bg = th.ButtonBackgroundPress
	}
	fill(dst, r, bg)
	outline(dst, r, th.ButtonBorder, 1)
	drawTextCentered(dst, labelFace, th.ButtonText, r, label)
}

func drawMessage(dst *image.RGBA, l Layout, msg string, th *theme.Theme) {
	area := l.Canvas
	if area.Empty() {
		area = dst.Bounds()
	}
	m := messageFace.Metrics()
	h := m.Ascent.Ceil() + m.Descent.Ceil() + 16
	w := textWidth(messageFace, msg) + 24
	x0 := area.Min.X + (area.Dx()-w)/2
	y0 := area.Max.Y - h - 12
	r := image.Rect(x0, y0, x0+w, y0+h)
	draw.Draw(dst, r, image.NewUniform(th.StatusBackground), image.Point{}, draw.Over)
	drawTextCentered(dst, messageFace, th.StatusText, r, msg)
}

func fill(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func outline(dst *image.RGBA, r image.Rectangle, c color.RGBA, thick int) {
	u := image.NewUniform(c)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

// drawCheckerboard fills r with alternating squares of the given size.
func drawCheckerboard(dst *image.RGBA, r image.Rectangle, size int, light, dark color.RGBA) {
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.SetRGBA(x, y, light)
			} else {
				dst.SetRGBA(x, y, dark)
			}
		}
	}
}

// status is a transient message with an expiry.
type status struct {
	text  string
	until time.Time
}

func (s status) visible(now time.Time) string {
	if s.text == "" || !now.Before(s.until) {
		return ""
	}
	return s.text
}
