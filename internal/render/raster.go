package render

import (
	"image"
	"image/color"
	"math"
)

// StrokeStyle describes how polylines are rasterised onto the composite.
type StrokeStyle struct {
	Color color.RGBA
	Width int
}

// DefaultStrokeStyle returns the opaque red, five pixel wide pen used for
// freehand strokes.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{Color: color.RGBA{255, 0, 0, 255}, Width: 5}
}

// setBrush stamps a square brush of the given width centred on (x, y).
func setBrush(img *image.RGBA, x, y, width int, col color.RGBA) {
	if width < 1 {
		width = 1
	}
	lo := -(width / 2)
	hi := lo + width
	b := img.Bounds()
	for dy := lo; dy < hi; dy++ {
		for dx := lo; dx < hi; dx++ {
			p := image.Pt(x+dx, y+dy)
			if p.In(b) {
				img.SetRGBA(p.X, p.Y, col)
			}
		}
	}
}

// DrawLine rasterises the segment (x0,y0)-(x1,y1) with Bresenham's
// algorithm. The segment is first clipped to img's bounds grown by the brush
// width, so only the visible part is stepped through.
func DrawLine(img *image.RGBA, x0, y0, x1, y1 int, style StrokeStyle) {
	x0, y0, x1, y1, ok := clipSegment(img.Bounds().Inset(-max(style.Width, 1)), x0, y0, x1, y1)
	if !ok {
		return
	}
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setBrush(img, x0, y0, style.Width, style.Color)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// clipSegment clips a segment to r using Liang-Barsky. ok is false when the
// segment misses r entirely. Endpoints already inside r are returned as is.
// The returned endpoints always lie inside r.
func clipSegment(r image.Rectangle, x0, y0, x1, y1 int) (cx0, cy0, cx1, cy1 int, ok bool) {
	if r.Empty() {
		return 0, 0, 0, 0, false
	}
	fx0, fy0 := float64(x0), float64(y0)
	dx, dy := float64(x1)-fx0, float64(y1)-fy0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, fx0 - float64(r.Min.X)},
		{dx, float64(r.Max.X-1) - fx0},
		{-dy, fy0 - float64(r.Min.Y)},
		{dy, float64(r.Max.Y-1) - fy0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	cx0, cy0, cx1, cy1 = x0, y0, x1, y1
	if t0 > 0 {
		cx0, cy0 = int(math.Round(fx0+t0*dx)), int(math.Round(fy0+t0*dy))
	}
	if t1 < 1 {
		cx1, cy1 = int(math.Round(fx0+t1*dx)), int(math.Round(fy0+t1*dy))
	}
	// Rounding past 2^53 can land outside r.
	clampX := func(v int) int { return min(max(v, r.Min.X), r.Max.X-1) }
	clampY := func(v int) int { return min(max(v, r.Min.Y), r.Max.Y-1) }
	return clampX(cx0), clampY(cy0), clampX(cx1), clampY(cy1), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// DrawPolyline draws pts as a connected open path. A path made of a single
// move has no length and leaves img untouched.
func DrawPolyline(img *image.RGBA, pts []image.Point, style StrokeStyle) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		DrawLine(img, a.X, a.Y, b.X, b.Y, style)
	}
}
