package editor

import (
	"image"
	"math"
)

const (
	barHeight   = 44
	buttonWidth = 96
	buttonGap   = 12
	gridColumns = 5
	maxCellSize = 64
	minCellSize = 16
	gridPadding = 4
)

// Region identifies the part of the window under a point.
type Region int

const (
	RegionNone Region = iota
	RegionCanvas
	RegionGrid
	RegionButton
)

// Hit is the result of a hit test. Index selects the sticker cell or
// button.
type Hit struct {
	Region Region
	Index  int
}

// Layout positions the photo canvas, the sticker grid and the button row
// inside a window. The photo is anchored at the canvas origin and only
// ever scaled down.
type Layout struct {
	Width, Height int

	Canvas image.Rectangle
	Photo  image.Rectangle
	Zoom   float64

	Grid  image.Rectangle
	Cells []image.Rectangle

	Bar     image.Rectangle
	Buttons []image.Rectangle
}

// NewLayout lays out a width x height window for a photo with bounds
// base (empty when there is none), n stickers and the given button count.
func NewLayout(width, height int, base image.Rectangle, n, buttons int) Layout {
	l := Layout{Width: width, Height: height, Zoom: 1}

	l.Bar = image.Rect(0, height-barHeight, width, height)
	x := buttonGap
	for i := 0; i < buttons; i++ {
		l.Buttons = append(l.Buttons, image.Rect(x, l.Bar.Min.Y+6, x+buttonWidth, l.Bar.Max.Y-6))
		x += buttonWidth + buttonGap
	}

	cell := (width - gridPadding*(gridColumns+1)) / gridColumns
	cell = max(minCellSize, min(maxCellSize, cell))
	rows := (n + gridColumns - 1) / gridColumns
	gridH := 0
	if rows > 0 {
		gridH = rows*cell + (rows+1)*gridPadding
	}
	l.Grid = image.Rect(0, l.Bar.Min.Y-gridH, width, l.Bar.Min.Y)
	for i := 0; i < n; i++ {
		col, row := i%gridColumns, i/gridColumns
		x0 := gridPadding + col*(cell+gridPadding)
		y0 := l.Grid.Min.Y + gridPadding + row*(cell+gridPadding)
		l.Cells = append(l.Cells, image.Rect(x0, y0, x0+cell, y0+cell))
	}

	l.Canvas = image.Rect(0, 0, width, max(0, l.Grid.Min.Y))
	if base.Empty() || l.Canvas.Empty() {
		return l
	}
	bw, bh := float64(base.Dx()), float64(base.Dy())
	l.Zoom = math.Min(1, math.Min(float64(l.Canvas.Dx())/bw, float64(l.Canvas.Dy())/bh))
	pw := max(1, int(bw*l.Zoom))
	ph := max(1, int(bh*l.Zoom))
	l.Photo = image.Rectangle{Min: l.Canvas.Min, Max: l.Canvas.Min.Add(image.Pt(pw, ph))}
	return l
}

// Hit reports what lies under p.
func (l Layout) Hit(p image.Point) Hit {
	for i, r := range l.Buttons {
		if p.In(r) {
			return Hit{Region: RegionButton, Index: i}
		}
	}
	for i, r := range l.Cells {
		if p.In(r) {
			return Hit{Region: RegionGrid, Index: i}
		}
	}
	if p.In(l.Canvas) {
		return Hit{Region: RegionCanvas}
	}
	return Hit{}
}

// ToImage maps a window point to photo pixel coordinates. Points outside
// the photo map outside its bounds.
func (l Layout) ToImage(p image.Point) image.Point {
	z := l.Zoom
	if z <= 0 {
		z = 1
	}
	return image.Pt(
		int(math.Floor(float64(p.X-l.Photo.Min.X)/z)),
		int(math.Floor(float64(p.Y-l.Photo.Min.Y)/z)),
	)
}

// preferredSize picks an initial window size for a photo with bounds base.
func preferredSize(base image.Rectangle, n int) (int, int) {
	w, h := 640, 480
	if !base.Empty() {
		w = min(max(base.Dx(), 480), 1280)
		h = min(max(base.Dy(), 240), 720)
	}
	rows := (n + gridColumns - 1) / gridColumns
	if rows > 0 {
		h += rows*maxCellSize + (rows+1)*gridPadding
	}
	return w, h + barHeight
}
