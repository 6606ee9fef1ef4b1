package render

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"
	"time"
)

var strokeRed = color.RGBA{255, 0, 0, 255}

func TestDrawLineFarOffCanvasReturnsQuickly(t *testing.T) {
	img := solid(10, 10, color.RGBA{255, 255, 255, 255})
	done := make(chan struct{})
	go func() {
		defer close(done)
		DrawLine(img, 0, 5, 50_000_000, 5, DefaultStrokeStyle())
		DrawLine(img, -1<<40, 2, 1<<40, 2, StrokeStyle{Color: strokeRed, Width: 1})
		DrawLine(img, math.MinInt, math.MinInt, math.MaxInt, math.MaxInt, StrokeStyle{Color: strokeRed, Width: 1})
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("DrawLine stepped through off-canvas pixels")
	}
	for x := 0; x < 10; x++ {
		if img.RGBAAt(x, 5) != strokeRed {
			t.Fatalf("pixel (%d,5) = %v, want red", x, img.RGBAAt(x, 5))
		}
		if img.RGBAAt(x, 2) != strokeRed {
			t.Fatalf("pixel (%d,2) = %v, want red", x, img.RGBAAt(x, 2))
		}
	}
}

func TestDrawLineMissingCanvasDrawsNothing(t *testing.T) {
	img := solid(10, 10, color.RGBA{255, 255, 255, 255})
	want := append([]byte(nil), img.Pix...)
	DrawLine(img, -100, -100, 1000, -50, DefaultStrokeStyle())
	DrawLine(img, 40, 0, 40, 9, DefaultStrokeStyle())
	if !bytes.Equal(img.Pix, want) {
		t.Fatal("segment outside the canvas changed pixels")
	}
}

func TestDrawLineClippedMatchesUnclipped(t *testing.T) {
	style := StrokeStyle{Color: strokeRed, Width: 3}
	direct := solid(20, 20, color.RGBA{255, 255, 255, 255})
	DrawLine(direct, 2, 2, 30, 30, style)
	clipped := solid(20, 20, color.RGBA{255, 255, 255, 255})
	DrawLine(clipped, 2, 2, 3_000_000, 3_000_000, style)
	if !bytes.Equal(direct.Pix, clipped.Pix) {
		t.Fatal("clipping changed the visible part of the line")
	}
}

func TestCompositeStrokeMostlyOffCanvas(t *testing.T) {
	base := solid(10, 10, color.RGBA{255, 255, 255, 255})
	out := Composite(base, [][]image.Point{{{0, 0}, {50_000_000, 0}}}, nil, image.Point{})
	if out.RGBAAt(9, 0) != strokeRed {
		t.Fatalf("pixel (9,0) = %v, want red", out.RGBAAt(9, 0))
	}
	if out.RGBAAt(5, 5) == strokeRed {
		t.Fatal("stroke bled below its brush")
	}
}

func TestSquareBrushExtendsPastEndpoints(t *testing.T) {
	img := solid(30, 20, color.RGBA{255, 255, 255, 255})
	DrawLine(img, 10, 10, 20, 10, DefaultStrokeStyle())
	for _, x := range []int{8, 15, 22} {
		if img.RGBAAt(x, 10) != strokeRed {
			t.Fatalf("pixel (%d,10) = %v, want red", x, img.RGBAAt(x, 10))
		}
	}
	for _, x := range []int{7, 23} {
		if img.RGBAAt(x, 10) == strokeRed {
			t.Fatalf("pixel (%d,10) painted beyond the brush", x)
		}
	}
}
