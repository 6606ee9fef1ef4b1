package render

import (
	"image"
	"image/draw"
)

// Composite flattens base, strokes and an optional sticker into a new image
// the size of base using DefaultStrokeStyle.
func Composite(base image.Image, strokes [][]image.Point, sticker image.Image, at image.Point) *image.RGBA {
	return CompositeStyled(base, strokes, sticker, at, DefaultStrokeStyle())
}

// CompositeStyled is Composite with an explicit stroke style.
//
// The output always starts at the origin. Strokes are drawn in slice order
// and the sticker is drawn last, unscaled, with its top-left corner at at.
// Sticker pixels that fall outside the output are dropped. None of the
// inputs are modified.
func CompositeStyled(base image.Image, strokes [][]image.Point, sticker image.Image, at image.Point, style StrokeStyle) *image.RGBA {
	bb := base.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bb.Dx(), bb.Dy()))
	draw.Draw(out, out.Bounds(), base, bb.Min, draw.Src)

	for _, pts := range strokes {
		DrawPolyline(out, pts, style)
	}

	if sticker != nil {
		sb := sticker.Bounds()
		dst := image.Rectangle{Min: at, Max: at.Add(sb.Size())}
		draw.Draw(out, dst, sticker, sb.Min, draw.Over)
	}
	return out
}
