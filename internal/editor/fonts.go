package editor

import (
	"image"
	"image/color"
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	fontOnce    sync.Once
	labelFace   font.Face = basicfont.Face7x13
	messageFace font.Face = basicfont.Face7x13
)

// loadFonts replaces the bitmap fallback faces with Go Regular.
func loadFonts() {
	fontOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			log.Printf("parse font: %v", err)
			return
		}
		if face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 15, DPI: 72, Hinting: font.HintingFull}); err == nil {
			labelFace = face
		} else {
			log.Printf("font face: %v", err)
		}
		if face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 22, DPI: 72, Hinting: font.HintingFull}); err == nil {
			messageFace = face
		} else {
			log.Printf("font face: %v", err)
		}
	})
}

func textWidth(face font.Face, s string) int {
	return (&font.Drawer{Face: face}).MeasureString(s).Ceil()
}

// drawTextCentered draws s centred in r.
func drawTextCentered(dst *image.RGBA, face font.Face, col color.Color, r image.Rectangle, s string) {
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	x := r.Min.X + (r.Dx()-textWidth(face, s))/2
	y := r.Min.Y + (r.Dy()-ascent-descent)/2 + ascent
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face, Dot: fixed.P(x, y)}
	d.DrawString(s)
}
