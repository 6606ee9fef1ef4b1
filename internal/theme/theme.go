// Package theme holds the colour palette of the edit screen.
package theme

import (
	"embed"
	"image/color"
)

// EmbeddedThemes carries the themes shipped with the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS

// Theme defines the colours used to paint the edit screen.
type Theme struct {
	Name string

	Background color.RGBA // window background around the photo
	Foreground color.RGBA // fallback and label text

	// Button bar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Sticker grid
	GridBackground color.RGBA
	GridSelected   color.RGBA

	// Transient status line
	StatusBackground color.RGBA
	StatusText       color.RGBA

	// Shown behind transparent photos
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the built-in light palette.
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		GridBackground:        color.RGBA{235, 235, 235, 255},
		GridSelected:          color.RGBA{255, 200, 0, 255},
		StatusBackground:      color.RGBA{40, 40, 40, 230},
		StatusText:            color.RGBA{255, 255, 255, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
	}
}
