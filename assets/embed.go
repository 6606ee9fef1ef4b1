package assets

import (
	"embed"
	"io/fs"
)

// StickerDir is the directory inside Stickers that holds the bundled set.
const StickerDir = "stickers"

// Embedded sticker images bundled with photocanvas.
//
//go:embed stickers/*.png
var embeddedStickers embed.FS

// Stickers returns the bundled sticker filesystem. Images live under
// StickerDir.
func Stickers() fs.FS {
	return embeddedStickers
}
