//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"errors"
	"image"
	"os"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")

	clipboardInit  = clipboard.Init
	clipboardWrite = func(data []byte) { clipboard.Write(clipboard.FmtImage, data) }
	clipboardRead  = func() []byte { return clipboard.Read(clipboard.FmtImage) }
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		initErr = clipboardInit()
	})
	return initErr
}

// WriteImage publishes img to the clipboard as PNG.
func WriteImage(img image.Image) error {
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	if err := ensureInit(); err != nil {
		return err
	}
	clipboardWrite(data)
	return nil
}

// ReadImage decodes the PNG picture currently on the clipboard.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	return decodePNG(clipboardRead())
}
