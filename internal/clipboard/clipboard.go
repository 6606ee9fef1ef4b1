// Package clipboard moves finished pictures to and from the desktop
// clipboard as PNG data.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
)

// ErrUnsupported is returned where no clipboard backend is compiled in.
var ErrUnsupported = errors.New("clipboard image operations are not supported on this platform")

// ErrEmpty is returned by ReadImage when the clipboard holds no picture.
var ErrEmpty = errors.New("clipboard does not contain image data")

func encodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("clipboard: no image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("clipboard: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func decodePNG(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("clipboard: decode png: %w", err)
	}
	return img, nil
}
