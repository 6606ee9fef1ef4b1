package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned when the content behind a handle is not a
// recognised image format.
var ErrNotImage = errors.New("content is not an image")

// sniffLen matches the header size filetype inspects.
const sniffLen = 262

// Decode reads an image from r and returns it as an RGBA buffer whose
// bounds start at the origin.
func Decode(r io.Reader) (*image.RGBA, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(head) == 0 {
		return nil, fmt.Errorf("empty content: %w", ErrNotImage)
	}
	if !filetype.IsImage(head) {
		return nil, ErrNotImage
	}
	src, _, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToRGBA(src), nil
}

// ToRGBA copies src into a new RGBA image rebased to the origin.
func ToRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	return rgba
}
