//go:build !((linux || freebsd || openbsd || netbsd || dragonfly) && cgo)

package clipboard

import (
	"errors"
	"image"
	"testing"
)

func TestUnsupportedPlatform(t *testing.T) {
	if err := WriteImage(image.NewRGBA(image.Rect(0, 0, 1, 1))); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("WriteImage = %v, want ErrUnsupported", err)
	}
	if _, err := ReadImage(); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("ReadImage = %v, want ErrUnsupported", err)
	}
}
