//go:build !((linux || freebsd || openbsd || netbsd || dragonfly) && cgo)

package clipboard

import "image"

// WriteImage is not available on this platform and always returns
// ErrUnsupported.
func WriteImage(image.Image) error { return ErrUnsupported }

// ReadImage is not available on this platform and always returns
// ErrUnsupported.
func ReadImage() (image.Image, error) { return nil, ErrUnsupported }
