//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"context"
	"fmt"
	"image"
)

// PortalSource is unavailable on this platform.
type PortalSource struct {
	Interactive bool
}

// Grab always fails on this platform.
func (PortalSource) Grab(context.Context) (*image.RGBA, error) {
	return nil, fmt.Errorf("portal capture is not supported on this platform")
}
