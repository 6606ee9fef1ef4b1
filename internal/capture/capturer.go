package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/example/photocanvas/internal/clipboard"
	"github.com/example/photocanvas/internal/imageio"
)

// ErrCancelled is returned when the user dismisses the capture request.
var ErrCancelled = errors.New("capture cancelled")

// Source produces the pixels of a new photo.
type Source interface {
	Grab(ctx context.Context) (*image.RGBA, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*image.RGBA, error)

// Grab calls f.
func (f SourceFunc) Grab(ctx context.Context) (*image.RGBA, error) { return f(ctx) }

// FileSource imports an existing picture as the captured photo.
func FileSource(path string) Source {
	return SourceFunc(func(ctx context.Context) (*image.RGBA, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return imageio.OpenImage(path)
	})
}

// ClipboardSource takes the picture currently on the clipboard.
func ClipboardSource() Source {
	return SourceFunc(func(ctx context.Context) (*image.RGBA, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := clipboard.ReadImage()
		if err != nil {
			return nil, err
		}
		return imageio.ToRGBA(img), nil
	})
}

// Capturer writes captured photos into the application's private capture
// directory and reports them as file handles.
type Capturer struct {
	Dir     string
	Now     func() time.Time
	Source  Source
	Quality int
}

// New returns a Capturer writing to dir (DefaultCaptureDir when empty) from
// src (the desktop portal when nil).
func New(dir string, src Source) *Capturer {
	if dir == "" {
		dir = imageio.DefaultCaptureDir()
	}
	if src == nil {
		src = PortalSource{}
	}
	return &Capturer{Dir: dir, Now: time.Now, Source: src, Quality: imageio.MaxQuality}
}

// Capture grabs one photo and returns the handle of the stored file.
func (c *Capturer) Capture(ctx context.Context) (string, error) {
	if c.Source == nil {
		return "", fmt.Errorf("capture: no source configured")
	}
	img, err := c.Source.Grab(ctx)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return "", fmt.Errorf("capture: create %s: %w", c.Dir, err)
	}
	path := filepath.Join(c.Dir, imageio.CaptureName(now()))
	quality := c.Quality
	if quality <= 0 {
		quality = imageio.MaxQuality
	}
	if err := imageio.WriteJPEG(path, img, quality); err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	log.Printf("captured %s", path)
	return imageio.FileHandle(path), nil
}
