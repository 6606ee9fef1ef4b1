package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/photocanvas/internal/imageio"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestCaptureWritesTimestampedJPEG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "captures")
	c := New(dir, SourceFunc(func(context.Context) (*image.RGBA, error) {
		return solid(8, 6, color.RGBA{G: 200, A: 255}), nil
	}))
	c.Now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 123_000_000, time.UTC) }

	handle, err := c.Capture(context.Background())
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	want := filepath.Join(dir, "2024-05-06-07-08-09-123.jpg")
	if handle != imageio.FileHandle(want) {
		t.Fatalf("handle = %q, want %q", handle, imageio.FileHandle(want))
	}
	img := imageio.LoadImage(handle)
	if img == nil {
		t.Fatalf("captured file not decodable")
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}

func TestCaptureSourceError(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, SourceFunc(func(context.Context) (*image.RGBA, error) {
		return nil, ErrCancelled
	}))
	if _, err := c.Capture(context.Background()); !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("unexpected files after failed capture: %d", len(entries))
	}
}

func TestCaptureWithoutSource(t *testing.T) {
	c := &Capturer{Dir: t.TempDir()}
	if _, err := c.Capture(context.Background()); err == nil {
		t.Fatalf("expected error without source")
	}
}

func TestFileSource(t *testing.T) {
	src := filepath.Join(t.TempDir(), "in.jpg")
	if err := imageio.WriteJPEG(src, solid(4, 4, color.RGBA{B: 255, A: 255}), 90); err != nil {
		t.Fatalf("WriteJPEG: %v", err)
	}
	img, err := FileSource(src).Grab(context.Background())
	if err != nil {
		t.Fatalf("Grab: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Fatalf("bounds = %v", img.Bounds())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FileSource(src).Grab(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if _, err := FileSource(filepath.Join(t.TempDir(), "missing.jpg")).Grab(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
