package imageio

import (
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxQuality is the JPEG quality used for exported pictures.
const MaxQuality = 100

// Gallery writes finished pictures into a shared pictures directory.
type Gallery struct {
	Dir     string
	Now     func() time.Time
	Quality int
}

// NewGallery returns a Gallery rooted at dir, or at DefaultPicturesDir when
// dir is empty.
func NewGallery(dir string) *Gallery {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultPicturesDir()
	}
	return &Gallery{Dir: dir, Now: time.Now, Quality: MaxQuality}
}

// EditedName returns the file name used for an export made at t. Names are
// only unique to the second.
func EditedName(t time.Time) string {
	return "EditedPhoto_" + t.Format("20060102_150405") + ".jpg"
}

// CaptureName returns the yyyy-MM-dd-HH-mm-ss-SSS.jpg name for a capture
// taken at t.
func CaptureName(t time.Time) string {
	return fmt.Sprintf("%s-%03d.jpg", t.Format("2006-01-02-15-04-05"), t.Nanosecond()/int(time.Millisecond))
}

// Save encodes img as JPEG into the gallery and returns the written path.
// An existing file with the same name is overwritten, and a failed encode
// leaves whatever was written so far on disk.
func (g *Gallery) Save(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("save: no image")
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create pictures dir: %w", err)
	}
	path := filepath.Join(g.Dir, EditedName(now()))
	if err := WriteJPEG(path, img, g.quality()); err != nil {
		return "", err
	}
	return path, nil
}

// Persist is Save for callers that only need a success flag.
func (g *Gallery) Persist(img image.Image) bool {
	path, err := g.Save(img)
	if err != nil {
		log.Printf("save: %v", err)
		return false
	}
	log.Printf("saved %s", path)
	return true
}

func (g *Gallery) quality() int {
	if g.Quality <= 0 || g.Quality > MaxQuality {
		return MaxQuality
	}
	return g.Quality
}

// WriteJPEG encodes img to path with the given quality.
func WriteJPEG(path string, img image.Image, quality int) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: quality}); err != nil {
		if cerr := out.Close(); cerr != nil {
			log.Printf("error closing %q: %v", path, cerr)
		}
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// DefaultPicturesDir returns the user's pictures directory, honouring
// XDG_PICTURES_DIR.
func DefaultPicturesDir() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_PICTURES_DIR")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "Pictures"
	}
	return filepath.Join(home, "Pictures")
}

// DefaultCaptureDir returns the application's private capture area.
func DefaultCaptureDir() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); dir != "" {
		return filepath.Join(dir, "photocanvas", "captures")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "photocanvas", "captures")
	}
	return filepath.Join(home, ".local", "share", "photocanvas", "captures")
}
