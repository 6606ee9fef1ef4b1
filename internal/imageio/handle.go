package imageio

import (
	"fmt"
	"image"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ResolveHandle converts an opaque content handle into a filesystem path.
// Handles are either file:// URIs or plain paths.
func ResolveHandle(handle string) (string, error) {
	h := strings.TrimSpace(handle)
	if h == "" {
		return "", fmt.Errorf("empty handle")
	}
	if !strings.Contains(h, "://") {
		return h, nil
	}
	u, err := url.Parse(h)
	if err != nil {
		return "", fmt.Errorf("parse handle %q: %w", handle, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported handle scheme %q", u.Scheme)
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", fmt.Errorf("remote file handle %q", handle)
	}
	if u.Path == "" {
		return "", fmt.Errorf("handle %q has no path", handle)
	}
	return filepath.FromSlash(u.Path), nil
}

// FileHandle returns the file:// handle for path.
func FileHandle(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// OpenImage resolves handle and decodes the image behind it.
func OpenImage(handle string) (*image.RGBA, error) {
	path, err := ResolveHandle(handle)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("error closing %q: %v", path, cerr)
		}
	}()
	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// LoadImage is OpenImage for callers that only care about presence. Any
// failure is logged and reported as nil.
func LoadImage(handle string) *image.RGBA {
	img, err := OpenImage(handle)
	if err != nil {
		log.Printf("load image %s: %v", handle, err)
		return nil
	}
	return img
}
