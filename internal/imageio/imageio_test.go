package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 60), uint8(y * 80), 0, 255})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	src := testImage()
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(img.Pix, src.Pix) {
		t.Fatalf("decoded pixels differ")
	}
}

func TestDecodeRejectsNonImage(t *testing.T) {
	_, err := Decode(strings.NewReader("definitely not a picture, just some text"))
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
	_, err = Decode(strings.NewReader(""))
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage for empty input, got %v", err)
	}
}

func TestDecodeTruncatedPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	data := buf.Bytes()[:40]
	if _, err := Decode(bytes.NewReader(data)); err == nil {
		t.Fatalf("expected error for truncated png")
	}
}

func TestResolveHandle(t *testing.T) {
	cases := map[string]string{
		"/tmp/a.jpg":                   "/tmp/a.jpg",
		"file:///tmp/a.jpg":            "/tmp/a.jpg",
		"file://localhost/tmp/b.jpg":   "/tmp/b.jpg",
		"file:///tmp/with%20space.jpg": "/tmp/with space.jpg",
	}
	for in, want := range cases {
		got, err := ResolveHandle(in)
		if err != nil {
			t.Fatalf("ResolveHandle(%q): %v", in, err)
		}
		if got != filepath.FromSlash(want) {
			t.Fatalf("ResolveHandle(%q) = %q, want %q", in, got, want)
		}
	}
	for _, bad := range []string{"", "content://media/1", "file://host/x.jpg"} {
		if _, err := ResolveHandle(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestFileHandleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a b.png")
	h := FileHandle(path)
	if !strings.HasPrefix(h, "file://") {
		t.Fatalf("handle %q lacks scheme", h)
	}
	got, err := ResolveHandle(h)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != path {
		t.Fatalf("round trip %q -> %q", path, got)
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	writePNG(t, path, testImage())

	img := LoadImage(FileHandle(path))
	if img == nil {
		t.Fatal("expected image")
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds %v", img.Bounds())
	}
}

func TestLoadImageAbsence(t *testing.T) {
	dir := t.TempDir()
	if img := LoadImage(filepath.Join(dir, "missing.jpg")); img != nil {
		t.Fatal("expected nil for missing file")
	}
	corrupt := filepath.Join(dir, "corrupt.jpg")
	if err := os.WriteFile(corrupt, []byte{0xFF, 0xD8, 0xFF, 0x00, 0x01}, 0o644); err != nil {
		t.Fatal(err)
	}
	if img := LoadImage(corrupt); img != nil {
		t.Fatal("expected nil for corrupt file")
	}
	if img := LoadImage("content://media/external/images/1"); img != nil {
		t.Fatal("expected nil for unsupported scheme")
	}
}

func TestNames(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 2, 45*int(time.Millisecond), time.UTC)
	if got, want := EditedName(ts), "EditedPhoto_20240309_070502.jpg"; got != want {
		t.Fatalf("EditedName = %q, want %q", got, want)
	}
	if got, want := CaptureName(ts), "2024-03-09-07-05-02-045.jpg"; got != want {
		t.Fatalf("CaptureName = %q, want %q", got, want)
	}
}

func TestGallerySave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Pictures")
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	g := &Gallery{Dir: dir, Now: func() time.Time { return ts }}

	path, err := g.Save(testImage())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if want := filepath.Join(dir, "EditedPhoto_20240102_030405.jpg"); path != want {
		t.Fatalf("path %q, want %q", path, want)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := jpeg.Decode(f)
	if err != nil {
		t.Fatalf("decode saved jpeg: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("saved bounds %v", img.Bounds())
	}
}

func TestGallerySameSecondOverwrites(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	g := &Gallery{Dir: dir, Now: func() time.Time { return ts }}
	first, err := g.Save(testImage())
	if err != nil {
		t.Fatal(err)
	}
	second, err := g.Save(image.NewRGBA(image.Rect(0, 0, 9, 9)))
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("expected identical names within one second, got %q and %q", first, second)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one file, got %d", len(entries))
	}
}

func TestGalleryPersistFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	g := NewGallery(filepath.Join(blocker, "Pictures"))
	if g.Persist(testImage()) {
		t.Fatal("expected failure when directory cannot be created")
	}
	if g.Persist(nil) {
		t.Fatal("expected failure for nil image")
	}
}

func TestDefaultPicturesDirEnv(t *testing.T) {
	t.Setenv("XDG_PICTURES_DIR", "/srv/pics")
	if got := DefaultPicturesDir(); got != "/srv/pics" {
		t.Fatalf("DefaultPicturesDir = %q", got)
	}
	t.Setenv("XDG_DATA_HOME", "/srv/data")
	if got, want := DefaultCaptureDir(), filepath.Join("/srv/data", "photocanvas", "captures"); got != want {
		t.Fatalf("DefaultCaptureDir = %q, want %q", got, want)
	}
}

func TestExportPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := ExportPDF(path, testImage()); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a pdf")
	}
}
