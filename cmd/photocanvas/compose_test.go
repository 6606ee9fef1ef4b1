package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/photocanvas/internal/imageio"
)

func TestParsePoints(t *testing.T) {
	pts, err := parsePoints(" 1,2  30, 40 ")
	if err == nil {
		t.Fatalf("expected error for split point, got %v", pts)
	}
	pts, err = parsePoints("1,2 30,40 -5,6")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []image.Point{{1, 2}, {30, 40}, {-5, 6}}
	if len(pts) != len(want) {
		t.Fatalf("got %v, want %v", pts, want)
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Fatalf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}
	if _, err := parsePoints("   "); err == nil {
		t.Fatalf("expected error for empty stroke")
	}
	if _, err := parsePoint("7"); err == nil {
		t.Fatalf("expected error for missing y")
	}
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("Red")
	if err != nil || c != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("red = %v, %v", c, err)
	}
	c, err = parseColor("#00ff0080")
	if err != nil || c != (color.RGBA{0, 255, 0, 128}) {
		t.Fatalf("hex = %v, %v", c, err)
	}
	if _, err := parseColor("not-a-colour"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestComposeRequiresHandle(t *testing.T) {
	r, _, _ := testRoot(t)
	_, err := parseComposeCmd([]string{"-stroke", "0,0 1,1"}, r)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestComposeStickerPosNeedsSticker(t *testing.T) {
	r, _, _ := testRoot(t)
	_, err := parseComposeCmd([]string{"-handle", "x.png", "-sticker-pos", "1,1"}, r)
	if err == nil || !strings.Contains(err.Error(), "-sticker-pos needs -sticker") {
		t.Fatalf("expected sticker error, got %v", err)
	}
}

func TestComposeRejectsUnknownFormat(t *testing.T) {
	r, _, _ := testRoot(t)
	if _, err := parseComposeCmd([]string{"-handle", "x.png", "-format", "gif"}, r); err == nil {
		t.Fatalf("expected format error")
	}
}

func TestComposeDrawsStrokesToOutput(t *testing.T) {
	r, stdout, stderr := testRoot(t)
	dir := t.TempDir()
	src := writePhoto(t, dir, 120, 80)
	out := filepath.Join(dir, "nested", "out.jpg")
	cmd, err := parseComposeCmd([]string{"-handle", imageio.FileHandle(src), "-stroke", "10,20 100,20", "-output", out}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(stdout.String()) != out {
		t.Fatalf("stdout = %q, want %q", stdout.String(), out)
	}
	if !strings.Contains(stderr.String(), "saved "+out) {
		t.Fatalf("stderr = %q", stderr.String())
	}
	img := imageio.LoadImage(out)
	if img == nil {
		t.Fatalf("output not readable")
	}
	if img.Bounds() != image.Rect(0, 0, 120, 80) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	on := img.RGBAAt(50, 20)
	if on.R < 200 || on.G > 80 || on.B > 80 {
		t.Fatalf("expected red stroke at (50,20), got %v", on)
	}
	off := img.RGBAAt(50, 60)
	if off.R < 200 || off.G < 200 || off.B < 200 {
		t.Fatalf("expected untouched pixel at (50,60), got %v", off)
	}
}

func TestComposeSavesIntoGallery(t *testing.T) {
	r, _, _ := testRoot(t)
	src := writePhoto(t, t.TempDir(), 40, 30)
	cmd, err := parseComposeCmd([]string{"-handle", src, "-sticker", "0"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	when := time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)
	cmd.now = func() time.Time { return when }
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := filepath.Join(r.config.SaveDir, imageio.EditedName(when))
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected %s: %v", want, err)
	}
}

func TestComposeExportsPDF(t *testing.T) {
	r, _, _ := testRoot(t)
	dir := t.TempDir()
	src := writePhoto(t, dir, 50, 40)
	out := filepath.Join(dir, "out.pdf")
	cmd, err := parseComposeCmd([]string{"-handle", src, "-sticker", "0", "-sticker-pos", "5,5", "-output", out}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.format != "pdf" {
		t.Fatalf("format = %q, want pdf", cmd.format)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestComposeMissingPhoto(t *testing.T) {
	r, _, _ := testRoot(t)
	cmd, err := parseComposeCmd([]string{"-handle", filepath.Join(t.TempDir(), "missing.png")}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "failed to load picture") {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestComposeReplaysSession(t *testing.T) {
	r, _, _ := testRoot(t)
	cmd, err := parseComposeCmd([]string{"-handle", "x.png", "-stroke", "1,1 2,2", "-stroke", "5,5", "-sticker", "0", "-sticker-pos", "7,8"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sess, err := cmd.replay()
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	strokes := sess.Strokes()
	if len(strokes) != 2 || len(strokes[0].Points) != 2 || len(strokes[1].Points) != 1 {
		t.Fatalf("unexpected strokes %+v", strokes)
	}
	if _, open := sess.OpenStroke(); open {
		t.Fatalf("replayed strokes must be closed")
	}
	if !sess.HasSticker() || sess.StickerPosition() != image.Pt(7, 8) {
		t.Fatalf("sticker = %v at %v", sess.HasSticker(), sess.StickerPosition())
	}
}
