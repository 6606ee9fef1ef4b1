package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/colornames"

	"github.com/example/photocanvas/internal/clipboard"
	"github.com/example/photocanvas/internal/imageio"
	"github.com/example/photocanvas/internal/render"
	"github.com/example/photocanvas/internal/session"
	"github.com/example/photocanvas/internal/stickers"
	"github.com/example/photocanvas/internal/theme"
)

// strokeList collects repeated -stroke flags.
type strokeList [][]image.Point

func (s *strokeList) String() string {
	if s == nil {
		return ""
	}
	parts := make([]string, 0, len(*s))
	for _, st := range *s {
		parts = append(parts, formatPoints(st))
	}
	return strings.Join(parts, "; ")
}

func (s *strokeList) Set(v string) error {
	pts, err := parsePoints(v)
	if err != nil {
		return err
	}
	*s = append(*s, pts)
	return nil
}

type composeCmd struct {
	*root
	fs          *flag.FlagSet
	handle      string
	strokes     strokeList
	sticker     string
	stickerPos  string
	output      string
	format      string
	toClipboard bool
	colorSpec   string
	width       int

	style  render.StrokeStyle
	moveTo *image.Point
	now    func() time.Time
}

func (c *composeCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *composeCmd) Template() string { return "compose.txt" }

func parseComposeCmd(args []string, r *root) (*composeCmd, error) {
	fs := flag.NewFlagSet("compose", flag.ContinueOnError)
	c := &composeCmd{root: r, fs: fs, now: time.Now}
	def := render.DefaultStrokeStyle()
	fs.StringVar(&c.handle, "handle", "", "photo to compose onto, as a file:// URI or path")
	fs.Var(&c.strokes, "stroke", "stroke points \"x,y x,y ...\" (repeatable)")
	fs.StringVar(&c.sticker, "sticker", "", "sticker name or catalog index to place")
	fs.StringVar(&c.stickerPos, "sticker-pos", "", "sticker top-left corner as x,y (default 100,100)")
	fs.StringVar(&c.output, "output", "", "write the result to this path instead of the gallery")
	fs.StringVar(&c.format, "format", "", "output format: jpeg or pdf (default from -output, else jpeg)")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	fs.StringVar(&c.colorSpec, "stroke-color", "red", "stroke color name or #RRGGBB")
	fs.IntVar(&c.width, "stroke-width", def.Width, "stroke width in pixels")
	if err := parseFlags(fs, args, c); err != nil {
		return nil, err
	}
	if c.handle == "" && fs.NArg() > 0 {
		c.handle = fs.Arg(0)
	}
	if c.handle == "" {
		return nil, &UsageError{of: c}
	}
	col, err := parseColor(c.colorSpec)
	if err != nil {
		return nil, err
	}
	if c.width < 1 {
		return nil, fmt.Errorf("-stroke-width must be at least 1")
	}
	c.style = render.StrokeStyle{Color: col, Width: c.width}
	if c.stickerPos != "" {
		if c.sticker == "" {
			return nil, fmt.Errorf("-sticker-pos needs -sticker")
		}
		pt, err := parsePoint(c.stickerPos)
		if err != nil {
			return nil, err
		}
		c.moveTo = &pt
	}
	if c.format == "" {
		c.format = formatFor(c.output)
	}
	switch c.format {
	case "jpeg", "jpg":
		c.format = "jpeg"
	case "pdf":
	default:
		return nil, fmt.Errorf("unknown format %q", c.format)
	}
	return c, nil
}

// replay builds the session the flags describe.
func (c *composeCmd) replay() (*session.Session, error) {
	sess := session.New()
	for _, st := range c.strokes {
		for _, p := range st {
			sess.AddPoint(p)
		}
		sess.EndStroke()
	}
	if c.sticker != "" {
		st, err := stickers.Find(c.catalog(), c.sticker)
		if err != nil {
			return nil, err
		}
		sess.SelectSticker(st)
		if c.moveTo != nil {
			sess.MoveSticker(*c.moveTo)
		}
	}
	return sess, nil
}

func (c *composeCmd) Run() error {
	base, err := imageio.OpenImage(c.handle)
	if err != nil {
		return fmt.Errorf("failed to load picture: %w", err)
	}
	sess, err := c.replay()
	if err != nil {
		return err
	}
	snap := sess.Snapshot()
	img := render.CompositeStyled(base, snap.Polylines(), snap.StickerImage(), snap.StickerPos, c.style)

	if c.toClipboard {
		if err := clipboard.WriteImage(img); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		c.notifier.Copy("photo")
		fmt.Fprintln(c.stderr, "copied to clipboard")
		if c.output == "" {
			return nil
		}
	}

	path, err := c.write(img)
	if err != nil {
		c.notifier.SaveFailed(err)
		return fmt.Errorf("failed to save photo: %w", err)
	}
	c.notifier.Save(path)
	fmt.Fprintf(c.stderr, "saved %s\n", path)
	fmt.Fprintln(c.stdout, path)
	return nil
}

func (c *composeCmd) write(img image.Image) (string, error) {
	if c.format == "pdf" {
		path := c.output
		if path == "" {
			name := strings.TrimSuffix(imageio.EditedName(c.now()), ".jpg") + ".pdf"
			path = filepath.Join(c.gallery().Dir, name)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", err
		}
		return path, imageio.ExportPDF(path, img)
	}
	if c.output == "" {
		g := c.gallery()
		g.Now = c.now
		return g.Save(img)
	}
	if err := os.MkdirAll(filepath.Dir(c.output), 0o755); err != nil {
		return "", err
	}
	return c.output, imageio.WriteJPEG(c.output, img, imageio.MaxQuality)
}

func formatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return "pdf"
	}
	return "jpeg"
}

func parsePoint(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return image.Point{}, fmt.Errorf("invalid point %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return image.Pt(x, y), nil
}

func parsePoints(s string) ([]image.Point, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("stroke needs at least one point")
	}
	pts := make([]image.Point, 0, len(fields))
	for _, f := range fields {
		p, err := parsePoint(f)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func formatPoints(pts []image.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%d,%d", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

// parseColor accepts CSS colour names and #RRGGBB[AA].
func parseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	c, err := theme.ParseColor(spec)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}
