package stickers

import (
	"fmt"
	"image"
	"io/fs"
	"log"
	"os"
	"path"
	"strconv"
	"strings"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/example/photocanvas/assets"
	"github.com/example/photocanvas/internal/imageio"
)

// Sticker is a decoded catalog image. Stickers are shared by reference
// between the catalog and an edit session and must not be modified.
type Sticker struct {
	Name  string
	Image *image.RGBA

	thumbMu sync.Mutex
	thumbs  map[int]*image.RGBA
}

// New wraps img as a sticker called name.
func New(name string, img *image.RGBA) *Sticker {
	return &Sticker{Name: name, Image: img}
}

// Size reports the unscaled sticker dimensions.
func (s *Sticker) Size() image.Point {
	if s == nil || s.Image == nil {
		return image.Point{}
	}
	return s.Image.Bounds().Size()
}

// Thumbnail returns the sticker scaled to fit a size x size square while
// keeping its aspect ratio. Results are cached per size.
func (s *Sticker) Thumbnail(size int) *image.RGBA {
	if s == nil || s.Image == nil || size <= 0 {
		return nil
	}
	s.thumbMu.Lock()
	defer s.thumbMu.Unlock()
	if t, ok := s.thumbs[size]; ok {
		return t
	}
	b := s.Image.Bounds()
	w, h := size, size
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*size/b.Dx())
	} else if b.Dy() > b.Dx() {
		w = max(1, b.Dx()*size/b.Dy())
	}
	t := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(t, t.Bounds(), s.Image, b, xdraw.Src, nil)
	if s.thumbs == nil {
		s.thumbs = make(map[int]*image.RGBA)
	}
	s.thumbs[size] = t
	return t
}

// LoadCatalog decodes every file in dir. Entries that cannot be read or
// decoded are logged and skipped. The result follows fs.ReadDir order,
// which sorts by file name.
func LoadCatalog(fsys fs.FS, dir string) []*Sticker {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		log.Printf("stickers: list %s: %v", dir, err)
		return nil
	}
	var out []*Sticker
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		img, err := decodeFile(fsys, path.Join(dir, name))
		if err != nil {
			log.Printf("stickers: %s: %v", name, err)
			continue
		}
		out = append(out, New(strings.TrimSuffix(name, path.Ext(name)), img))
	}
	return out
}

func decodeFile(fsys fs.FS, name string) (*image.RGBA, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("error closing %q: %v", name, cerr)
		}
	}()
	return imageio.Decode(f)
}

// Default returns the catalog bundled with the binary.
func Default() []*Sticker {
	return LoadCatalog(assets.Stickers(), assets.StickerDir)
}

// Load returns the catalog found in dir, or the bundled catalog when dir is
// empty or yields no stickers.
func Load(dir string) []*Sticker {
	if strings.TrimSpace(dir) != "" {
		if cat := LoadCatalog(os.DirFS(dir), "."); len(cat) > 0 {
			return cat
		}
		log.Printf("stickers: no usable stickers in %s, using bundled set", dir)
	}
	return Default()
}

// Find looks a sticker up by name or by zero-based catalog index. Names
// match case-insensitively with or without a leading ordering prefix such
// as "01-".
func Find(catalog []*Sticker, key string) (*Sticker, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("empty sticker name")
	}
	if idx, err := strconv.Atoi(key); err == nil {
		if idx < 0 || idx >= len(catalog) {
			return nil, fmt.Errorf("sticker index %d out of range", idx)
		}
		return catalog[idx], nil
	}
	for _, s := range catalog {
		if strings.EqualFold(s.Name, key) || strings.EqualFold(displayName(s.Name), key) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sticker %q not found", key)
}

// DisplayName strips a leading ordering prefix from the sticker name.
func (s *Sticker) DisplayName() string {
	if s == nil {
		return ""
	}
	return displayName(s.Name)
}

func displayName(name string) string {
	trimmed := strings.TrimLeft(name, "0123456789")
	if trimmed != name && strings.HasPrefix(trimmed, "-") && len(trimmed) > 1 {
		return trimmed[1:]
	}
	return name
}
