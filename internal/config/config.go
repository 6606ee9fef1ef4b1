// Package config reads and writes the photocanvas RC file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/example/photocanvas/internal/theme"
)

// Notify selects which events raise a desktop notification.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Config holds the application configuration.
type Config struct {
	Theme      string
	SaveDir    string
	CaptureDir string
	StickerDir string
	// Camera gates the capture screen; false behaves like a denied
	// camera permission.
	Camera bool
	Notify Notify
	Themes map[string]*theme.Theme
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		Camera: true,
		Themes: make(map[string]*theme.Theme),
	}
}

// String returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder
	root := []struct{ key, value string }{
		{"theme", c.Theme},
		{"save_dir", c.SaveDir},
		{"capture_dir", c.CaptureDir},
		{"sticker_dir", c.StickerDir},
	}
	for _, kv := range root {
		if kv.value != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv.key, kv.value)
		}
	}
	fmt.Fprintf(&sb, "camera = %v\n\n", c.Camera)

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n\n", c.Notify.Copy)

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = c.Themes[name].Format(&sb, " =")
		sb.WriteString("\n")
	}
	return sb.String()
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(c.String()), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Env overlays environment variables: PHOTOCANVAS_THEME,
// PHOTOCANVAS_SAVE_DIR, PHOTOCANVAS_CAPTURE_DIR, PHOTOCANVAS_STICKER_DIR and
// PHOTOCANVAS_CAMERA.
func (c *Config) Env() {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	str("PHOTOCANVAS_THEME", &c.Theme)
	str("PHOTOCANVAS_SAVE_DIR", &c.SaveDir)
	str("PHOTOCANVAS_CAPTURE_DIR", &c.CaptureDir)
	str("PHOTOCANVAS_STICKER_DIR", &c.StickerDir)
	if v := strings.TrimSpace(os.Getenv("PHOTOCANVAS_CAMERA")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Camera = b
		}
	}
}
