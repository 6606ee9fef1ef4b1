package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/photocanvas/internal/config"
	"github.com/example/photocanvas/internal/imageio"
	"github.com/example/photocanvas/internal/notify"
	"github.com/example/photocanvas/internal/stickers"
	"github.com/example/photocanvas/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs       *flag.FlagSet
	program  string
	stdout   io.Writer
	stderr   io.Writer
	config   *config.Config
	notifier *notify.Notifier

	captureAlerts bool
	saveAlerts    bool
	copyAlerts    bool
	themeName     string
	saveDir       string
	captureDir    string
	stickerDir    string
	activeTheme   *theme.Theme
}

func (r *root) Program() string { return r.program }

func (r *root) FlagSet() *flag.FlagSet { return r.fs }

// subcommand returns a copy of r for the named child command.
func (r *root) subcommand(name string) *root {
	child := *r
	child.fs = nil
	child.program = strings.TrimSpace(r.program + " " + name)
	return &child
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	cfg.Env()

	r := &root{
		fs:       flag.NewFlagSet("photocanvas", flag.ContinueOnError),
		program:  "photocanvas",
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		config:   cfg,
		notifier: notify.New(notify.LoadPreferences()),
	}
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", cfg.Notify.Capture, "show a desktop notification after capturing a photo")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a photo")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	// Precedence: CLI > Env > Config > Default. Env is already folded into cfg.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme for the edit screen ("+strings.Join(theme.Embedded(), ", ")+" or a file)")
	r.fs.StringVar(&r.saveDir, "save-dir", "", "directory receiving saved photos (default: pictures directory)")
	r.fs.StringVar(&r.captureDir, "capture-dir", "", "directory receiving captured photos")
	r.fs.StringVar(&r.stickerDir, "sticker-dir", "", "directory of sticker images replacing the bundled set")
	return r
}

func (r *root) Run(args []string) error {
	if err := parseFlags(r.fs, args, r); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.notifier.Enable(notify.EventCapture, r.captureAlerts)
	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	r.activeTheme = r.loadTheme()

	name := r.fs.Arg(0)
	args = r.fs.Args()[1:]
	var (
		cmd runnable
		err error
	)
	switch name {
	case "app":
		cmd, err = parseAppCmd(args, r.subcommand(name))
	case "capture":
		cmd, err = parseCaptureCmd(args, r.subcommand(name))
	case "edit":
		cmd, err = parseEditCmd(args, r.subcommand(name))
	case "compose":
		cmd, err = parseComposeCmd(args, r.subcommand(name))
	case "stickers":
		cmd, err = parseStickersCmd(args, r.subcommand(name))
	case "config":
		cmd, err = parseConfigCmd(args, r.subcommand(name))
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) loadTheme() *theme.Theme {
	name := firstNonEmpty(r.themeName, r.config.Theme)
	loader := theme.NewLoader()
	loader.Custom = r.config.Themes
	t, err := loader.Load(name)
	if err != nil {
		if name != "default" {
			fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

func (r *root) gallery() *imageio.Gallery {
	return imageio.NewGallery(firstNonEmpty(r.saveDir, r.config.SaveDir))
}

func (r *root) captureDirectory() string {
	return firstNonEmpty(r.captureDir, r.config.CaptureDir)
}

func (r *root) catalog() []*stickers.Sticker {
	return stickers.Load(firstNonEmpty(r.stickerDir, r.config.StickerDir))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
