package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/example/photocanvas/internal/capture"
	"github.com/example/photocanvas/internal/imageio"
	"github.com/example/photocanvas/internal/notify"
)

// sourceFlags selects where new photos come from.
type sourceFlags struct {
	from          string
	fromClipboard bool
	interactive   bool
}

func (s *sourceFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.from, "from", "", "import this picture file instead of using the desktop capture portal")
	fs.BoolVar(&s.fromClipboard, "from-clipboard", false, "take the picture currently on the clipboard")
	fs.BoolVar(&s.fromClipboard, "from-clip", false, "take the picture currently on the clipboard (alias)")
	fs.BoolVar(&s.interactive, "interactive", true, "let the user choose what the portal captures")
}

func (s *sourceFlags) validate() error {
	if s.from != "" && s.fromClipboard {
		return fmt.Errorf("-from cannot be used with -from-clipboard")
	}
	return nil
}

func (s *sourceFlags) source() capture.Source {
	switch {
	case s.from != "":
		return capture.FileSource(s.from)
	case s.fromClipboard:
		return capture.ClipboardSource()
	default:
		return capture.PortalSource{Interactive: s.interactive}
	}
}

// newCapturer is replaced in tests.
var newCapturer = capture.New

// capturePhoto runs one capture and raises the capture notification.
func (r *root) capturePhoto(ctx context.Context, src capture.Source) (string, error) {
	handle, err := newCapturer(r.captureDirectory(), src).Capture(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to capture photo: %w", err)
	}
	if r.notifier.Enabled(notify.EventCapture) {
		r.notifier.Capture(handle, imageio.LoadImage(handle))
	}
	return handle, nil
}

type captureCmd struct {
	*root
	fs      *flag.FlagSet
	src     sourceFlags
	timeout time.Duration
}

func (c *captureCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *captureCmd) Template() string { return "capture.txt" }

func parseCaptureCmd(args []string, r *root) (*captureCmd, error) {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	c := &captureCmd{root: r, fs: fs}
	c.src.register(fs)
	fs.DurationVar(&c.timeout, "timeout", 0, "give up waiting for the capture after this long (0 waits forever)")
	if err := parseFlags(fs, args, c); err != nil {
		return nil, err
	}
	if err := c.src.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *captureCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	handle, err := c.capturePhoto(ctx, c.src.source())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, handle)
	return nil
}
