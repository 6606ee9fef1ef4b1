package main

import (
	"flag"
	"fmt"

	"github.com/example/photocanvas/internal/config"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *configCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *configCmd) Template() string { return "config.txt" }

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	c := &configCmd{root: r, fs: fs}
	if err := parseFlags(fs, args, c); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *configCmd) Run() error {
	switch sub := c.fs.Arg(0); sub {
	case "print":
		fmt.Fprint(c.stdout, c.effective().String())
		return nil
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", sub)
	}
}

// effective folds the global flags into a copy of the loaded config.
func (c *configCmd) effective() *config.Config {
	cfg := *c.config
	cfg.Theme = firstNonEmpty(c.themeName, cfg.Theme)
	cfg.SaveDir = firstNonEmpty(c.saveDir, cfg.SaveDir)
	cfg.CaptureDir = firstNonEmpty(c.captureDir, cfg.CaptureDir)
	cfg.StickerDir = firstNonEmpty(c.stickerDir, cfg.StickerDir)
	cfg.Notify = config.Notify{Capture: c.captureAlerts, Save: c.saveAlerts, Copy: c.copyAlerts}
	return &cfg
}

func (c *configCmd) runSave() error {
	path := config.NewLoader(version, configPathOverride).DefaultSavePath()
	if err := c.effective().Save(path); err != nil {
		return fmt.Errorf("failed to save config %s: %w", path, err)
	}
	fmt.Fprintf(c.stderr, "Configuration saved to %s\n", path)
	return nil
}
