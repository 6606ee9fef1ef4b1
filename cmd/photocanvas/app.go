package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/example/photocanvas/internal/nav"
)

type appCmd struct {
	*root
	fs  *flag.FlagSet
	src sourceFlags
}

func (a *appCmd) FlagSet() *flag.FlagSet { return a.fs }

func (a *appCmd) Template() string { return "app.txt" }

func parseAppCmd(args []string, r *root) (*appCmd, error) {
	fs := flag.NewFlagSet("app", flag.ContinueOnError)
	a := &appCmd{root: r, fs: fs}
	a.src.register(fs)
	if err := parseFlags(fs, args, a); err != nil {
		return nil, err
	}
	if err := a.src.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *appCmd) shell() *nav.Shell {
	src := a.src.source()
	return &nav.Shell{
		Grants: nav.ProbeGrants(a.gallery().Dir, a.config.Camera),
		Capture: func(ctx context.Context) (string, error) {
			return a.capturePhoto(ctx, src)
		},
		Edit: func(_ context.Context, handle string, storageGranted bool) error {
			return a.openEditor(handle, storageGranted)
		},
		Navigate: func(route string) { log.Printf("navigate %s", route) },
	}
}

func (a *appCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return a.shell().Run(ctx)
}
