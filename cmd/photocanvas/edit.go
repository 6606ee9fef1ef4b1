package main

import (
	"errors"
	"flag"

	"github.com/example/photocanvas/internal/editor"
	"github.com/example/photocanvas/internal/nav"
)

// runEditor is replaced in tests.
var runEditor = func(s *editor.Screen) error { return s.Run() }

// openEditor shows the edit screen for handle and blocks until it closes.
func (r *root) openEditor(handle string, storageGranted bool) error {
	scr := editor.Open(handle,
		editor.WithGallery(r.gallery()),
		editor.WithNotifier(r.notifier),
		editor.WithTheme(r.activeTheme),
		editor.WithStorageGranted(storageGranted),
		editor.WithCatalog(r.catalog()),
	)
	return runEditor(scr)
}

type editCmd struct {
	*root
	fs     *flag.FlagSet
	handle string
}

func (e *editCmd) FlagSet() *flag.FlagSet { return e.fs }

func (e *editCmd) Template() string { return "edit.txt" }

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	e := &editCmd{root: r, fs: fs}
	fs.StringVar(&e.handle, "handle", "", "photo to edit, as a file:// URI or path")
	if err := parseFlags(fs, args, e); err != nil {
		return nil, err
	}
	if e.handle == "" && fs.NArg() > 0 {
		e.handle = fs.Arg(0)
	}
	if e.handle == "" {
		return nil, &UsageError{of: e}
	}
	return e, nil
}

func (e *editCmd) Run() error {
	grants := nav.ProbeGrants(e.gallery().Dir, e.config.Camera)
	err := e.openEditor(e.handle, grants.StorageGranted())
	if errors.Is(err, nav.ErrBack) {
		return nil
	}
	return err
}
