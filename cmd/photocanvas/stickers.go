package main

import (
	"flag"
	"fmt"
	"text/tabwriter"
)

type stickersCmd struct {
	*root
	fs *flag.FlagSet
}

func (s *stickersCmd) FlagSet() *flag.FlagSet { return s.fs }

func (s *stickersCmd) Template() string { return "stickers.txt" }

func parseStickersCmd(args []string, r *root) (*stickersCmd, error) {
	fs := flag.NewFlagSet("stickers", flag.ContinueOnError)
	s := &stickersCmd{root: r, fs: fs}
	if err := parseFlags(fs, args, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *stickersCmd) Run() error {
	catalog := s.catalog()
	if len(catalog) == 0 {
		fmt.Fprintln(s.stderr, "no stickers available")
		return nil
	}
	w := tabwriter.NewWriter(s.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tNAME\tFILE\tSIZE")
	for i, st := range catalog {
		size := st.Size()
		fmt.Fprintf(w, "%d\t%s\t%s\t%dx%d\n", i, st.DisplayName(), st.Name, size.X, size.Y)
	}
	return w.Flush()
}
