package main

import "fmt"

type versionCmd struct{ *root }

func (v *versionCmd) Run() error {
	fmt.Fprintf(v.stdout, "%s version %s\n", v.program, version)
	if commit != "" {
		fmt.Fprintf(v.stdout, "commit %s", commit)
		if date != "" {
			fmt.Fprintf(v.stdout, " built %s", date)
		}
		fmt.Fprintln(v.stdout)
	}
	return nil
}
