package main

import (
	"fmt"

	"github.com/carbyne/bvdf/datafile"
	"github.com/carbyne/bvdf/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 files", cli.ErrUsage)
	}
	a, err := datafile.Load(args[0], cfg.dataOpts()...)
	if err != nil {
		return err
	}
	b, err := datafile.Load(args[1], cfg.dataOpts()...)
	if err != nil {
		return err
	}
	if a.Kind != b.Kind {
		return fmt.Errorf("cannot diff %s file %s against %s file %s", a.Kind, args[0], b.Kind, args[1])
	}
	from, to := a.Collection(), b.Collection()
	if cfg.Merge {
		if cfg.Reverse {
			from, to = to, from
		}
		patch, err := libdiff.MergePatch(from, to)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cc.Out, "%s\n", patch)
		return err
	}
	changes := libdiff.Diff(from, to)
	if cfg.Reverse {
		changes = libdiff.Reverse(changes)
	}
	for _, c := range changes {
		if _, err := fmt.Fprintln(cc.Out, c); err != nil {
			return err
		}
	}
	if len(changes) != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
