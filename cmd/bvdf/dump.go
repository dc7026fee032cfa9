package main

import (
	"fmt"
	"io"

	"github.com/carbyne/bvdf/datafile"
	"github.com/carbyne/bvdf/encode"

	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: dump requires at least one file", cli.ErrUsage)
	}
	var kind *datafile.Kind
	if cfg.Kind != "" {
		k, err := datafile.ParseKind(cfg.Kind)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		kind = &k
	}
	for i, file := range args {
		if err := dumpFile(cfg, cc.Out, file, kind); err != nil {
			return err
		}
		if i < len(args)-1 {
			if err := writeSep(cc.Out); err != nil {
				return err
			}
		}
	}
	return nil
}

func dumpFile(cfg *DumpConfig, w io.Writer, file string, kind *datafile.Kind) error {
	var (
		f   *datafile.File
		err error
	)
	if kind != nil {
		f, err = datafile.LoadKind(file, *kind, cfg.dataOpts()...)
	} else {
		f, err = datafile.Load(file, cfg.dataOpts()...)
	}
	if err != nil {
		return err
	}
	theLog.Debug("decoded", "file", file, "kind", f.Kind)
	opts := cfg.encOpts(w)
	if cfg.Annotate {
		opts = append(opts, encode.EncodeTypes(true))
	}
	if err := encode.Encode(f.Collection(), w, opts...); err != nil {
		return fmt.Errorf("error encoding %s: %w", file, err)
	}
	return nil
}

func writeSep(w io.Writer) error {
	_, err := w.Write([]byte("---\n"))
	return err
}
