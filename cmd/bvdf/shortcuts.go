package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/carbyne/bvdf/encode"
	"github.com/carbyne/bvdf/ir"
	"github.com/carbyne/bvdf/shortcut"

	"github.com/scott-cotton/cli"
)

func shortcuts(cfg *ShortcutsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Shortcuts.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"list"}
	}
	return runSub(cfg.Shortcuts, cc, args)
}

func (cfg *ShortcutsConfig) load(create bool) (*shortcut.File, string, error) {
	path, err := cfg.path()
	if err != nil {
		return nil, "", err
	}
	f, err := shortcut.Load(path)
	if err != nil {
		if create && errors.Is(err, fs.ErrNotExist) {
			theLog.Info("creating shortcut file", "path", path)
			return shortcut.New(), path, nil
		}
		return nil, "", err
	}
	return f, path, nil
}

func shortcutsList(cfg *ShortcutsListConfig, cc *cli.Context, args []string) error {
	_, err := cfg.List.Parse(cc, args)
	if err != nil {
		return err
	}
	f, _, err := cfg.load(false)
	if err != nil {
		return err
	}
	var scs []shortcut.Shortcut
	if cfg.Exe != "" {
		scs, err = f.ForExe(cfg.Exe)
	} else {
		scs, err = f.List()
	}
	if err != nil {
		return err
	}
	return encode.Encode(shortcutTable(scs), cc.Out, cfg.encOpts(cc.Out)...)
}

// shortcutTable renders scs as an array of entries carrying their game id.
func shortcutTable(scs []shortcut.Shortcut) *ir.Collection {
	rows := make([]*ir.Token, len(scs))
	for i := range scs {
		sc := &scs[i]
		c := sc.Collection()
		c.Set("gameid", ir.FromString(sc.ID().String()))
		rows[i] = ir.FromCollection(c)
	}
	return ir.FromSlice(rows...)
}

func (cfg *ShortcutEditConfig) shortcut() shortcut.Shortcut {
	dir := cfg.StartDir
	if dir == "" {
		dir = filepath.Dir(strings.Trim(cfg.Exe, `"`))
	}
	return shortcut.Shortcut{
		AppName:  cfg.Name,
		Exe:      cfg.Exe,
		StartDir: dir,
		Icon:     cfg.Icon,
		Hidden:   cfg.Hidden,
		Tags:     cfg.Tags,
	}
}

func shortcutAdd(cfg *ShortcutEditConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Edit.Parse(cc, args); err != nil {
		return err
	}
	if err := cfg.check(); err != nil {
		return err
	}
	f, path, err := cfg.load(true)
	if err != nil {
		return err
	}
	sc := cfg.shortcut()
	n, err := f.Add(sc)
	if err != nil {
		return err
	}
	if n == 0 {
		theLog.Info("shortcut already present", "name", sc.AppName, "exe", sc.Exe)
		return nil
	}
	if err := f.Save(path, cfg.saveOpts(path)...); err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, sc.ID())
	return nil
}

func shortcutRm(cfg *ShortcutEditConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Edit.Parse(cc, args); err != nil {
		return err
	}
	if err := cfg.check(); err != nil {
		return err
	}
	f, path, err := cfg.load(false)
	if err != nil {
		return err
	}
	n, err := f.Remove(cfg.shortcut())
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no shortcut %q for %s", cfg.Name, cfg.Exe)
	}
	theLog.Info("removed shortcuts", "count", n)
	return f.Save(path, cfg.saveOpts(path)...)
}

func shortcutID(cfg *ShortcutEditConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Edit.Parse(cc, args); err != nil {
		return err
	}
	if err := cfg.check(); err != nil {
		return err
	}
	f, _, err := cfg.load(false)
	if err != nil {
		return err
	}
	id, ok, err := f.ID(cfg.Name, cfg.Exe)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no shortcut %q for %s", cfg.Name, cfg.Exe)
	}
	fmt.Fprintln(cc.Out, id)
	return nil
}
