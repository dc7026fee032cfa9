package main

import (
	"fmt"
	"io"
	"os"

	"github.com/carbyne/bvdf/config"
	"github.com/carbyne/bvdf/datafile"
	"github.com/carbyne/bvdf/encode"
	"github.com/carbyne/bvdf/format"
	"github.com/carbyne/bvdf/shortcut"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	ConfigFile string `cli:"name=c aliases=config desc='configuration file (default $BVDF_CONFIG or user config dir)'"`
	Color      bool   `cli:"name=color desc='encode with color'"`
	Types      bool   `cli:"name=types desc='annotate text output with token types'"`
	Gops       bool   `cli:"name=gops desc='run a gops diagnostics agent'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Config *config.Config

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

func (cfg *MainConfig) dataOpts() []datafile.Option {
	return []datafile.Option{datafile.WithLogger(theLog)}
}

func (cfg *MainConfig) optSet(name string) bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	fmat := cfg.Config.OutputFormat()
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmat),
		encode.EncodeArrays(cfg.Config.Output.Arrays),
		encode.EncodeTypes(cfg.Types),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.optSet("color") {
		return cfg.Color
	}
	switch cfg.Config.Output.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) saveOpts(path string) []shortcut.SaveOption {
	res := []shortcut.SaveOption{shortcut.WithLogger(theLog)}
	b := cfg.Config.Backup
	if b.Enabled {
		res = append(res, shortcut.WithBackup(cfg.Config.BackupDir(path), b.Compress))
	}
	return res
}

type DumpConfig struct {
	*MainConfig
	Kind     string `cli:"name=kind desc='file kind: shortcuts/s, appinfo/a, packageinfo/p (default detect)'"`
	Annotate bool   `cli:"name=a desc='annotate leaves with their token types'"`

	Dump *cli.Command
}

type ShortcutsConfig struct {
	*MainConfig
	File string `cli:"name=f desc='shortcut file (default [paths] shortcuts)'"`

	Shortcuts *cli.Command
}

func (cfg *ShortcutsConfig) path() (string, error) {
	if cfg.File != "" {
		return cfg.File, nil
	}
	if p := cfg.Config.Paths.Shortcuts; p != "" {
		return p, nil
	}
	return "", fmt.Errorf("%w: no shortcut file given and none configured", cli.ErrUsage)
}

type ShortcutsListConfig struct {
	*ShortcutsConfig
	Exe string `cli:"name=exe desc='only list shortcuts launching exe'"`

	List *cli.Command
}

type ShortcutEditConfig struct {
	*ShortcutsConfig
	Name     string `cli:"name=name desc='shortcut name'"`
	Exe      string `cli:"name=exe desc='launch target'"`
	StartDir string `cli:"name=dir desc='start directory (default directory of exe)'"`
	Icon     string `cli:"name=icon desc='icon path'"`
	Hidden   bool   `cli:"name=hidden desc='hide the shortcut'"`
	Tags     []string

	Edit *cli.Command
}

func (cfg *ShortcutEditConfig) tagOpt(_ *cli.Context, v string) (any, error) {
	cfg.Tags = append(cfg.Tags, v)
	return v, nil
}

func (cfg *ShortcutEditConfig) check() error {
	if cfg.Name == "" || cfg.Exe == "" {
		return fmt.Errorf("%w: -name and -exe are required", cli.ErrUsage)
	}
	return nil
}

type AppsConfig struct {
	*MainConfig
	Where  string `cli:"name=where desc='filter expression over app fields'"`
	States bool   `cli:"name=states desc='list distinct release states'"`
	Full   bool   `cli:"name=full desc='show the full tree of each app'"`

	Apps *cli.Command
}

type PackagesConfig struct {
	*MainConfig
	Where string `cli:"name=where desc='filter expression over package fields'"`
	Full  bool   `cli:"name=full desc='show the full tree of each package'"`

	Packages *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Merge   bool `cli:"name=merge desc='output a JSON merge patch'"`

	Diff *cli.Command
}
