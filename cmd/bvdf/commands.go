package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: text/t, json/j, yaml/y, cbor/c",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "bvdf").
		WithSynopsis("bvdf [opts] command [opts]").
		WithDescription("bvdf reads, edits and renders binary VDF data files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return bvdfMain(cfg, cc, args)
		}).
		WithSubs(
			DumpCommand(cfg),
			ShortcutsCommand(cfg),
			AppsCommand(cfg),
			PackagesCommand(cfg),
			DiffCommand(cfg))
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d").
		WithSynopsis("dump [-kind k] [-a] files").
		WithDescription("decode shortcut, app-info or package-info files and render them").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}

func ShortcutsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ShortcutsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Shortcuts, "shortcuts").
		WithAliases("s", "sc").
		WithSynopsis("shortcuts [-f file] list|add|rm|id [opts]").
		WithDescription("list and edit non-store shortcuts").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return shortcuts(cfg, cc, args)
		}).
		WithSubs(
			ShortcutsListCommand(cfg),
			ShortcutAddCommand(cfg),
			ShortcutRmCommand(cfg),
			ShortcutIDCommand(cfg))
}

func ShortcutsListCommand(scCfg *ShortcutsConfig) *cli.Command {
	cfg := &ShortcutsListConfig{ShortcutsConfig: scCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.List, "list").
		WithAliases("l", "ls").
		WithSynopsis("list [-exe exe]").
		WithDescription("list shortcuts with their game ids").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return shortcutsList(cfg, cc, args)
		})
}

func shortcutEditCommand(scCfg *ShortcutsConfig, name, synopsis, desc string,
	run func(*ShortcutEditConfig, *cli.Context, []string) error) *cli.Command {
	cfg := &ShortcutEditConfig{ShortcutsConfig: scCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "tag",
		Description: "add a tag (repeatable)",
		Type:        cli.NamedFuncOpt(cfg.tagOpt, "(tag)"),
	})
	return cli.NewCommandAt(&cfg.Edit, name).
		WithSynopsis(synopsis).
		WithDescription(desc).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

func ShortcutAddCommand(scCfg *ShortcutsConfig) *cli.Command {
	return shortcutEditCommand(scCfg, "add",
		"add -name name -exe exe [-dir dir] [-icon icon] [-hidden] [-tag tag]...",
		"add a shortcut unless one with the same name and target exists",
		shortcutAdd)
}

func ShortcutRmCommand(scCfg *ShortcutsConfig) *cli.Command {
	return shortcutEditCommand(scCfg, "rm",
		"rm -name name -exe exe",
		"remove shortcuts with the given name and target",
		shortcutRm)
}

func ShortcutIDCommand(scCfg *ShortcutsConfig) *cli.Command {
	return shortcutEditCommand(scCfg, "id",
		"id -name name -exe exe",
		"print the game id of a shortcut",
		shortcutID)
}

func AppsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AppsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Apps, "apps").
		WithAliases("a").
		WithSynopsis("apps [-where expr] [-states] [-full] [file]").
		WithDescription(appsDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return apps(cfg, cc, args)
		})
}

const appsDescription = `apps lists the apps of an app-info file.

The file defaults to [paths] appinfo of the configuration.

-where takes an expression over the app fields, for example

  Type == "game" && MetacriticScore > 80
  getpath("appinfo/common/name") matches "^Half"

getpath and listpath address the app's tree with '/' separated keys,
listpath accepting '*' for any key.`

func PackagesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PackagesConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Packages, "packages").
		WithAliases("p", "pkg").
		WithSynopsis("packages [-where expr] [-full] [file]").
		WithDescription("list the packages of a package-info file, filtered by -where").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return packages(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("di").
		WithSynopsis("diff [-r] [-merge] a b").
		WithDescription("diff two data files of the same kind").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}
