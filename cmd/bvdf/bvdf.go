package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/carbyne/bvdf/config"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
)

func bvdfMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	slog.SetDefault(theLog)
	cfg.Config, err = config.Load(cfg.ConfigFile)
	if err != nil {
		return err
	}
	if cfg.Config.File != "" {
		theLog.Debug("loaded config", "file", cfg.Config.File)
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			theLog.Warn("gops agent failed", "error", err)
		} else {
			defer agent.Close()
		}
	}
	return runSub(cfg.Main, cc, args)
}

// runSub runs the subcommand of cmd named by args[0].
func runSub(cmd *cli.Command, cc *cli.Context, args []string) error {
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cmd.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err := sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}
