package main

import (
	"log/slog"
	"os"

	"github.com/carbyne/bvdf/debug"
)

var (
	theLog = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: debug.LogLevel(),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
)
