package shortcut

import (
	"log/slog"
	"time"
)

type saveOptions struct {
	backup    bool
	backupDir string
	compress  bool
	now       func() time.Time
	logger    *slog.Logger
}

type SaveOption func(*saveOptions)

// WithBackup copies the existing file aside before it is replaced. An
// empty dir puts the copy next to the file.
func WithBackup(dir string, compress bool) SaveOption {
	return func(o *saveOptions) {
		o.backup = true
		o.backupDir = dir
		o.compress = compress
	}
}

// WithClock sets the clock used to name backups.
func WithClock(now func() time.Time) SaveOption {
	return func(o *saveOptions) { o.now = now }
}

func WithLogger(l *slog.Logger) SaveOption {
	return func(o *saveOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func defaultClock() time.Time {
	return time.Now()
}
