// Package config reads the bvdf command line configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbyne/bvdf/format"

	"github.com/BurntSushi/toml"
)

var ErrConfig = errors.New("config error")

// EnvVar names the environment variable overriding the config location.
const EnvVar = "BVDF_CONFIG"

// Color modes of the [output] section.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	Paths  Paths  `toml:"paths"`
	Backup Backup `toml:"backup"`
	Output Output `toml:"output"`

	// File is the path the config was read from, empty for defaults.
	File string `toml:"-"`
}

// Paths holds default file locations used when a command is given none.
type Paths struct {
	Shortcuts   string `toml:"shortcuts"`
	AppInfo     string `toml:"appinfo"`
	PackageInfo string `toml:"packageinfo"`
}

type Backup struct {
	Enabled  bool   `toml:"enabled"`
	Compress bool   `toml:"compress"`
	Dir      string `toml:"dir"`
}

type Output struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
	Arrays bool   `toml:"arrays"`
}

func Default() *Config {
	return &Config{
		Backup: Backup{Enabled: true},
		Output: Output{Format: format.TextFormat.String(), Color: ColorAuto, Arrays: true},
	}
}

// DefaultPath returns $BVDF_CONFIG if set and otherwise bvdf/config.toml
// under the user config directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvVar); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bvdf", "config.toml"), nil
}

// Load reads the config at path. An empty path means DefaultPath, and a
// missing default file yields the defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
		explicit = os.Getenv(EnvVar) != ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("%w: cannot read %s: %w", ErrConfig, path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.File = path
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if und := md.Undecoded(); len(und) != 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrConfig, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := format.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: output.format: %w", ErrConfig, err)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: output.color must be one of auto, always, never: %q", ErrConfig, c.Output.Color)
	}
	return nil
}

// OutputFormat returns the configured format; Validate has checked it.
func (c *Config) OutputFormat() format.Format {
	f, _ := format.ParseFormat(c.Output.Format)
	return f
}

// BackupDir resolves the backup directory relative to the directory of
// the file being backed up. An empty dir keeps backups beside the file.
func (c *Config) BackupDir(file string) string {
	if c.Backup.Dir == "" || filepath.IsAbs(c.Backup.Dir) {
		return c.Backup.Dir
	}
	return filepath.Join(filepath.Dir(file), c.Backup.Dir)
}
