package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/carbyne/bvdf/format"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	in := `
[paths]
shortcuts = "/home/u/shortcuts.vdf"

[backup]
compress = true
dir = "bak"

[output]
format = "json"
color = "never"
`
	got, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Paths.Shortcuts = "/home/u/shortcuts.vdf"
	want.Backup.Compress = true
	want.Backup.Dir = "bak"
	want.Output.Format = "json"
	want.Output.Color = ColorNever
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got.OutputFormat() != format.JSONFormat {
		t.Errorf("format %s", got.OutputFormat())
	}
	if d := got.BackupDir("/x/shortcuts.vdf"); d != "/x/bak" {
		t.Errorf("backup dir %q", d)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"syntax", "[paths\n"},
		{"unknown key", "[paths]\nshortcut = \"x\"\n"},
		{"format", "[output]\nformat = \"xml\"\n"},
		{"color", "[output]\ncolor = \"sometimes\"\n"},
		{"type", "[backup]\nenabled = \"yes\"\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.in)); !errors.Is(err, ErrConfig) {
				t.Errorf("expected ErrConfig, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvVar, "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	missing := filepath.Join(dir, "nope.toml")
	if _, err := Load(missing); !errors.Is(err, ErrConfig) {
		t.Errorf("expected ErrConfig for explicit missing file, got %v", err)
	}

	path := filepath.Join(dir, "c.toml")
	if err := os.WriteFile(path, []byte("[output]\narrays = false\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvVar, path)
	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Arrays || cfg.File != path {
		t.Errorf("got %+v", cfg)
	}
}
