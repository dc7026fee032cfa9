package debug

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type debug struct {
	Decode   bool
	Chunks   bool
	Edit     bool
	LogLevel slog.Level
}

var d *debug

func init() {
	d = &debug{}
	d.Decode = boolEnv("BVDF_DEBUG_DECODE")
	d.Chunks = boolEnv("BVDF_DEBUG_CHUNKS")
	d.Edit = boolEnv("BVDF_DEBUG_EDIT")
	d.LogLevel = levelEnv("BVDF_LOG_LEVEL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func levelEnv(v string) slog.Level {
	var l slog.Level
	x := strings.TrimSpace(os.Getenv(v))
	if x == "" {
		return slog.LevelInfo
	}
	if err := l.UnmarshalText([]byte(x)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Decode reports whether the codec traces every decoded property.
func Decode() bool {
	return d.Decode
}

// Chunks reports whether the file readers trace every chunk header.
func Chunks() bool {
	return d.Chunks
}

// Edit reports whether shortcut file edits are traced.
func Edit() bool {
	return d.Edit
}

func LogLevel() slog.Level {
	return d.LogLevel
}
