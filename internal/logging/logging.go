// Package logging builds the hclog loggers shared by huekit components.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Options configures New.
type Options struct {
	Name   string
	Level  string
	Output io.Writer
	JSON   bool
}

// Levels accepted by Options.Level.
const (
	LevelTrace = "trace"
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelOff   = "off"
)

// New returns a logger writing to opts.Output, stderr by default. An empty
// or unknown level means info.
func New(opts Options) hclog.Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Name == "" {
		opts.Name = "huekit"
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:            opts.Name,
		Level:           ParseLevel(opts.Level),
		Output:          opts.Output,
		JSONFormat:      opts.JSON,
		IncludeLocation: false,
		DisableTime:     !opts.JSON,
	})
}

// ParseLevel maps a level name to an hclog level.
func ParseLevel(level string) hclog.Level {
	l := hclog.LevelFromString(strings.TrimSpace(level))
	if l == hclog.NoLevel {
		return hclog.Info
	}
	return l
}

// LevelFor resolves the --verbose and --quiet flags against a configured
// level. verbose wins over quiet.
func LevelFor(configured string, verbose, quiet bool) string {
	switch {
	case verbose:
		return LevelDebug
	case quiet:
		return LevelError
	case configured == "":
		return LevelInfo
	default:
		return configured
	}
}
