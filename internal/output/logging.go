package output

import (
	"io"
	"log/slog"
	"math"
)

// LogOptions selects the verbosity and encoding of diagnostic logs.
type LogOptions struct {
	Quiet   bool
	Verbose bool
	Debug   bool
	JSON    bool
}

// SetupLogger creates a slog.Logger configured for the given verbosity.
// Output is written to w (typically os.Stderr).
//
// Log level mapping:
//   - Quiet: suppress all output
//   - Debug: slog.LevelDebug
//   - Verbose: slog.LevelInfo
//   - Default: slog.LevelWarn (only warnings and errors)
//
// Priority: Quiet > Debug > Verbose > default
func SetupLogger(opts LogOptions, w io.Writer) *slog.Logger {
	var level slog.Level

	switch {
	case opts.Quiet:
		level = slog.Level(math.MaxInt)
	case opts.Debug:
		level = slog.LevelDebug
	case opts.Verbose:
		level = slog.LevelInfo
	default:
		level = slog.LevelWarn
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
