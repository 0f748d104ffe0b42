// Package logging builds the structured logger used by the command line
// tool.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures a logger.
type Options struct {
	// Level is one of debug, info, warn or error
	Level string

	// Format is "text" or "json"
	Format string

	// File, when set, receives the log instead of the default writer and is
	// rotated by size
	File string

	// MaxSizeMB is the size a log file reaches before it is rotated
	MaxSizeMB int

	// MaxBackups is how many rotated files are kept
	MaxBackups int
}

// DefaultOptions returns text logging at info level.
func DefaultOptions() Options {
	return Options{
		Level:      "info",
		Format:     "text",
		MaxSizeMB:  50,
		MaxBackups: 3,
	}
}

// New builds a logger writing to w, or to a rotating file when opts.File is
// set. The returned closer releases the file and is a no-op otherwise.
func New(opts Options, w io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		}
		w, closer = rotating, rotating
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		handler = slog.NewTextHandler(w, handlerOpts)
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	default:
		closer.Close()
		return nil, nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
	return slog.New(handler), closer, nil
}

// ParseLevel converts a level name into a slog.Level. The empty string is
// info.
func ParseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
