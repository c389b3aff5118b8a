package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ParseLevel accepts debug, info, warn and error, case-insensitive.
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level

	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}

	return l, nil
}

// NewLogger builds the slog logger described by cfg, writing to w.
// Timestamps are logged in UTC, and debug level adds the source location.
func NewLogger(cfg LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	options := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}

			return a
		},
	}

	switch cfg.Format {
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, options)), nil
	case FormatText, "":
		return slog.New(slog.NewTextHandler(w, options)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

// OpenLogger builds the logger for cfg, appending to cfg.File or writing to stderr.
// The returned cleanup closes the file.
func OpenLogger(cfg LogConfig) (*slog.Logger, func() error, error) {
	if cfg.File == "" {
		logger, err := NewLogger(cfg, os.Stderr)

		return logger, func() error { return nil }, err
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger, err := NewLogger(cfg, f)
	if err != nil {
		_ = f.Close()

		return nil, nil, err
	}

	return logger, f.Close, nil
}
