// Package logging builds the zerolog loggers used across orglist and carries
// them, together with per-fetch request ids, through context.Context.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config selects level, format and destination of the logger.
type Config struct {
	Level  string
	Format string
	// File, when set, receives all log output instead of stderr.
	File string
	// Quiet discards output when no File is configured. The TUI sets it so log
	// lines never draw over the screen.
	Quiet bool
}

// Result is a configured logger plus the handle that must be closed on exit.
type Result struct {
	Logger   zerolog.Logger
	FilePath string
	file     *os.File
}

// UsingFile reports whether output goes to a log file.
func (r Result) UsingFile() bool {
	return r.file != nil
}

// Close releases the log file, if any.
func (r Result) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// New creates a logger from cfg. stderr is the console destination used when
// no file is configured. An unparsable level falls back to info.
func New(cfg Config, stderr io.Writer) (Result, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var (
		out    io.Writer
		result Result
	)

	switch {
	case cfg.File != "":
		if mkErr := os.MkdirAll(filepath.Dir(cfg.File), 0o750); mkErr != nil {
			return Result{}, fmt.Errorf("creating log directory: %w", mkErr)
		}
		f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if openErr != nil {
			return Result{}, fmt.Errorf("opening log file %s: %w", cfg.File, openErr)
		}
		result.file = f
		result.FilePath = cfg.File
		out = f
	case cfg.Quiet:
		out = io.Discard
	default:
		out = stderr
	}

	if cfg.Format != FormatJSON && result.file == nil && out != io.Discard {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	result.Logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return result, nil
}

// ComponentLogger tags every event of l with component.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) zerolog.Logger {
	return *zerolog.Ctx(ctx)
}

type requestIDKey struct{}

// NewRequestID returns a new lexically sortable request id.
func NewRequestID() string {
	return ulid.Make().String()
}

// ContextWithRequestID stores id in ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
