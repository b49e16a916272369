// Package logging builds the structured logger used across the repository
// and carries it through context.Context.
package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvLevel names the environment variable that sets the default level.
const EnvLevel = "FLOORPLAN_LOG_LEVEL"

// New creates a logger writing to w. Timestamps are formatted as
// "HH:MM:SS.ms".
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// LevelFromEnv returns the level named by FLOORPLAN_LOG_LEVEL, or fallback
// when it is unset or unknown.
func LevelFromEnv(fallback log.Level) log.Level {
	v := strings.TrimSpace(os.Getenv(EnvLevel))
	if v == "" {
		return fallback
	}
	lvl, err := log.ParseLevel(strings.ToLower(v))
	if err != nil {
		return fallback
	}
	return lvl
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger carried by ctx, or log.Default().
func FromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
