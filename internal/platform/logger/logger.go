// Package logger builds the service's structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a JSON slog logger tagged with the service and environment.
// Debug level is enabled outside production.
func New(service, env string) *slog.Logger {
	return NewWithWriter(os.Stdout, service, env)
}

func NewWithWriter(w io.Writer, service, env string) *slog.Logger {
	level := slog.LevelDebug
	if strings.EqualFold(env, "prod") {
		level = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("service", service, "env", env)
}
