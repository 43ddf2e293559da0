// Package log builds the slog loggers used across the planner. Records are
// formatted by charmbracelet/log and written to stderr.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

// NewHandler returns a handler writing to stderr with the given prefix.
func NewHandler(name string, verbose bool) slog.Handler {
	return NewHandlerTo(os.Stderr, name, verbose)
}

// NewHandlerTo is NewHandler with an explicit destination. The TUI sends
// its logs to a file so they do not tear the screen.
func NewHandlerTo(w io.Writer, name string, verbose bool) slog.Handler {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          name,
		Level:           level,
	})
}

func New(name string, verbose bool) *slog.Logger {
	return slog.New(NewHandler(name, verbose))
}

type ctxKey struct{}

// IntoContext adds a logger to a context. Use FromContext to
// pull the logger out.
func IntoContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or the default slog logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}

// SubLogger derives a logger whose prefix is the base prefix plus suffix.
func SubLogger(base *slog.Logger, suffix string) *slog.Logger {
	if cl, ok := base.Handler().(*log.Logger); ok {
		prefix := cl.GetPrefix()
		if prefix != "" {
			prefix = prefix + "/" + suffix
		} else {
			prefix = suffix
		}
		child := cl.WithPrefix(prefix)
		return slog.New(child)
	}
	return base.With("component", suffix)
}
