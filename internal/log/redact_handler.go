package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// HomeMarker replaces the home directory prefix in redacted values.
const HomeMarker = "~"

// RedactHandler wraps an slog.Handler and replaces the user's home
// directory in string and error attribute values with HomeMarker.
type RedactHandler struct {
	// handler is the underlying slog handler that receives redacted records.
	handler slog.Handler

	// home is the directory to hide. Empty disables redaction.
	home string
}

// NewRedactHandler creates a new RedactHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used. If home is empty,
// os.UserHomeDir is consulted.
func NewRedactHandler(handler slog.Handler, home string) *RedactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if home == "" {
		if h, err := os.UserHomeDir(); err == nil {
			home = h
		}
	}
	// A bare root trims to "" and disables redaction.
	home = strings.TrimRight(home, `/\`)
	return &RedactHandler{handler: handler, home: home}
}

// Enabled reports whether the handler handles records at the given level.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle redacts the record's attributes and passes it to the underlying handler.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	redacted := slog.NewRecord(r.Time, r.Level, h.redact(r.Message), r.PC)

	r.Attrs(func(a slog.Attr) bool {
		redacted.AddAttrs(h.redactAttr(a))
		return true
	})

	return h.handler.Handle(ctx, redacted)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.redactAttr(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(redacted), home: h.home}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name), home: h.home}
}

// redactAttr redacts a single attribute, recursively handling groups.
func (h *RedactHandler) redactAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		redacted := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			redacted[i] = h.redactAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	case slog.KindString:
		return slog.String(a.Key, h.redact(a.Value.String()))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, h.redact(err.Error()))
		}
	}

	return a
}

// redact replaces the home directory in s. Only whole path prefixes match,
// so a home of /home/al leaves /home/alice alone.
func (h *RedactHandler) redact(s string) string {
	if h.home == "" {
		return s
	}
	if s == h.home {
		return HomeMarker
	}
	sep := string(filepath.Separator)
	return strings.ReplaceAll(s, h.home+sep, HomeMarker+sep)
}

// NewLogger creates the application logger: a text handler writing to w,
// wrapped in a RedactHandler.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(NewRedactHandler(textHandler, ""))
}
