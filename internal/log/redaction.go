package log

import (
	"context"
	"log/slog"
	"strings"
)

// sensitiveKeys lists key fragments whose values must never reach log
// output. Matching is case-insensitive and by substring, so "consumer_secret"
// and "TokenSecret" both trip on "secret".
var sensitiveKeys = map[string]struct{}{
	"password":  {},
	"pass":      {},
	"secret":    {},
	"token":     {},
	"key":       {},
	"signature": {},
	"passport":  {},
	"cred":      {},
}

// RedactingHandler wraps a slog.Handler and masks credential-bearing
// attributes before they are written.
type RedactingHandler struct {
	next slog.Handler
}

// NewRedactingHandler creates a new RedactingHandler.
func NewRedactingHandler(next slog.Handler) *RedactingHandler {
	return &RedactingHandler{next: next}
}

// Enabled implements slog.Handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler. Sensitive attributes are replaced before
// the record reaches the next handler.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	var attrs []slog.Attr

	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, redactAttr(a))
		return true
	})

	clean := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	clean.AddAttrs(attrs...)

	return h.next.Handle(ctx, clean)
}

// WithAttrs implements slog.Handler.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = redactAttr(a)
	}
	return &RedactingHandler{next: h.next.WithAttrs(redacted)}
}

// WithGroup implements slog.Handler.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{next: h.next.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		group := make([]interface{}, len(attrs))
		for i, attr := range attrs {
			group[i] = redactAttr(attr)
		}
		return slog.Group(a.Key, group...)
	}

	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, "[REDACTED]")
	}

	return a
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for fragment := range sensitiveKeys {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
