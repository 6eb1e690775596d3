// Package seclog wraps a caller-supplied *slog.Logger so that any facade
// diagnostic logging never carries secret material, per spec.md §7's
// policy that "no error should leak secret material in its message."
package seclog

import (
	"context"
	"log/slog"
	"strings"
)

const redactedValue = "[REDACTED]"

// sensitiveKeyParts are substrings that mark an attribute key as carrying
// secret material outright.
var sensitiveKeyParts = []string{"password", "passphrase", "seed", "mnemonic", "phrase"}

// truncatedKeyParts are substrings that mark an attribute key as a
// structural identifier (fingerprint, key ID) that should still be logged,
// but truncated rather than given in full.
var truncatedKeyParts = []string{"fingerprint", "keyid", "key_id"}

// SanitizingHandler wraps a slog.Handler, redacting or truncating
// attributes by key before they reach it.
type SanitizingHandler struct {
	next slog.Handler
}

// WrapHandler wraps next in a SanitizingHandler. Returns nil if next is
// nil, so a caller that never configured a logger gets no handler at all.
func WrapHandler(next slog.Handler) slog.Handler {
	if next == nil {
		return nil
	}
	return &SanitizingHandler{next: next}
}

func (h *SanitizingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *SanitizingHandler) Handle(ctx context.Context, rec slog.Record) error {
	out := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(attr slog.Attr) bool {
		out.AddAttrs(SanitizeAttr(attr))
		return true
	})
	return h.next.Handle(ctx, out)
}

func (h *SanitizingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = SanitizeAttr(a)
	}
	return &SanitizingHandler{next: h.next.WithAttrs(out)}
}

func (h *SanitizingHandler) WithGroup(name string) slog.Handler {
	return &SanitizingHandler{next: h.next.WithGroup(name)}
}

// SanitizeAttr redacts attr outright if its key names secret material, or
// truncates its value if its key names a structural identifier that is
// still safe to log in abbreviated form.
func SanitizeAttr(attr slog.Attr) slog.Attr {
	key := strings.ToLower(strings.TrimSpace(attr.Key))
	if containsAny(key, sensitiveKeyParts) {
		return slog.String(attr.Key, redactedValue)
	}
	if containsAny(key, truncatedKeyParts) {
		return slog.String(attr.Key, truncate(attr.Value.String()))
	}
	return attr
}

func truncate(s string) string {
	const keep = 8
	if len(s) <= keep {
		return s
	}
	return s[:keep] + "…"
}

func containsAny(key string, parts []string) bool {
	for _, p := range parts {
		if strings.Contains(key, p) {
			return true
		}
	}
	return false
}
