package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/provcache/internal/ui/output"
	"go.trai.ch/provcache/internal/ui/style"
)

// PrettyHandler is a slog.Handler producing human-readable, colored lines.
// Attributes are appended to the message as key=value pairs; group
// attributes are flattened into dotted keys.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []string
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	var color termenv.Color

	switch {
	case r.Level >= slog.LevelError:
		b.WriteString(style.Cross + " ")
		color = termenv.RGBColor(string(style.Red))
	case r.Level >= slog.LevelWarn:
		b.WriteString(style.Warning + " ")
		color = termenv.RGBColor(string(style.Yellow))
	default:
		color = termenv.RGBColor(string(style.Slate))
	}
	b.WriteString(r.Message)

	parts := h.attrs
	r.Attrs(func(attr slog.Attr) bool {
		parts = appendAttr(parts, h.group, attr)
		return true
	})
	for _, part := range parts {
		b.WriteByte(' ')
		b.WriteString(part)
	}

	styled := h.out.String(b.String()).Foreground(color)
	_, err := h.out.WriteString(styled.String() + "\n")

	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	formatted := make([]string, len(h.attrs), len(h.attrs)+len(attrs))
	copy(formatted, h.attrs)
	for _, attr := range attrs {
		formatted = appendAttr(formatted, h.group, attr)
	}

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: slices.Clip(formatted),
		group: h.group,
	}
}

// WithGroup returns a new Handler qualifying subsequent keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: qualify(h.group, name),
	}
}

func appendAttr(parts []string, group string, attr slog.Attr) []string {
	value := attr.Value.Resolve()
	if attr.Key == "" && value.Kind() != slog.KindGroup {
		return parts
	}

	if value.Kind() == slog.KindGroup {
		prefix := group
		if attr.Key != "" {
			prefix = qualify(group, attr.Key)
		}
		for _, member := range value.Group() {
			parts = appendAttr(parts, prefix, member)
		}
		return parts
	}

	return append(parts, qualify(group, attr.Key)+"="+quote(value.String()))
}

func qualify(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
