package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/provcache/internal/adapters/logger"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{
			name:       "info level",
			level:      slog.LevelInfo,
			msg:        "information message",
			goldenName: "handler_info",
		},
		{
			name:       "warn level",
			level:      slog.LevelWarn,
			msg:        "warning message",
			goldenName: "handler_warn",
		},
		{
			name:       "error level",
			level:      slog.LevelError,
			msg:        "error message",
			goldenName: "handler_error",
		},
		{
			name:       "debug level filtered",
			level:      slog.LevelDebug,
			msg:        "debug message",
			goldenName: "handler_debug_filtered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	tests := []struct {
		name       string
		attrs      []slog.Attr
		msg        string
		goldenName string
	}{
		{
			name:       "single attribute",
			attrs:      []slog.Attr{slog.String("key", "value")},
			msg:        "single attr message",
			goldenName: "handler_attrs_single",
		},
		{
			name:       "multiple attributes",
			attrs:      []slog.Attr{slog.String("a", "1"), slog.Int("b", 2)},
			msg:        "multi attr message",
			goldenName: "handler_attrs_multi",
		},
		{
			name:       "group attribute",
			attrs:      []slog.Attr{slog.Group("g", slog.String("k", "v"))},
			msg:        "group attr message",
			goldenName: "handler_attrs_group",
		},
		{
			name:       "nested group attribute",
			attrs:      []slog.Attr{slog.Group("outer", slog.Group("inner", slog.String("k", "v")))},
			msg:        "nested group message",
			goldenName: "handler_attrs_nested_group",
		},
		{
			name:       "empty attribute value",
			attrs:      []slog.Attr{slog.String("empty", "")},
			msg:        "empty value message",
			goldenName: "handler_attrs_empty",
		},
		{
			name:       "value with spaces",
			attrs:      []slog.Attr{slog.String("reason", "no files scanned")},
			msg:        "quoted value message",
			goldenName: "handler_attrs_quoted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, nil).WithAttrs(tt.attrs)
			lg := slog.New(handler)

			lg.Info(tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil)).WithGroup("store").With("backend", "file")

	lg.Info("grouped message", "op", "append")

	assert.Equal(t, "grouped message store.backend=file store.op=append\n", buf.String())
}

func TestPrettyHandler_WithGroup_EmptyName(t *testing.T) {
	handler := logger.NewPrettyHandler(&bytes.Buffer{}, nil)
	assert.Same(t, handler, handler.WithGroup(""))
}

func TestPrettyHandler_Enabled(t *testing.T) {
	handler := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, handler.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, handler.Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, handler.Enabled(t.Context(), slog.LevelError))
}

func TestPrettyHandler_WithAttrs_DoesNotLeak(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	base := logger.NewPrettyHandler(buf, nil).WithAttrs([]slog.Attr{slog.Group("g", slog.Int("a", 1), slog.Int("b", 2))})

	slog.New(base).Info("first", "x", 1)
	slog.New(base).Info("second", "y", 2)

	assert.Equal(t, "first g.a=1 g.b=2 x=1\nsecond g.a=1 g.b=2 y=2\n", buf.String())
}

func TestPrettyHandler_NilWriter(t *testing.T) {
	assert.NotNil(t, logger.NewPrettyHandler(nil, nil))
}

func TestPrettyHandler_Handle_ReturnsError(t *testing.T) {
	handler := logger.NewPrettyHandler(&brokenWriter{}, nil)
	record := slog.NewRecord(time.Time{}, slog.LevelInfo, "message", 0)

	err := handler.Handle(t.Context(), record)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBroken)
}

var errBroken = errors.New("broken pipe")

type brokenWriter struct{}

func (bw *brokenWriter) Write([]byte) (int, error) {
	return 0, errBroken
}
