package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestMultiHandlerFansOutToAllSinks(t *testing.T) {
	var a, b bytes.Buffer
	log := slog.New(NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	))

	log.Info("sale registered", "total", 99.99)

	for name, buf := range map[string]*bytes.Buffer{"text": &a, "json": &b} {
		if !strings.Contains(buf.String(), "sale registered") {
			t.Errorf("%s sink missing record: %q", name, buf.String())
		}
	}
}

func TestMultiHandlerRespectsSinkLevels(t *testing.T) {
	var quiet, verbose bytes.Buffer
	log := slog.New(NewMultiHandler(
		slog.NewTextHandler(&quiet, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewTextHandler(&verbose, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))

	log.Debug("cache miss")

	if quiet.Len() != 0 {
		t.Errorf("warn-level sink received a debug record: %q", quiet.String())
	}
	if verbose.Len() == 0 {
		t.Error("debug-level sink dropped the record")
	}
}

func TestMultiHandlerWithAttrsPropagates(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(slog.NewTextHandler(&buf, nil)).
		WithAttrs([]slog.Attr{slog.String("request_id", "a1b2c3d4")})

	if err := h.Handle(context.Background(), slog.Record{Level: slog.LevelInfo, Message: "ok"}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !strings.Contains(buf.String(), "request_id=a1b2c3d4") {
		t.Errorf("attrs not propagated: %q", buf.String())
	}
}
