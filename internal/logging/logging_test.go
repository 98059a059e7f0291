package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelWarn))

	logger.Info("quiet")
	logger.Warn("loud", "round", 3)

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Error("info record emitted below warn level")
	}
	if !strings.Contains(out, "loud") {
		t.Error("warn record missing")
	}
	if !strings.Contains(out, "round") {
		t.Error("attribute missing from output")
	}
}

func TestHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo)).With("player", "mira")

	logger.Info("saved")
	if out := buf.String(); !strings.Contains(out, "player") {
		t.Errorf("bound attribute missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
