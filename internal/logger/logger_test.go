package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("info"))
	require.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, "warn")

	log.Info("hidden")
	log.Warn("shown", "url", "https://example.com/a/")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "url=https://example.com/a/")

	log.SetLevel("debug")
	log.Debug("now visible")
	require.Contains(t, buf.String(), "now visible")
}

func TestLoggerWithSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLoggerTo(&buf, "error")
	child := parent.With("stage", "fetch")

	child.Info("dropped")
	parent.SetLevel("info")
	child.Info("kept")

	require.Equal(t, 1, strings.Count(buf.String(), "stage=fetch"))
	require.Contains(t, buf.String(), "kept")
}
