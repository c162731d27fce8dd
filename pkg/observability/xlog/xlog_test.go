package xlog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func buildJSON(t *testing.T, buf *bytes.Buffer, opts ...func(*Builder)) LoggerWithLevel {
	t.Helper()
	b := New().SetOutput(buf).SetFormat("json")
	for _, opt := range opts {
		opt(b)
	}
	logger, cleanup, err := b.Build()
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return logger
}

func decodeLine(t *testing.T, line []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(line, &m))
	return m
}

func TestBuildDefaults(t *testing.T) {
	logger, cleanup, err := New().Build()
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, slog.LevelInfo, logger.GetLevel())
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestLogOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := buildJSON(t, &buf)

	logger.Info(context.Background(), "hello", slog.String("k", "v"))

	m := decodeLine(t, buf.Bytes())
	assert.Equal(t, "hello", m["msg"])
	assert.Equal(t, "v", m["k"])
	assert.Equal(t, "INFO", m["level"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := buildJSON(t, &buf)

	logger.Debug(context.Background(), "dropped")
	assert.Zero(t, buf.Len())

	logger.SetLevel(slog.LevelDebug)
	logger.Debug(context.Background(), "kept")
	assert.NotZero(t, buf.Len())
}

func TestWithSharesLevelVar(t *testing.T) {
	var buf bytes.Buffer
	logger := buildJSON(t, &buf)

	derived := logger.With(slog.String("component", "guard"))

	// Level change on the parent applies to the derived logger.
	logger.SetLevel(slog.LevelError)
	derived.Info(context.Background(), "dropped")
	assert.Zero(t, buf.Len())

	derived.Error(context.Background(), "kept")
	m := decodeLine(t, buf.Bytes())
	assert.Equal(t, "guard", m["component"])
}

func TestWithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := buildJSON(t, &buf)

	grouped := logger.WithGroup("req").With(slog.String("id", "42"))
	grouped.Info(context.Background(), "grouped")

	m := decodeLine(t, buf.Bytes())
	req, ok := m["req"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "42", req["id"])
}

func TestWithNoAttrsReturnsSame(t *testing.T) {
	var buf bytes.Buffer
	logger := buildJSON(t, &buf)

	assert.Same(t, logger, logger.With())
	assert.Same(t, logger, logger.WithGroup(""))
}

func TestSetFormatInvalid(t *testing.T) {
	_, _, err := New().SetFormat("xml").Build()
	assert.ErrorContains(t, err, "unknown format")
}

func TestSetFormatEmptyFallsBackToText(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := New().SetOutput(&buf).SetFormat("").Build()
	require.NoError(t, err)
	defer cleanup()

	logger.Info(context.Background(), "text line")
	assert.Contains(t, buf.String(), "msg=\"text line\"")
}

func TestSetLevelString(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"INFO+2", slog.LevelInfo + 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			logger, cleanup, err := New().SetLevelString(tt.input).Build()
			require.NoError(t, err)
			defer cleanup()
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestSetLevelStringInvalid(t *testing.T) {
	_, _, err := New().SetLevelString("loud").Build()
	assert.ErrorContains(t, err, "unknown level")
}

func TestSetRotationEmptyFilename(t *testing.T) {
	_, _, err := New().SetRotation("").Build()
	assert.ErrorContains(t, err, "rotation filename")
}

func TestRotationWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, cleanup, err := New().
		SetFormat("json").
		SetRotation(path, RotateMaxSize(1), RotateMaxBackups(1), RotateMaxAge(1)).
		Build()
	require.NoError(t, err)

	logger.Info(context.Background(), "rotated")
	cleanup()

	assert.FileExists(t, path)
}

func TestAddSourceIncludesLocation(t *testing.T) {
	var buf bytes.Buffer
	logger := buildJSON(t, &buf, func(b *Builder) { b.SetAddSource(true) })

	logger.Info(context.Background(), "where am i")

	m := decodeLine(t, buf.Bytes())
	source, ok := m["source"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, source["file"], "xlog_test.go")
}
