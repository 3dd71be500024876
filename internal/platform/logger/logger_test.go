package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductionLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", false, &buf)
	log.Info("provider_registered", "provider_id", "provider-123")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "provider_registered", line["msg"])
	assert.Equal(t, "provider-registry", line["service"])
	assert.Equal(t, "provider-123", line["provider_id"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", true, &buf)
	log.Info("dropped")
	assert.Zero(t, buf.Len())
	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
