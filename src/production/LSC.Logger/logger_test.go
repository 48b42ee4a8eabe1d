package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	config "gitlab.com/maplesense1/lsc.collar_server/src/production/LSC.Config"
)

func TestLoggerFieldsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter(&config.LoggingConfig{Format: "json"}, &buf)

	log.WithComponent("dashboard").WithField("device_id", "d1").ErrorWithError(errors.New("boom"), "lookup failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "dashboard", entry["component"])
	assert.Equal(t, "d1", entry["device_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "lookup failed", entry["message"])
}

func TestLoggerWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter(&config.LoggingConfig{Format: "json"}, &buf)

	log.WithRequestID("req-1").WithService("api").Info("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "api", entry["service"])
}

func TestNewLoggerFileOutput(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	path := filepath.Join(t.TempDir(), "api.log")
	log := NewLogger(&config.LoggingConfig{Level: "warn", Format: "json", Output: path, MaxSizeMB: 1})

	log.Info("dropped")
	log.Warn("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestNopLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNopLogger().WithField("k", "v").ErrorWithError(errors.New("x"), "ignored")
	})
}
