package log_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/on-the-ground/assocarray/shared/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	lvl, err := log.ParseLevel(log.LogDebug)
	require.NoError(t, err)
	assert.Equal(t, zap.DebugLevel, lvl)

	lvl, err = log.ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zap.InfoLevel, lvl)

	_, err = log.ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewLogger_JSONFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := log.NewLogger(log.LogWarn, log.EncodingJSON, &buf)
	require.NoError(t, err)

	log.Log(logger, log.LogInfo, "dropped", nil)
	log.Log(logger, log.LogError, "kept", map[string]interface{}{"key": "a"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "a", entry["key"])
	assert.Equal(t, "error", entry["level"])
}

func TestNewLogger_UnknownEncoding(t *testing.T) {
	_, err := log.NewLogger(log.LogInfo, "xml", &bytes.Buffer{})
	assert.Error(t, err)
}
