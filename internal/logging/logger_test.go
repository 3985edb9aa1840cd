package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WarnLevel, &buf)

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")
	logger.Error("kept as well")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "kept")
	assert.Contains(t, lines[1], "kept as well")
}

func TestFieldsAreAttached(t *testing.T) {
	var buf bytes.Buffer
	logger := New(InfoLevel, &buf).WithFields(map[string]interface{}{
		"job_id": "job_42",
	})

	logger.Info("run finished", map[string]interface{}{"iterations": 17})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "run finished", entry["message"])
	assert.Equal(t, "job_42", entry["job_id"])
	assert.Equal(t, float64(17), entry["iterations"])
	assert.Equal(t, "INFO", entry["level"])
	assert.NotEmpty(t, entry["caller"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, parseLevel("debug"))
	assert.Equal(t, ErrorLevel, parseLevel("ERROR"))
	assert.Equal(t, InfoLevel, parseLevel("nonsense"))
}

func TestZapBridge(t *testing.T) {
	var buf bytes.Buffer
	zl := NewZapLogger(New(InfoLevel, &buf))

	zl.Info("bridged")
	zl.Debug("filtered out")

	out := buf.String()
	require.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "bridged")
	assert.NotContains(t, out, "filtered out")
}
