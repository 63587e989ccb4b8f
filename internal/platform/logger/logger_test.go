package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogger_FieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "catgen", Output: &buf})

	l.Debug("hidden", nil)
	l.With(map[string]any{"run_id": "abc", "": "dropped"}).Info("generated", map[string]any{"rows": 10})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "generated", entry["message"])
	assert.Equal(t, "catgen", entry["app"])
	assert.Equal(t, "abc", entry["run_id"])
	assert.Equal(t, float64(10), entry["rows"])
	assert.NotContains(t, entry, "")
}

func TestParseLevelAndFormat(t *testing.T) {
	assert.Equal(t, Warn, ParseLevel("WARNING"))
	assert.Equal(t, Info, ParseLevel("nope"))
	assert.Equal(t, "debug", Debug.String())
	assert.Equal(t, FormatJSON, ParseFormat(" json "))
	assert.Equal(t, FormatText, ParseFormat(""))
}
