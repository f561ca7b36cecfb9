package log

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLogging(t *testing.T) {
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		require.NoError(t, Configure("info", "text"))
	})
}

func TestConfigure_JSONWithTrace(t *testing.T) {
	resetLogging(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	require.NoError(t, Configure("trace", "json"))
	assert.Equal(t, "trace", GetLogLevel())

	LogTraceWithFields("cookie", "Session cookie set", map[string]any{"secure": true})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "TRACE", entry["level"])
	assert.Equal(t, "cookie", entry["component"])
	assert.Equal(t, "Session cookie set", entry["msg"])
	assert.Equal(t, true, entry["secure"])
	assert.Contains(t, entry, "timestamp")
}

func TestConfigure_LevelFilters(t *testing.T) {
	resetLogging(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	require.NoError(t, Configure("warn", "text"))

	LogInfoWithFields("test", "hidden", nil)
	assert.Empty(t, buf.String())

	LogWarnWithFields("test", "shown", nil)
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "component=test")
}

func TestConfigure_EmptyKeepsCurrent(t *testing.T) {
	resetLogging(t)

	require.NoError(t, Configure("debug", ""))
	require.NoError(t, Configure("", ""))
	assert.Equal(t, "debug", GetLogLevel())
}

func TestConfigure_Invalid(t *testing.T) {
	resetLogging(t)

	assert.Error(t, Configure("verbose", ""))
	assert.Error(t, Configure("", "xml"))
}
