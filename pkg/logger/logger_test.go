package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(Config{Level: WARN, Output: &buf})

	l.Info("sending archive chunk")
	l.Warn("archive not found", "id", "abc123")

	out := buf.String()
	assert.NotContains(t, out, "sending archive chunk")
	assert.Contains(t, out, "[WARN] archive not found | id=abc123")
}

func TestLogger_FieldsAreSortedAndInherited(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(Config{Level: DEBUG, Output: &buf}).
		WithField("component", "streamer").
		WithFields("session", "s-1")

	l.Debug("download interrupted", "error", errors.New("client went away"), "bytes", 42)

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasSuffix(line,
		`| bytes=42 component=streamer error="client went away" session=s-1`), line)
}

func TestLogger_ChildDoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWithConfig(Config{Level: INFO, Output: &buf})
	_ = parent.WithField("session", "child")

	parent.Info("hello")
	assert.NotContains(t, buf.String(), "session")
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(Config{Level: INFO, Output: &buf, Format: "json"})

	l.Info("sending archive chunk", "bytes", 512, "error", errors.New("boom"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "sending archive chunk", entry["msg"])
	assert.Equal(t, float64(512), entry["bytes"])
	assert.Equal(t, "boom", entry["error"])
}

func TestLogger_SetLevelSharedWithChildren(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWithConfig(Config{Level: ERROR, Output: &buf})
	child := parent.WithField("component", "router")

	parent.SetLevel(DEBUG)
	child.Debug("visible")

	assert.Contains(t, buf.String(), "visible")
	assert.True(t, child.IsDebugEnabled())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   DEBUG,
		"INFO":    INFO,
		"warning": WARN,
		"Error":   ERROR,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestOpen_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")

	l, closer, err := Open(Options{Enabled: true, File: path, Level: "INFO"})
	require.NoError(t, err)
	l.Info("server started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] server started")
}

func TestOpen_Disabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")

	l, closer, err := Open(Options{Enabled: false, File: path, Level: "INFO"})
	require.NoError(t, err)
	l.Error("nobody hears this")
	require.NoError(t, closer.Close())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestOpen_InvalidLevel(t *testing.T) {
	_, _, err := Open(Options{Enabled: true, Level: "loud"})
	assert.Error(t, err)
}
