package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_defaultLevelIsWarn(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log, err := New(Options{Stderr: &buf})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("staged diff is large", zap.Int("lines", 1500))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "staged diff is large")
	assert.Contains(t, out, `"lines": 1500`)
}

func TestNew_debugLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", Stderr: &buf})
	require.NoError(t, err)
	log.Debug("calling model", zap.String("model", "gpt-4o"))
	assert.Contains(t, buf.String(), "calling model")
}

func TestNew_invalidLevel(t *testing.T) {
	t.Parallel()
	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid log level")
}

func TestNew_fileReceivesJSON(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "git-ai.log")
	var buf bytes.Buffer
	log, err := New(Options{Level: "error", File: path, Stderr: &buf})
	require.NoError(t, err)

	log.Info("commit created", zap.String("repo", "/tmp/r"))
	_ = log.Sync()

	assert.Empty(t, buf.String(), "console level is error")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "commit created", entry["msg"])
	assert.Equal(t, "/tmp/r", entry["repo"])
}

func TestNop(t *testing.T) {
	t.Parallel()
	Nop().Error("ignored")
}
