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

	"github.com/backmassage/locremix/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.Color = config.ColorNever
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	defer l.Close()
	l.Info("test message")
}

func TestLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := New(&out, &errOut, false)

	l.Info("scanned %d", 3)
	l.Success("done")
	l.Warn("careful")
	l.Error("broken %s", "pipe")
	l.Debug(false, "hidden")
	l.Debug(true, "shown")

	stdout := out.String()
	assert.Contains(t, stdout, "[INFO] scanned 3\n")
	assert.Contains(t, stdout, "[SUCCESS] done\n")
	assert.Contains(t, stdout, "[WARN] careful\n")
	assert.Contains(t, stdout, "[DEBUG] shown\n")
	assert.NotContains(t, stdout, "hidden")
	assert.NotContains(t, stdout, "broken")
	assert.Equal(t, 1, strings.Count(errOut.String(), "[ERROR] broken pipe"))
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Display.Color = config.ColorNever
	cfg.Display.LogFile = filepath.Join(dir, "logs", "locremix.log")
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	l.out, l.errOut = &bytes.Buffer{}, &bytes.Buffer{}

	l.Info("to file")
	l.Warn("second")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	b, err := os.ReadFile(cfg.Display.LogFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "to file", rec["msg"])
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "INFO", rec["level_tag"])
	assert.Contains(t, lines[1], `"level":"warn"`)
}
