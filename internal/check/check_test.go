package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/locremix/internal/config"
	"github.com/backmassage/locremix/internal/errors"
)

type mockLogger struct{ lines []string }

func (m *mockLogger) add(level, format string, args ...interface{}) {
	m.lines = append(m.lines, level+" "+fmt.Sprintf(format, args...))
}
func (m *mockLogger) Info(f string, a ...interface{})    { m.add("INFO", f, a...) }
func (m *mockLogger) Success(f string, a ...interface{}) { m.add("SUCCESS", f, a...) }
func (m *mockLogger) Warn(f string, a ...interface{})    { m.add("WARN", f, a...) }
func (m *mockLogger) Error(f string, a ...interface{})   { m.add("ERROR", f, a...) }
func (m *mockLogger) Debug(v bool, f string, a ...interface{}) {
	if v {
		m.add("DEBUG", f, a...)
	}
}

func (m *mockLogger) has(prefix string) bool {
	for _, l := range m.lines {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

func setup(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	ini := filepath.Join(dir, "global.ini")
	require.NoError(t, os.WriteFile(ini, []byte("a=1\nb=2\n"), 0o644))
	scitem := filepath.Join(dir, "libs", "foundry", "records", "entities", "scitem")
	require.NoError(t, os.MkdirAll(scitem, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(scitem, "shld_a.xml"), []byte("<x/>"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Paths.Localization = ini
	cfg.Paths.Extracted = filepath.Join(dir, "libs")
	cfg.Extract.Unp4k = filepath.Join(dir, "no-unp4k")
	cfg.Extract.Unforge = filepath.Join(dir, "no-unforge")
	return cfg
}

func TestRunCheck_Passes(t *testing.T) {
	cfg := setup(t)
	log := &mockLogger{}

	assert.True(t, RunCheck(&cfg, log))
	assert.True(t, log.has("SUCCESS Localization: "))
	assert.True(t, log.has("SUCCESS Records: 1 candidate files"))
	assert.True(t, log.has("WARN "+cfg.Extract.Unp4k+" not found"))
	assert.True(t, log.has("SUCCESS All checks passed"))
}

func TestRunCheck_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
		want   string
	}{
		{"missing localization", func(c *config.Config) { c.Paths.Localization = "/nonexistent/global.ini" }, "ERROR Localization:"},
		{"missing records", func(c *config.Config) { c.Paths.Extracted = "/nonexistent" }, "ERROR Record tree not found"},
		{"tools required", func(c *config.Config) {
			c.Extract.Enabled = true
			c.Extract.P4K = "/nonexistent/Data.p4k"
		}, "ERROR Data.p4k not found"},
		{"deploy target", func(c *config.Config) {
			c.Deploy.Enabled = true
			c.Deploy.InstallDir = "/nonexistent/LIVE"
		}, "ERROR Install directory not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := setup(t)
			tt.mutate(&cfg)
			log := &mockLogger{}
			assert.False(t, RunCheck(&cfg, log))
			assert.True(t, log.has(tt.want), "lines: %v", log.lines)
		})
	}
}

func TestCheckDeps(t *testing.T) {
	cfg := setup(t)
	require.NoError(t, CheckDeps(&cfg))

	cfg.Extract.Enabled = true
	cfg.Extract.P4K = filepath.Join(t.TempDir(), "Data.p4k")
	err := CheckDeps(&cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInputNotFound))

	require.NoError(t, os.WriteFile(cfg.Extract.P4K, nil, 0o644))
	err = CheckDeps(&cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrToolNotFound))
}
