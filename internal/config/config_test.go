package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/locremix/internal/errors"
	"github.com/backmassage/locremix/internal/kvs"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"color never", func(c *Config) { c.Display.Color = ColorNever }, false},
		{"empty color", func(c *Config) { c.Display.Color = "" }, true},
		{"unknown color", func(c *Config) { c.Display.Color = "rainbow" }, true},
		{"yaml format", func(c *Config) { c.Audit.Format = FormatYAML }, false},
		{"xml format", func(c *Config) { c.Audit.Format = "xml" }, true},
		{"zero limit", func(c *Config) { c.Audit.ReportLimit = 0 }, true},
		{"zero progress", func(c *Config) { c.Catalog.ProgressEvery = 0 }, true},
		{"bad encoding", func(c *Config) { c.Paths.Encodings = []string{"utf-8", "ebcdic"} }, true},
		{"cp1252 encoding", func(c *Config) { c.Paths.Encodings = []string{"cp1252"} }, false},
		{"bad output encoding", func(c *Config) { c.Merge.OutputEncoding = "koi8" }, true},
		{"empty class code", func(c *Config) { c.Naming.ClassCodes["Military"] = " " }, true},
		{"deploy without dir", func(c *Config) { c.Deploy.Enabled = true }, true},
		{"deploy with dir", func(c *Config) { c.Deploy.Enabled, c.Deploy.InstallDir = true, "/games/LIVE" }, false},
		{"extract without p4k", func(c *Config) { c.Extract.Enabled = true }, true},
		{"zero timeout", func(c *Config) { c.Extract.UnforgeTimeoutSeconds = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOutputEncoding(t *testing.T) {
	tests := []struct {
		in   string
		want kvs.Encoding
	}{
		{"utf-8-sig", kvs.Encoding{Name: kvs.EncUTF8, BOM: true}},
		{"", kvs.Encoding{Name: kvs.EncUTF8, BOM: true}},
		{"utf-8", kvs.Encoding{Name: kvs.EncUTF8}},
		{"utf-16", kvs.Encoding{Name: kvs.EncUTF16LE, BOM: true}},
		{"UTF-16BE", kvs.Encoding{Name: kvs.EncUTF16BE, BOM: true}},
		{"latin-1", kvs.Encoding{Name: kvs.EncLatin1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Merge.OutputEncoding = tt.in
			got, err := cfg.OutputEncoding()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, file, err := Load(LoadOptions{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, file)

	want := DefaultConfig()
	assert.Equal(t, want.Paths, cfg.Paths)
	assert.Equal(t, want.Audit, cfg.Audit)
	assert.Equal(t, want.Extract, cfg.Extract)
	assert.Equal(t, "M", cfg.Naming.ClassCodes["military"])
}

func TestLoadPrecedence(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(`
[paths]
localization = "pack/global.ini"
channels = ["PTU"]

[audit]
format = "json"
report_limit = 5

[naming.class_codes]
Military = "X"
`), 0o644))

	t.Setenv("LOCREMIX_AUDIT_REPORT_LIMIT", "7")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddDisplayFlags(fs)
	AddInputFlags(fs)
	AddReportFlags(fs)
	require.NoError(t, fs.Parse([]string{"--format", "yaml", "-v", "--no-progress"}))

	cfg, file, err := Load(LoadOptions{Dir: nested, Flags: fs})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, FileName), file)
	assert.Equal(t, "pack/global.ini", cfg.Paths.Localization) // file
	assert.Equal(t, []string{"PTU"}, cfg.Paths.Channels)        // file, flag unchanged
	assert.Equal(t, 7, cfg.Audit.ReportLimit)                   // env over file
	assert.Equal(t, FormatYAML, cfg.Audit.Format)               // flag over file
	assert.True(t, cfg.Display.Verbose)
	assert.False(t, cfg.Display.Progress)
	assert.Equal(t, "X", cfg.Naming.ClassCodes["military"])
	assert.Equal(t, ColorAuto, cfg.Display.Color)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, _, err := Load(LoadOptions{File: filepath.Join(t.TempDir(), "nope.toml")})
		assert.True(t, errors.Is(err, errors.ErrInputNotFound))
	})

	t.Run("invalid value", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[display]\ncolor = \"sometimes\"\n"), 0o644))
		_, _, err := Load(LoadOptions{File: path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid color mode")
	})

	t.Run("flag rejects bad enum", func(t *testing.T) {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.SetOutput(&nopWriter{})
		AddReportFlags(fs)
		assert.Error(t, fs.Parse([]string{"--format", "csv"}))
	})
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, WriteDefault(path, false))
	assert.Error(t, WriteDefault(path, false))
	require.NoError(t, WriteDefault(path, true))

	cfg, file, err := Load(LoadOptions{File: path})
	require.NoError(t, err)
	assert.Equal(t, path, file)

	want := DefaultConfig()
	assert.Equal(t, want.Paths, cfg.Paths)
	assert.Equal(t, want.Catalog, cfg.Catalog)
	assert.Equal(t, want.Merge, cfg.Merge)
	assert.Equal(t, want.Display, cfg.Display)
	assert.Len(t, cfg.Naming.ClassCodes, len(want.Naming.ClassCodes))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
