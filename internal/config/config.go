// Package config holds runtime configuration: defaults, file and environment
// loading, CLI flag bindings and validation.
package config

import (
	"strings"

	"github.com/backmassage/locremix/internal/errors"
	"github.com/backmassage/locremix/internal/kvs"
)

// --- Enum types for validated string fields ---

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// ReportFormat selects the audit report encoding.
type ReportFormat string

const (
	FormatText ReportFormat = "text" // Summary plus truncated detail (default).
	FormatJSON ReportFormat = "json" // Full partitions.
	FormatYAML ReportFormat = "yaml" // Full partitions.
)

// Config holds all runtime settings. It is populated by [Load] on top of
// [DefaultConfig] and passed by pointer to packages that need it.
type Config struct {
	Paths   PathsConfig   `mapstructure:"paths" toml:"paths"`
	Catalog CatalogConfig `mapstructure:"catalog" toml:"catalog"`
	Naming  NamingConfig  `mapstructure:"naming" toml:"naming"`
	Audit   AuditConfig   `mapstructure:"audit" toml:"audit"`
	Merge   MergeConfig   `mapstructure:"merge" toml:"merge"`
	Extract ExtractConfig `mapstructure:"extract" toml:"extract"`
	Deploy  DeployConfig  `mapstructure:"deploy" toml:"deploy"`
	Display DisplayConfig `mapstructure:"display" toml:"display"`
	Run     RunConfig     `mapstructure:"run" toml:"run"`
}

// PathsConfig locates the language pack and the extracted records.
type PathsConfig struct {
	PackRoot          string   `mapstructure:"pack_root" toml:"pack_root"`                   // Default: ".". Holds <version>/<channel>/ folders.
	VersionConstraint string   `mapstructure:"version_constraint" toml:"version_constraint"` // Optional, e.g. "< 4.5".
	Channels          []string `mapstructure:"channels" toml:"channels"`                     // Default: LIVE, PTU.
	Language          string   `mapstructure:"language" toml:"language"`                     // Default: "english".
	Localization      string   `mapstructure:"localization" toml:"localization"`             // Explicit file; skips version/channel resolution.
	Extracted         string   `mapstructure:"extracted" toml:"extracted"`                   // Root of the unforged XML tree.
	Report            string   `mapstructure:"report" toml:"report"`                         // Default: "final_audit_report.txt".
	Encodings         []string `mapstructure:"encodings" toml:"encodings"`                   // Decode order for localization files.
}

// CatalogConfig controls record discovery.
type CatalogConfig struct {
	RecordDir     string   `mapstructure:"record_dir" toml:"record_dir"`
	Keywords      []string `mapstructure:"keywords" toml:"keywords"`
	ProgressEvery int      `mapstructure:"progress_every" toml:"progress_every"`
}

// NamingConfig holds the class-to-letter table.
type NamingConfig struct {
	ClassCodes  map[string]string `mapstructure:"class_codes" toml:"class_codes"`
	DefaultCode string            `mapstructure:"default_code" toml:"default_code"`
}

// AuditConfig controls placeholder detection and report output.
type AuditConfig struct {
	PlaceholderMarkers []string     `mapstructure:"placeholder_markers" toml:"placeholder_markers"`
	ReportLimit        int          `mapstructure:"report_limit" toml:"report_limit"`
	Format             ReportFormat `mapstructure:"format" toml:"format"`
}

// MergeConfig controls patch merging.
type MergeConfig struct {
	VersionKey     string   `mapstructure:"version_key" toml:"version_key"`
	BrandingSuffix string   `mapstructure:"branding_suffix" toml:"branding_suffix"`
	ForceNewKeys   []string `mapstructure:"force_new_keys" toml:"force_new_keys"`
	OutputEncoding string   `mapstructure:"output_encoding" toml:"output_encoding"` // Default: "utf-8-sig".
}

// ExtractConfig controls the unp4k/unforge step.
type ExtractConfig struct {
	Enabled               bool   `mapstructure:"enabled" toml:"enabled"`
	P4K                   string `mapstructure:"p4k" toml:"p4k"`
	OutDir                string `mapstructure:"out_dir" toml:"out_dir"`
	Unp4k                 string `mapstructure:"unp4k" toml:"unp4k"`
	Unforge               string `mapstructure:"unforge" toml:"unforge"`
	Unp4kTimeoutSeconds   int    `mapstructure:"unp4k_timeout_seconds" toml:"unp4k_timeout_seconds"`
	UnforgeTimeoutSeconds int    `mapstructure:"unforge_timeout_seconds" toml:"unforge_timeout_seconds"`
}

// DeployConfig controls copying the result into a game install.
type DeployConfig struct {
	Enabled    bool   `mapstructure:"enabled" toml:"enabled"`
	InstallDir string `mapstructure:"install_dir" toml:"install_dir"`
}

// DisplayConfig controls console and file logging.
type DisplayConfig struct {
	Verbose  bool      `mapstructure:"verbose" toml:"verbose"`
	Color    ColorMode `mapstructure:"color" toml:"color"`
	LogFile  string    `mapstructure:"log_file" toml:"log_file"`
	Progress bool      `mapstructure:"progress" toml:"progress"` // Progress bar on TTYs.
}

// RunConfig holds per-invocation switches.
type RunConfig struct {
	DryRun bool `mapstructure:"dry_run" toml:"dry_run"`
	Strict bool `mapstructure:"strict" toml:"strict"` // Exit 2 when issues remain.
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			PackRoot:  ".",
			Channels:  []string{"LIVE", "PTU"},
			Language:  "english",
			Extracted: "extracted/dcb/Data/libs",
			Report:    "final_audit_report.txt",
			Encodings: []string{"utf-8", "utf-16", "latin-1"},
		},
		Catalog: CatalogConfig{
			RecordDir:     "foundry/records/entities/scitem",
			Keywords:      []string{"shield", "power", "cooler", "quantum", "shld", "powr", "cool", "qdrv"},
			ProgressEvery: 1000,
		},
		Naming: NamingConfig{
			ClassCodes: map[string]string{
				"Military":    "M",
				"Civilian":    "C",
				"Industrial":  "I",
				"Stealth":     "S",
				"Competition": "R",
			},
			DefaultCode: "C",
		},
		Audit: AuditConfig{
			PlaceholderMarkers: []string{"PLACEHOLDER", "LOC_PLACEHOLDER"},
			ReportLimit:        20,
			Format:             FormatText,
		},
		Merge: MergeConfig{
			VersionKey:     "Frontend_PU_Version",
			BrandingSuffix: " - ScCompLangPackRemix",
			ForceNewKeys:   []string{"Frontend_PU_Version"},
			OutputEncoding: "utf-8-sig",
		},
		Extract: ExtractConfig{
			OutDir:                "extracted",
			Unp4k:                 "unp4k",
			Unforge:               "unforge",
			Unp4kTimeoutSeconds:   300,
			UnforgeTimeoutSeconds: 600,
		},
		Display: DisplayConfig{
			Color:    ColorAuto,
			Progress: true,
		},
	}
}

// Validate checks enum fields and values that must be set.
func (c *Config) Validate() error {
	switch c.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.Newf("invalid color mode %q (use 'auto', 'always' or 'never')", c.Display.Color)
	}

	switch c.Audit.Format {
	case FormatText, FormatJSON, FormatYAML:
		// valid
	default:
		return errors.Newf("invalid report format %q (use 'text', 'json' or 'yaml')", c.Audit.Format)
	}

	if c.Audit.ReportLimit <= 0 {
		return errors.New("audit.report_limit must be positive")
	}
	if c.Catalog.ProgressEvery <= 0 {
		return errors.New("catalog.progress_every must be positive")
	}
	if c.Extract.Unp4kTimeoutSeconds <= 0 || c.Extract.UnforgeTimeoutSeconds <= 0 {
		return errors.New("extract timeouts must be positive")
	}

	for _, enc := range c.Paths.Encodings {
		if _, ok := kvs.CanonicalEncoding(enc); !ok {
			return errors.Newf("unsupported encoding %q in paths.encodings", enc)
		}
	}
	if _, err := c.OutputEncoding(); err != nil {
		return err
	}

	for class, code := range c.Naming.ClassCodes {
		if strings.TrimSpace(code) == "" {
			return errors.Newf("naming.class_codes.%s is empty", class)
		}
	}

	if c.Deploy.Enabled && c.Deploy.InstallDir == "" {
		return errors.WithHint(
			errors.New("deploy.enabled needs deploy.install_dir"),
			"pass --install-dir or set deploy.install_dir",
		)
	}
	if c.Extract.Enabled && c.Extract.P4K == "" {
		return errors.WithHint(
			errors.New("extract.enabled needs extract.p4k"),
			"pass --p4k or set extract.p4k",
		)
	}
	return nil
}

// OutputEncoding resolves Merge.OutputEncoding. "utf-8-sig" means UTF-8
// with a byte-order mark; "utf-16" is written little-endian with a BOM.
func (c *Config) OutputEncoding() (kvs.Encoding, error) {
	raw := strings.ToLower(strings.TrimSpace(c.Merge.OutputEncoding))
	if raw == "utf-8-sig" || raw == "utf8-sig" || raw == "" {
		return kvs.UTF8BOM, nil
	}
	name, ok := kvs.CanonicalEncoding(raw)
	if !ok {
		return kvs.Encoding{}, errors.Newf("unsupported merge.output_encoding %q", c.Merge.OutputEncoding)
	}
	switch name {
	case kvs.EncUTF16:
		return kvs.Encoding{Name: kvs.EncUTF16LE, BOM: true}, nil
	case kvs.EncUTF16LE, kvs.EncUTF16BE:
		return kvs.Encoding{Name: name, BOM: true}, nil
	}
	return kvs.Encoding{Name: name}, nil
}
