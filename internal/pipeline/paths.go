package pipeline

import (
	"time"

	"github.com/backmassage/locremix/internal/audit"
	"github.com/backmassage/locremix/internal/catalog"
	"github.com/backmassage/locremix/internal/config"
	"github.com/backmassage/locremix/internal/extract"
	"github.com/backmassage/locremix/internal/kvs"
	"github.com/backmassage/locremix/internal/layout"
	"github.com/backmassage/locremix/internal/naming"
)

// LocalizationPath returns paths.localization when set, else the language
// file of the newest matching version and preferred channel under the pack root.
func LocalizationPath(cfg *config.Config) (string, error) {
	if cfg.Paths.Localization != "" {
		return cfg.Paths.Localization, nil
	}
	t, err := layout.Resolve(
		cfg.Paths.PackRoot,
		cfg.Paths.VersionConstraint,
		cfg.Paths.Channels,
		cfg.Paths.Language,
	)
	if err != nil {
		return "", err
	}
	return t.Localization, nil
}

// Encodings returns the configured decode order, or the defaults.
func Encodings(cfg *config.Config) []string {
	if len(cfg.Paths.Encodings) == 0 {
		return kvs.DefaultEncodings
	}
	return cfg.Paths.Encodings
}

// CatalogOptions maps the config onto catalog.Build options.
func CatalogOptions(cfg *config.Config) catalog.Options {
	return catalog.Options{
		Root:          cfg.Paths.Extracted,
		RecordDir:     cfg.Catalog.RecordDir,
		Keywords:      cfg.Catalog.Keywords,
		ProgressEvery: cfg.Catalog.ProgressEvery,
	}
}

// NewAuditor builds the auditor from the naming and audit sections.
func NewAuditor(cfg *config.Config) *audit.Auditor {
	codes := naming.NewCodeTable(cfg.Naming.ClassCodes, cfg.Naming.DefaultCode)
	return audit.NewAuditor(codes, cfg.Audit.PlaceholderMarkers)
}

// ExtractTools returns the configured extraction binaries.
func ExtractTools(cfg *config.Config) extract.Tools {
	return extract.Tools{Unp4k: cfg.Extract.Unp4k, Unforge: cfg.Extract.Unforge}
}

// ExtractOptions maps the extract section onto extract.Prepare options.
func ExtractOptions(cfg *config.Config, log extract.Logger) extract.Options {
	return extract.Options{
		P4K:            cfg.Extract.P4K,
		OutDir:         cfg.Extract.OutDir,
		Tools:          ExtractTools(cfg),
		Unp4kTimeout:   time.Duration(cfg.Extract.Unp4kTimeoutSeconds) * time.Second,
		UnforgeTimeout: time.Duration(cfg.Extract.UnforgeTimeoutSeconds) * time.Second,
		Verbose:        cfg.Display.Verbose,
		Log:            log,
	}
}
