package pipeline

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/backmassage/locremix/internal/audit"
	"github.com/backmassage/locremix/internal/catalog"
	"github.com/backmassage/locremix/internal/config"
	"github.com/backmassage/locremix/internal/display"
	"github.com/backmassage/locremix/internal/errors"
	"github.com/backmassage/locremix/internal/extract"
	"github.com/backmassage/locremix/internal/fixer"
	"github.com/backmassage/locremix/internal/fsutil"
	"github.com/backmassage/locremix/internal/kvs"
	"github.com/backmassage/locremix/internal/logging"
)

// Run is the full patch workflow: optional extraction, catalog, audit and
// report, fixes (unless dry run), a verification audit, and optional deploy.
// The report is written to out and to paths.report when set.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, out io.Writer) (RunStats, error) {
	var stats RunStats
	start := time.Now()

	if cfg.Extract.Enabled {
		section(log, "Extracting game data")
		prep, err := extract.Prepare(ctx, ExtractOptions(cfg, log))
		if err != nil {
			return stats, err
		}
		cfg.Paths.Extracted = prep.LibsDir
		stats.Extracted = true
		if prep.Localization != "" {
			log.Info("Stock localization: %s", prep.Localization)
		}
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	section(log, "Initial audit")
	cat, path, doc, err := open(cfg, log, &stats)
	if err != nil {
		return stats, err
	}
	auditor := NewAuditor(cfg)
	res := auditor.Audit(cat.Components, doc.Store())
	stats.recordAudit(res)
	if err := WriteReport(cfg, log, res, out); err != nil {
		return stats, err
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	section(log, "Applying naming fixes")
	if err := applyFixes(cfg, log, auditor, cat, path, doc, &stats); err != nil {
		return stats, err
	}

	if !cfg.Run.DryRun {
		section(log, "Verifying fixes")
		verify := auditor.Audit(cat.Components, doc.Store())
		stats.Remaining = verify.Issues()
		logVerification(log, verify)
	}

	if cfg.Deploy.Enabled {
		section(log, "Deploying to game directory")
		if cfg.Run.DryRun {
			log.Warn("[DRY] Would deploy %s to %s", path, cfg.Deploy.InstallDir)
		} else {
			dst, err := Deploy(path, cfg.Deploy.InstallDir, cfg.Paths.Language)
			if err != nil {
				return stats, err
			}
			stats.Deployed = dst
			log.Success("Deployed to: %s", dst)
		}
	}

	stats.Elapsed = time.Since(start)
	logSummary(cfg, log, &stats)
	return stats, nil
}

// Audit builds the catalog, audits the localization file and writes the
// report to out (and paths.report when set). Nothing is modified.
func Audit(ctx context.Context, cfg *config.Config, log *logging.Logger, out io.Writer) (RunStats, error) {
	var stats RunStats
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	cat, _, doc, err := open(cfg, log, &stats)
	if err != nil {
		return stats, err
	}
	res := NewAuditor(cfg).Audit(cat.Components, doc.Store())
	stats.recordAudit(res)
	return stats, WriteReport(cfg, log, res, out)
}

// Fix builds the catalog and rewrites mismatched names in the localization
// file. On dry run the changes are only logged.
func Fix(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	var stats RunStats
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	cat, path, doc, err := open(cfg, log, &stats)
	if err != nil {
		return stats, err
	}
	auditor := NewAuditor(cfg)
	if err := applyFixes(cfg, log, auditor, cat, path, doc, &stats); err != nil {
		return stats, err
	}
	stats.Remaining = auditor.Audit(cat.Components, doc.Store()).Issues()
	return stats, nil
}

// BuildCatalog scans the extracted record tree with progress reporting.
func BuildCatalog(cfg *config.Config, log *logging.Logger) (*catalog.Catalog, error) {
	opts := CatalogOptions(cfg)
	log.Info("Scanning %s...", catalog.RecordRoot(opts))

	progress := display.NewProgress(cfg.Display.Progress, "Scanning", log)
	opts.Progress = progress.Update
	cat, err := catalog.Build(opts)
	progress.Finish()
	if err != nil {
		return nil, err
	}

	log.Info("Scanned %d XML files total", cat.Scanned)
	log.Success("Found %s", display.FormatCount(cat.Len(), "component"))
	if len(cat.Rejections) > 0 {
		counts := cat.RejectionCounts()
		for _, r := range cat.Reasons() {
			log.Debug(cfg.Display.Verbose, "  skipped %d: %s", counts[r], r)
		}
	}
	return cat, nil
}

// LoadLocalization resolves and decodes the localization file.
func LoadLocalization(cfg *config.Config, log *logging.Logger) (string, *kvs.Document, error) {
	path, err := LocalizationPath(cfg)
	if err != nil {
		return "", nil, err
	}
	log.Info("Parsing localization file: %s", path)
	doc, err := kvs.LoadDocument(path, Encodings(cfg))
	if err != nil {
		return "", nil, err
	}
	log.Info("Loaded %d localization entries (encoding: %s)", doc.Store().Len(), encodingLabel(doc.Encoding))
	return path, doc, nil
}

// WriteReport renders res to out in the configured format and, when
// paths.report is set, to that file as well.
func WriteReport(cfg *config.Config, log *logging.Logger, res *audit.Result, out io.Writer) error {
	format := audit.Format(cfg.Audit.Format)
	var buf bytes.Buffer
	if err := res.Write(&buf, format, cfg.Audit.ReportLimit); err != nil {
		return err
	}
	if out != nil {
		if _, err := out.Write(buf.Bytes()); err != nil {
			return errors.Wrap(err, "write report")
		}
	}
	if cfg.Paths.Report == "" {
		return nil
	}
	if err := fsutil.WriteFileAtomic(cfg.Paths.Report, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "save report")
	}
	log.Info("Report saved to %s", cfg.Paths.Report)
	return nil
}

func open(cfg *config.Config, log *logging.Logger, stats *RunStats) (*catalog.Catalog, string, *kvs.Document, error) {
	cat, err := BuildCatalog(cfg, log)
	if err != nil {
		return nil, "", nil, err
	}
	stats.recordCatalog(cat)

	path, doc, err := LoadLocalization(cfg, log)
	if err != nil {
		return nil, "", nil, err
	}
	stats.Localization = path
	return cat, path, doc, nil
}

func applyFixes(
	cfg *config.Config,
	log *logging.Logger,
	auditor *audit.Auditor,
	cat *catalog.Catalog,
	path string,
	doc *kvs.Document,
	stats *RunStats,
) error {
	res := fixer.New(auditor).Apply(cat.Components, doc)
	stats.recordFix(res)

	for _, c := range res.Changes {
		log.Info("Updating %s:", c.Key)
		log.Info("  Old: '%s'", c.Old)
		log.Info("  New: '%s'", c.New)
	}
	for _, c := range res.Conflicts {
		log.Warn("%s shares line %d (%s) with another component; kept %s, wanted %s",
			c.Component, c.Line, c.Key, c.Kept, c.Code)
	}
	log.Info("Updates: %d, placeholders skipped: %d, not in file: %d",
		len(res.Changes), res.SkippedPlaceholders, res.NotFound)

	switch {
	case !res.Changed():
		log.Success("No updates needed")
	case cfg.Run.DryRun:
		log.Warn("[DRY] Would save %s to %s", display.FormatCount(len(res.Changes), "update"), path)
	default:
		if err := doc.WriteFile(path); err != nil {
			return errors.Wrapf(err, "save %s", path)
		}
		stats.Written = true
		log.Success("Saved %s to %s", display.FormatCount(len(res.Changes), "update"), path)
	}
	return nil
}

func encodingLabel(enc kvs.Encoding) string {
	if enc.BOM {
		return enc.Name + " with BOM"
	}
	return enc.Name
}

// --- Logging helpers ---

func section(log *logging.Logger, title string) {
	log.Info("==============================")
	log.Info("STEP: %s", title)
}

func logVerification(log *logging.Logger, r *audit.Result) {
	if r.Clean() {
		log.Success("Verification passed: %d correct, %d placeholders ignored", len(r.Correct), len(r.Placeholder))
		return
	}
	log.Warn("Verification: %d mismatched, %d missing from the language pack", len(r.Mismatched), len(r.Missing))
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Summary report:")
	log.Info("  Components: %d of %d files (%d skipped)", stats.Components, stats.Scanned, stats.Rejected)
	log.Info("  Correct before fixes: %d (%s)", stats.Correct, display.FormatPercent(stats.Correct, stats.Components))
	if cfg.Run.DryRun {
		log.Info("  Updates: %d (dry run, not written)", stats.Changes)
	} else {
		log.Info("  Updates applied: %d", stats.Changes)
	}
	if stats.Conflicts > 0 {
		log.Warn("  Shared name lines: %d (first component's code kept)", stats.Conflicts)
	}
	if stats.Remaining > 0 {
		log.Warn("  Remaining issues: %d (check report)", stats.Remaining)
	} else {
		log.Success("  Remaining issues: 0")
	}
	if stats.Deployed == "" && !cfg.Deploy.Enabled {
		log.Info("  Skipping deployment. Use --deploy to auto-install.")
	}
	log.Info("  Elapsed: %s", stats.Elapsed.Round(time.Millisecond))
}
