// Package check provides system diagnostics (the check command) and
// pre-pipeline dependency validation (CheckDeps) for the extraction tools,
// the language pack layout, the localization file and the record tree.
package check

import (
	"os"

	"github.com/backmassage/locremix/internal/catalog"
	"github.com/backmassage/locremix/internal/config"
	"github.com/backmassage/locremix/internal/errors"
	"github.com/backmassage/locremix/internal/extract"
	"github.com/backmassage/locremix/internal/kvs"
	"github.com/backmassage/locremix/internal/pipeline"
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck reports the availability of every input a run needs. Missing
// extraction tools only warn unless extraction is enabled. Returns false
// when a required input is missing.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkTools(cfg, log)
	ok = checkLocalization(cfg, log) && ok
	ok = checkRecords(cfg, log) && ok
	ok = checkDeploy(cfg, log) && ok

	if ok {
		log.Success("All checks passed")
	} else {
		log.Error("Some checks failed")
	}
	return ok
}

// checkTools resolves unp4k and unforge and, when extraction is enabled,
// the p4k archive.
func checkTools(cfg *config.Config, log Logger) bool {
	ok := true
	tools := pipeline.ExtractTools(cfg)
	for _, name := range []string{tools.Unp4k, tools.Unforge} {
		p, err := extract.Resolve(name)
		switch {
		case err == nil:
			log.Success("%s: %s", name, p)
		case cfg.Extract.Enabled:
			log.Error("%s not found", name)
			ok = false
		default:
			log.Warn("%s not found (only needed with --extract)", name)
		}
	}
	if !cfg.Extract.Enabled {
		return ok
	}
	if _, err := os.Stat(cfg.Extract.P4K); err != nil {
		log.Error("Data.p4k not found: %s", cfg.Extract.P4K)
		return false
	}
	log.Success("Data.p4k: %s", cfg.Extract.P4K)
	return ok
}

// checkLocalization resolves the localization file and decodes it.
func checkLocalization(cfg *config.Config, log Logger) bool {
	path, err := pipeline.LocalizationPath(cfg)
	if err != nil {
		log.Error("Language pack: %v", err)
		for _, h := range errors.GetAllHints(err) {
			log.Info("  hint: %s", h)
		}
		return false
	}
	doc, err := kvs.LoadDocument(path, pipeline.Encodings(cfg))
	if err != nil {
		log.Error("Localization: %v", err)
		return false
	}
	log.Success("Localization: %s (%d entries, %s)", path, doc.Store().Len(), doc.Encoding.Name)
	return true
}

// checkRecords counts candidate record files under the record root. A
// missing tree is fine when extraction will create it.
func checkRecords(cfg *config.Config, log Logger) bool {
	opts := pipeline.CatalogOptions(cfg)
	root := catalog.RecordRoot(opts)
	files, err := catalog.Discover(root, opts.Keywords)
	if err != nil {
		if cfg.Extract.Enabled {
			log.Warn("Record tree not extracted yet: %s", root)
			return true
		}
		log.Error("Record tree not found: %s", root)
		return false
	}
	log.Success("Records: %d candidate files in %s", len(files), root)
	return true
}

// checkDeploy verifies the install directory when deployment is enabled.
func checkDeploy(cfg *config.Config, log Logger) bool {
	if !cfg.Deploy.Enabled {
		log.Debug(cfg.Display.Verbose, "Deployment disabled")
		return true
	}
	fi, err := os.Stat(cfg.Deploy.InstallDir)
	if err != nil || !fi.IsDir() {
		log.Error("Install directory not found: %s", cfg.Deploy.InstallDir)
		return false
	}
	log.Success("Install directory: %s", cfg.Deploy.InstallDir)
	return true
}

// CheckDeps is the pre-pipeline validation: when extraction is enabled the
// p4k archive and both tools must be available. Returns a sentinel-marked
// error on failure.
func CheckDeps(cfg *config.Config) error {
	if !cfg.Extract.Enabled {
		return nil
	}
	if _, err := os.Stat(cfg.Extract.P4K); err != nil {
		return errors.WithHint(
			errors.Wrapf(errors.ErrInputNotFound, "%s", cfg.Extract.P4K),
			"set extract.p4k to the game's Data.p4k",
		)
	}
	return extract.CheckTools(pipeline.ExtractTools(cfg))
}
