package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/locremix/internal/errors"
)

// Logger is the minimal logging interface Prepare needs.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Options configures Prepare.
type Options struct {
	P4K    string // path to Data.p4k
	OutDir string // extraction workspace

	Tools          Tools
	Unp4kTimeout   time.Duration
	UnforgeTimeout time.Duration

	Verbose bool
	Log     Logger

	// Run replaces Execute; tool lookup is skipped when it is set.
	Run Runner
}

// Prepared lists the outputs of a successful Prepare.
type Prepared struct {
	DCB          string
	LibsDir      string
	Localization string // empty when no candidate could be extracted
}

// Prepare extracts the record database and the stock localization file,
// then unforges the database. Steps whose output already exists are skipped.
func Prepare(ctx context.Context, opts Options) (Prepared, error) {
	log := opts.Log
	if log == nil {
		log = nopLogger{}
	}
	if _, err := os.Stat(opts.P4K); err != nil {
		return Prepared{}, errors.WithHint(
			errors.Wrapf(errors.ErrInputNotFound, "%s", opts.P4K),
			"set extract.p4k to the game's Data.p4k",
		)
	}

	// Tools run from inside the output directories, so relative paths
	// must be pinned first.
	opts.P4K = absPath(opts.P4K)
	opts.OutDir = absPath(opts.OutDir)

	tools := opts.Tools
	if tools.Unp4k == "" || tools.Unforge == "" {
		def := DefaultTools()
		if tools.Unp4k == "" {
			tools.Unp4k = def.Unp4k
		}
		if tools.Unforge == "" {
			tools.Unforge = def.Unforge
		}
	}
	if strings.ContainsRune(tools.Unp4k, filepath.Separator) {
		tools.Unp4k = absPath(tools.Unp4k)
	}
	if strings.ContainsRune(tools.Unforge, filepath.Separator) {
		tools.Unforge = absPath(tools.Unforge)
	}

	run := opts.Run
	if run == nil {
		if err := CheckTools(tools); err != nil {
			return Prepared{}, err
		}
		run = func(ctx context.Context, c Command) ExecResult {
			if opts.Verbose {
				return Execute(ctx, c, os.Stderr)
			}
			return Execute(ctx, c, nil)
		}
	}

	unp4k := func(dir string) func(context.Context, string) error {
		return func(ctx context.Context, pattern string) error {
			log.Info("Extracting %s...", pattern)
			c := Unp4kCommand(tools.Unp4k, opts.P4K, pattern, dir, opts.Unp4kTimeout)
			res := run(ctx, c)
			if res.Err != nil {
				log.Warn("%v", res.Err)
			}
			return res.Err
		}
	}

	var out Prepared

	// Record database.
	dcbDir := filepath.Join(opts.OutDir, "dcb")
	if p, ok := firstExisting(dcbDir, DCBCandidates); ok {
		log.Info("Found %s, skipping extraction", p)
		out.DCB = p
	} else {
		if err := os.MkdirAll(dcbDir, 0o755); err != nil {
			return Prepared{}, errors.Wrap(err, "create extraction directory")
		}
		p, _, err := firstExtracted(ctx, dcbDir, DCBCandidates, unp4k(dcbDir))
		if err != nil {
			return Prepared{}, errors.Wrap(err, "extract record database")
		}
		out.DCB = p
	}

	// Stock localization file; a failure here only warns.
	locDir := filepath.Join(opts.OutDir, "localization")
	if p, ok := firstExisting(locDir, LocalizationCandidates); ok {
		log.Debug(opts.Verbose, "Found %s, skipping extraction", p)
		out.Localization = p
	} else if err := os.MkdirAll(locDir, 0o755); err != nil {
		return Prepared{}, errors.Wrap(err, "create extraction directory")
	} else if p, _, err := firstExtracted(ctx, locDir, LocalizationCandidates, unp4k(locDir)); err != nil {
		if ctx.Err() != nil {
			return Prepared{}, ctx.Err()
		}
		log.Warn("Could not extract global.ini: %v", err)
	} else {
		out.Localization = p
	}

	// XML tree.
	out.LibsDir = filepath.Join(filepath.Dir(out.DCB), "libs")
	if hasContent(out.LibsDir) {
		log.Info("Found extracted records in %s, skipping unforge", out.LibsDir)
		return out, nil
	}
	log.Info("Converting %s to XML...", filepath.Base(out.DCB))
	res := run(ctx, UnforgeCommand(tools.Unforge, out.DCB, opts.UnforgeTimeout))
	if res.Err != nil {
		return Prepared{}, errors.Wrap(res.Err, "unforge")
	}
	if !hasContent(out.LibsDir) {
		return Prepared{}, errors.Wrapf(errors.ErrRecordRootMissing, "unforge produced nothing in %s", out.LibsDir)
	}
	log.Success("Extraction complete")
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Success(string, ...interface{})     {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Debug(bool, string, ...interface{}) {}
