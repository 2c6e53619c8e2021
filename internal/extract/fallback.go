package extract

import (
	"context"
	"os"
	"path/filepath"

	"github.com/backmassage/locremix/internal/errors"
)

// Archive paths tried in order.
var (
	DCBCandidates = []string{"Data/Game2.dcb", "Data/Game.dcb"}

	LocalizationCandidates = []string{
		"Data/Libs/Localization/English/global.ini",
		"Data/Localization/english/global.ini",
	}
)

// Attempt records one candidate tried by firstExtracted.
type Attempt struct {
	Pattern string
	Err     error
}

// firstExisting returns the first candidate already present under dir.
func firstExisting(dir string, candidates []string) (string, bool) {
	for _, c := range candidates {
		p := filepath.Join(dir, filepath.FromSlash(c))
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, true
		}
	}
	return "", false
}

// firstExtracted runs extractOne per candidate until one succeeds and its
// output file exists. It returns the extracted path and every attempt made.
func firstExtracted(
	ctx context.Context,
	dir string,
	candidates []string,
	extractOne func(ctx context.Context, pattern string) error,
) (string, []Attempt, error) {
	var attempts []Attempt
	for _, pattern := range candidates {
		if err := ctx.Err(); err != nil {
			return "", attempts, err
		}
		err := extractOne(ctx, pattern)
		if err == nil {
			p := filepath.Join(dir, filepath.FromSlash(pattern))
			if _, statErr := os.Stat(p); statErr == nil {
				return p, append(attempts, Attempt{Pattern: pattern}), nil
			}
			err = errors.Newf("%s not produced", pattern)
		}
		attempts = append(attempts, Attempt{Pattern: pattern, Err: err})
	}
	last := errors.New("no candidates")
	if n := len(attempts); n > 0 {
		last = attempts[n-1].Err
	}
	return "", attempts, errors.Wrapf(last, "none of %v could be extracted", candidates)
}

// hasContent reports whether dir exists and holds at least one entry.
func hasContent(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
