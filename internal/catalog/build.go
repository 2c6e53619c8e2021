package catalog

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/backmassage/locremix/internal/errors"
)

// DefaultRecordDir is the component record directory relative to the
// extracted tree root.
const DefaultRecordDir = "foundry/records/entities/scitem"

// DefaultProgressEvery is how many files pass between progress callbacks.
const DefaultProgressEvery = 1000

// Options configures Build.
type Options struct {
	Root          string
	RecordDir     string
	Keywords      []string
	ProgressEvery int

	// Progress, when set, is called every ProgressEvery files and once at the end.
	Progress func(scanned, found int)
}

// Catalog is the result of one build.
type Catalog struct {
	Root       string
	Components []Component
	Scanned    int
	Rejections []Rejection
}

// Len returns the number of components.
func (c *Catalog) Len() int { return len(c.Components) }

// RejectionCounts tallies rejections by reason.
func (c *Catalog) RejectionCounts() map[Reason]int {
	out := make(map[Reason]int)
	for _, r := range c.Rejections {
		out[r.Reason]++
	}
	return out
}

// Reasons returns the reasons present, sorted.
func (c *Catalog) Reasons() []Reason {
	counts := c.RejectionCounts()
	out := make([]Reason, 0, len(counts))
	for r := range counts {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RecordRoot returns the directory Build walks for opts.
func RecordRoot(opts Options) string {
	dir := opts.RecordDir
	if dir == "" {
		dir = DefaultRecordDir
	}
	return filepath.Join(opts.Root, filepath.FromSlash(dir))
}

// Build discovers and parses every candidate record under the record root.
// Only a missing record root is an error; bad records become Rejections.
func Build(opts Options) (*Catalog, error) {
	root := RecordRoot(opts)
	fi, err := os.Stat(root)
	if err != nil || !fi.IsDir() {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrRecordRootMissing, "%s", root),
			"run extraction first or point paths.extracted at the unforged tree",
		)
	}

	files, err := Discover(root, opts.Keywords)
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}

	every := opts.ProgressEvery
	if every <= 0 {
		every = DefaultProgressEvery
	}

	cat := &Catalog{Root: root}
	for _, path := range files {
		comp, rej := parseFile(path)
		if rej != nil {
			cat.Rejections = append(cat.Rejections, *rej)
		} else {
			cat.Components = append(cat.Components, comp)
		}
		cat.Scanned++
		if opts.Progress != nil && cat.Scanned%every == 0 {
			opts.Progress(cat.Scanned, len(cat.Components))
		}
	}
	if opts.Progress != nil {
		opts.Progress(cat.Scanned, len(cat.Components))
	}
	return cat, nil
}

func parseFile(path string) (Component, *Rejection) {
	f, err := os.Open(path)
	if err != nil {
		return Component{}, reject(path, ReasonUnreadable, err.Error())
	}
	defer f.Close()
	return ParseRecord(path, f)
}
