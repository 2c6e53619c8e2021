package pipeline

import (
	"time"

	"github.com/backmassage/locremix/internal/audit"
	"github.com/backmassage/locremix/internal/catalog"
	"github.com/backmassage/locremix/internal/fixer"
)

// RunStats tracks per-phase counters across one command.
type RunStats struct {
	Localization string // file audited and fixed
	Extracted    bool

	// Catalog phase.
	Scanned    int
	Components int
	Rejected   int

	// First audit.
	Correct      int
	Mismatched   int
	Missing      int
	Placeholders int

	// Fix phase.
	Changes             int
	Conflicts           int
	SkippedPlaceholders int
	NotFound            int
	Written             bool

	// Remaining is mismatched plus missing after the last audit.
	Remaining int

	Deployed string // destination path, empty when not deployed
	Elapsed  time.Duration
}

func (s *RunStats) recordCatalog(c *catalog.Catalog) {
	s.Scanned = c.Scanned
	s.Components = c.Len()
	s.Rejected = len(c.Rejections)
}

func (s *RunStats) recordAudit(r *audit.Result) {
	s.Correct = len(r.Correct)
	s.Mismatched = len(r.Mismatched)
	s.Missing = len(r.Missing)
	s.Placeholders = len(r.Placeholder)
	s.Remaining = r.Issues()
}

func (s *RunStats) recordFix(r *fixer.Result) {
	s.Changes = len(r.Changes)
	s.Conflicts = len(r.Conflicts)
	s.SkippedPlaceholders = r.SkippedPlaceholders
	s.NotFound = r.NotFound
}

// Clean reports whether no mismatched or missing names remain.
func (s *RunStats) Clean() bool { return s.Remaining == 0 }
