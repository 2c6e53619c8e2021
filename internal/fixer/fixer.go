// Package fixer rewrites localization values so each component's display
// name starts with its canonical code. Only the value portion of affected
// lines changes; every other byte of the document is kept.
package fixer

import (
	"strings"

	"github.com/backmassage/locremix/internal/audit"
	"github.com/backmassage/locremix/internal/catalog"
	"github.com/backmassage/locremix/internal/kvs"
	"github.com/backmassage/locremix/internal/naming"
)

// Change is one rewritten line.
type Change struct {
	Key   string      `json:"key" yaml:"key"`
	Line  int         `json:"line" yaml:"line"`
	Old   string      `json:"old" yaml:"old"`
	New   string      `json:"new" yaml:"new"`
	Class string      `json:"class" yaml:"class"`
	Code  naming.Code `json:"code" yaml:"code"`
}

// Conflict is a component whose name line was already claimed by an
// earlier component with a different code. The line keeps the earlier code.
type Conflict struct {
	Component string      `json:"component" yaml:"component"`
	Key       string      `json:"key" yaml:"key"`
	Line      int         `json:"line" yaml:"line"`
	Code      naming.Code `json:"code" yaml:"code"`
	Kept      naming.Code `json:"kept" yaml:"kept"`
}

// Result summarizes one fix pass.
type Result struct {
	Changes             []Change
	Conflicts           []Conflict
	SkippedPlaceholders int
	NotFound            int
}

// Changed reports whether the document needs to be written back.
func (r *Result) Changed() bool { return len(r.Changes) > 0 }

// Fixer applies canonical codes to a Document.
type Fixer struct {
	auditor *audit.Auditor
}

// New returns a Fixer sharing the auditor's code table and markers.
func New(a *audit.Auditor) *Fixer {
	if a == nil {
		a = audit.NewAuditor(nil, nil)
	}
	return &Fixer{auditor: a}
}

// Apply rewrites doc in place. Descriptions are resolved against the
// document's state before any edit. A value counts as correct when it starts
// with the expected code, the same test the Auditor uses. The first component
// to reach a line owns it for the rest of the pass.
func (f *Fixer) Apply(components []catalog.Component, doc *kvs.Document) *Result {
	store := doc.Store()
	res := &Result{}
	claimed := make(map[int]naming.Code)
	for _, c := range components {
		i, ok := doc.IndexFold(c.NameToken)
		if !ok {
			res.NotFound++
			continue
		}
		ln := doc.Line(i)
		current := strings.TrimSpace(ln.Value())
		if f.auditor.IsPlaceholder(current) {
			res.SkippedPlaceholders++
			continue
		}

		class, code := f.auditor.Expect(c, store)
		if owner, ok := claimed[i]; ok {
			if owner != code {
				res.Conflicts = append(res.Conflicts, Conflict{
					Component: c.ID(),
					Key:       ln.Key(),
					Line:      i + 1,
					Code:      code,
					Kept:      owner,
				})
			}
			continue
		}
		claimed[i] = code
		if strings.HasPrefix(current, string(code)) {
			continue
		}
		updated := naming.Rename(code, current)
		if updated == current {
			continue
		}
		doc.SetValue(i, updated)
		res.Changes = append(res.Changes, Change{
			Key:   ln.Key(),
			Line:  i + 1,
			Old:   current,
			New:   updated,
			Class: class,
			Code:  code,
		})
	}
	return res
}
