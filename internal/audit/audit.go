// Package audit cross-references the component catalog against a
// localization store and partitions every component by naming status.
package audit

import (
	"strings"

	"github.com/backmassage/locremix/internal/catalog"
	"github.com/backmassage/locremix/internal/kvs"
	"github.com/backmassage/locremix/internal/naming"
)

// DefaultPlaceholderMarkers flag values that are not real names yet.
var DefaultPlaceholderMarkers = []string{"PLACEHOLDER", "LOC_PLACEHOLDER"}

// Status is the partition a component lands in.
type Status string

const (
	StatusCorrect     Status = "correct"
	StatusMismatched  Status = "mismatched"
	StatusMissing     Status = "missing"
	StatusPlaceholder Status = "placeholder"
)

// Item is one audited component.
type Item struct {
	Component string      `json:"component" yaml:"component"`
	Path      string      `json:"path" yaml:"path"`
	Key       string      `json:"key,omitempty" yaml:"key,omitempty"`
	Expected  string      `json:"expected" yaml:"expected"`
	Actual    string      `json:"actual,omitempty" yaml:"actual,omitempty"`
	Class     string      `json:"class" yaml:"class"`
	Code      naming.Code `json:"code" yaml:"code"`
	Status    Status      `json:"status" yaml:"status"`
}

// Auditor holds the lookup tables shared by the audit and fix passes.
type Auditor struct {
	codes   *naming.CodeTable
	markers []string
}

// NewAuditor returns an Auditor. Nil codes and empty markers use the defaults.
func NewAuditor(codes *naming.CodeTable, markers []string) *Auditor {
	if codes == nil {
		codes = naming.NewCodeTable(nil, "")
	}
	if len(markers) == 0 {
		markers = DefaultPlaceholderMarkers
	}
	return &Auditor{codes: codes, markers: markers}
}

// IsPlaceholder reports whether value contains any placeholder marker.
func (a *Auditor) IsPlaceholder(value string) bool {
	for _, m := range a.markers {
		if m != "" && strings.Contains(value, m) {
			return true
		}
	}
	return false
}

// Expect classifies c from its description in store and derives its code.
// Description lookup is exact; an absent description gives ClassUnknown.
func (a *Auditor) Expect(c catalog.Component, store *kvs.Store) (string, naming.Code) {
	var desc string
	if c.DescriptionToken != "" {
		desc, _ = store.Get(c.DescriptionToken)
	}
	class := naming.Classify(desc)
	return class, a.codes.Derive(class, c.Size, c.Grade)
}

// Check audits a single component.
func (a *Auditor) Check(c catalog.Component, store *kvs.Store) Item {
	class, code := a.Expect(c, store)
	it := Item{
		Component: c.ID(),
		Path:      c.Path,
		Class:     class,
		Code:      code,
	}

	key, actual, ok := store.LookupFold(c.NameToken)
	switch {
	case !ok || actual == "":
		it.Status = StatusMissing
		it.Expected = string(code) + " ..."
	case a.IsPlaceholder(actual):
		it.Status = StatusPlaceholder
		it.Key, it.Actual = key, actual
		it.Expected = string(code) + " ..."
	case strings.HasPrefix(actual, string(code)):
		it.Status = StatusCorrect
		it.Key, it.Actual = key, actual
		it.Expected = string(code)
	default:
		it.Status = StatusMismatched
		it.Key, it.Actual = key, actual
		it.Expected = string(code) + " ..."
	}
	return it
}

// Audit checks every component in catalog order.
func (a *Auditor) Audit(components []catalog.Component, store *kvs.Store) *Result {
	res := &Result{Total: len(components)}
	for _, c := range components {
		res.add(a.Check(c, store))
	}
	return res
}
