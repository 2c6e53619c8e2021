// Package merge carries hand-edited localization values across game
// patches and overlays hand-kept string files onto a localization document.
package merge

import (
	"sort"
	"strings"

	"github.com/backmassage/locremix/internal/kvs"
)

// Defaults for the version marker entry.
const (
	DefaultVersionKey     = "Frontend_PU_Version"
	DefaultBrandingSuffix = " - ScCompLangPackRemix"
)

// Options configures a Merger.
type Options struct {
	// VersionKey receives the stock value plus BrandingSuffix. Empty disables it.
	VersionKey     string
	BrandingSuffix string

	// ForceNewKeys always take the stock value.
	ForceNewKeys []string
}

// DefaultOptions returns the standard version marker settings.
func DefaultOptions() Options {
	return Options{
		VersionKey:     DefaultVersionKey,
		BrandingSuffix: DefaultBrandingSuffix,
		ForceNewKeys:   []string{DefaultVersionKey},
	}
}

// Result is the merged store plus per-rule counters.
type Result struct {
	Store *kvs.Store

	KeptRemixed int // shared key, old value differs from stock
	KeptStock   int // shared key, old value equals stock
	Added       int // key only in the new store
	Forced      int // version marker or forced key

	// Removed lists keys of the old store missing from the new one, sorted.
	Removed []string
}

// Merger merges an old hand-edited store into a new stock store.
type Merger struct {
	opts  Options
	force map[string]bool
}

// New returns a Merger for opts.
func New(opts Options) *Merger {
	m := &Merger{opts: opts, force: make(map[string]bool, len(opts.ForceNewKeys))}
	for _, k := range opts.ForceNewKeys {
		m.force[k] = true
	}
	return m
}

// Merge walks the stock keys in order and picks each value. Old values win
// for shared keys; removed keys are reported but never restored.
func (m *Merger) Merge(old, stock *kvs.Store) *Result {
	res := &Result{Store: kvs.NewStore()}

	for _, e := range stock.Entries() {
		stockVal := trimRight(e.Value)
		switch {
		case m.opts.VersionKey != "" && e.Key == m.opts.VersionKey:
			res.Store.Set(e.Key, stockVal+m.opts.BrandingSuffix)
			res.Forced++
		case m.force[e.Key]:
			res.Store.Set(e.Key, stockVal)
			res.Forced++
		case old.Has(e.Key):
			raw, _ := old.Raw(e.Key)
			oldVal := trimRight(raw)
			res.Store.Set(e.Key, oldVal)
			if oldVal != stockVal {
				res.KeptRemixed++
			} else {
				res.KeptStock++
			}
		default:
			res.Store.Set(e.Key, stockVal)
			res.Added++
		}
	}

	for _, k := range old.Keys() {
		if !stock.Has(k) {
			res.Removed = append(res.Removed, k)
		}
	}
	sort.Strings(res.Removed)
	return res
}

func trimRight(s string) string {
	return strings.TrimRight(s, " \t\r\n")
}
