package merge

import (
	"github.com/backmassage/locremix/internal/kvs"
)

// OverlayResult counts the effect of Overlay.
type OverlayResult struct {
	Replaced int
	Appended int
}

// Overlay writes every value of overlay into doc. Matching data lines keep
// their layout and get the overlay's raw value; unknown keys are appended in
// overlay order.
func Overlay(doc *kvs.Document, overlay *kvs.Store) OverlayResult {
	var res OverlayResult
	seen := make(map[string]bool)

	for i := 0; i < doc.Len(); i++ {
		ln := doc.Line(i)
		if !ln.IsData() {
			continue
		}
		val, ok := overlay.Raw(ln.Key())
		if !ok {
			continue
		}
		if ln.Value() != val {
			doc.SetValue(i, val)
		}
		seen[ln.Key()] = true
		res.Replaced++
	}

	for _, e := range overlay.Entries() {
		if !seen[e.Key] {
			doc.Append(e.Key, e.Value)
			res.Appended++
		}
	}
	return res
}
