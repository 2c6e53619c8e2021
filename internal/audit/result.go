package audit

// Result holds the four disjoint partitions of one audit pass.
type Result struct {
	Total       int    `json:"total_components" yaml:"total_components"`
	Correct     []Item `json:"correct" yaml:"correct"`
	Mismatched  []Item `json:"mismatches" yaml:"mismatches"`
	Missing     []Item `json:"missing" yaml:"missing"`
	Placeholder []Item `json:"placeholders_ignored" yaml:"placeholders_ignored"`
}

func (r *Result) add(it Item) {
	switch it.Status {
	case StatusCorrect:
		r.Correct = append(r.Correct, it)
	case StatusMismatched:
		r.Mismatched = append(r.Mismatched, it)
	case StatusMissing:
		r.Missing = append(r.Missing, it)
	case StatusPlaceholder:
		r.Placeholder = append(r.Placeholder, it)
	}
}

// Issues is the number of components still needing attention.
func (r *Result) Issues() int { return len(r.Mismatched) + len(r.Missing) }

// Clean reports whether nothing is mismatched or missing.
func (r *Result) Clean() bool { return r.Issues() == 0 }

// Counts returns partition sizes keyed by status.
func (r *Result) Counts() map[Status]int {
	return map[Status]int{
		StatusCorrect:     len(r.Correct),
		StatusMismatched:  len(r.Mismatched),
		StatusMissing:     len(r.Missing),
		StatusPlaceholder: len(r.Placeholder),
	}
}
