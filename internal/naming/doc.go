// Package naming derives canonical display-name codes for ship components.
//
// A code is the class letter, the numeric size and the grade letter joined
// together, e.g. "M3B" for a military size 3 grade B item:
//
//   - Classify(description) finds the "Class: <word>" marker.
//   - CodeTable maps the class to its letter, falling back to "C".
//   - NormalizeGrade turns numeric grades 1-4 into A-D.
//   - SplitPrefix separates an existing code prefix from the base name.
//
// Split along these boundaries: classify.go, code.go, prefix.go.
package naming
