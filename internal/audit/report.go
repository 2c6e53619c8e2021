package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/locremix/internal/errors"
)

// DefaultLimit caps each detail section of the text report.
const DefaultLimit = 20

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Write renders r in format. limit applies to the text format only.
func (r *Result) Write(w io.Writer, format Format, limit int) error {
	switch format {
	case FormatText, "":
		return r.WriteText(w, limit)
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatYAML:
		return r.WriteYAML(w)
	}
	return errors.Newf("unknown report format %q", format)
}

var (
	rule = strings.Repeat("=", 60)
	sep  = strings.Repeat("-", 60)
)

// WriteText writes the summary and up to limit mismatched and missing
// entries. A limit <= 0 means DefaultLimit.
func (r *Result) WriteText(w io.Writer, limit int) error {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var b strings.Builder

	fmt.Fprintf(&b, "%s\nAUDIT REPORT\n%s\n\n", rule, rule)
	fmt.Fprintf(&b, "Total Components Scanned: %d\n", r.Total)
	fmt.Fprintf(&b, "Correct Names: %d\n", len(r.Correct))
	fmt.Fprintf(&b, "Mismatches: %d\n", len(r.Mismatched))
	fmt.Fprintf(&b, "Missing from Language Pack: %d\n", len(r.Missing))
	fmt.Fprintf(&b, "Placeholders Ignored: %d\n", len(r.Placeholder))

	if len(r.Mismatched) > 0 {
		fmt.Fprintf(&b, "\n%s\nMISMATCHES (First %d):\n%s\n", sep, limit, sep)
		for _, it := range head(r.Mismatched, limit) {
			fmt.Fprintf(&b, "\nComponent: %s\n", it.Component)
			fmt.Fprintf(&b, "  Expected: %s\n", it.Expected)
			fmt.Fprintf(&b, "  Actual:   %s\n", it.Actual)
			fmt.Fprintf(&b, "  Key:      %s\n", it.Key)
			fmt.Fprintf(&b, "  Class:    %s\n", it.Class)
		}
	}

	if len(r.Missing) > 0 {
		fmt.Fprintf(&b, "\n%s\nMISSING FROM LANGUAGE PACK (First %d):\n%s\n", sep, limit, sep)
		for _, it := range head(r.Missing, limit) {
			fmt.Fprintf(&b, "  %s -> %s\n", it.Component, it.Expected)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes the full result as indented JSON.
func (r *Result) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.export())
}

// WriteYAML writes the full result as YAML.
func (r *Result) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.export()); err != nil {
		return err
	}
	return enc.Close()
}

// export replaces nil partitions so encoders emit empty lists.
func (r *Result) export() *Result {
	out := *r
	for _, p := range []*[]Item{&out.Correct, &out.Mismatched, &out.Missing, &out.Placeholder} {
		if *p == nil {
			*p = []Item{}
		}
	}
	return &out
}

func head(items []Item, n int) []Item {
	if len(items) > n {
		return items[:n]
	}
	return items
}
