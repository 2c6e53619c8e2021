package kvs

import (
	"strings"
)

// Line is one physical line. Text excludes the terminator, EOL holds it
// ("\n", "\r\n" or "" on an unterminated final line).
type Line struct {
	Text string
	EOL  string

	key string
	eq  int
}

// Key returns the line's key, or "" for comments, blanks and other non-data lines.
func (l Line) Key() string { return l.key }

// IsData reports whether the line carries a key=value pair.
func (l Line) IsData() bool { return l.eq >= 0 }

// Value returns the raw value portion of a data line.
func (l Line) Value() string {
	if l.eq < 0 {
		return ""
	}
	return l.Text[l.eq+1:]
}

// Document is the line-preserving form of a localization file.
type Document struct {
	Encoding Encoding

	lines  []Line
	index  map[string]int
	folded map[string]string
}

// ParseDocument splits text into lines, keeping every terminator.
func ParseDocument(text string) *Document {
	d := &Document{
		Encoding: Encoding{Name: EncUTF8},
		index:    make(map[string]int),
		folded:   make(map[string]string),
	}
	for _, ln := range splitLines(text) {
		d.push(ln)
	}
	return d
}

func (d *Document) push(ln Line) {
	ln.eq = dataEq(ln.Text)
	if ln.eq >= 0 {
		ln.key = strings.TrimSpace(ln.Text[:ln.eq])
		if _, seen := d.index[ln.key]; !seen {
			fk := strings.ToLower(ln.key)
			if _, taken := d.folded[fk]; !taken {
				d.folded[fk] = ln.key
			}
		}
		// Later occurrences win, matching Store semantics.
		d.index[ln.key] = len(d.lines)
	}
	d.lines = append(d.lines, ln)
}

// Lines returns a copy of the document's lines.
func (d *Document) Lines() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// Len returns the number of physical lines.
func (d *Document) Len() int { return len(d.lines) }

// Line returns line i.
func (d *Document) Line(i int) Line { return d.lines[i] }

// Index returns the line index holding key's effective value.
func (d *Document) Index(key string) (int, bool) {
	i, ok := d.index[key]
	return i, ok
}

// IndexFold resolves key exactly, then case-insensitively.
func (d *Document) IndexFold(key string) (int, bool) {
	if i, ok := d.index[key]; ok {
		return i, true
	}
	stored, ok := d.folded[strings.ToLower(key)]
	if !ok {
		return 0, false
	}
	return d.index[stored], true
}

// SetValue replaces the value portion of data line i. Key text, the '='
// and the terminator are kept.
func (d *Document) SetValue(i int, value string) {
	ln := &d.lines[i]
	if ln.eq < 0 {
		return
	}
	ln.Text = ln.Text[:ln.eq+1] + value
}

// Append adds a key=value line at the end, terminating the previous final
// line first when needed. The terminator style follows the document's first line.
func (d *Document) Append(key, value string) {
	eol := d.eolStyle()
	if n := len(d.lines); n > 0 && d.lines[n-1].EOL == "" {
		d.lines[n-1].EOL = eol
	}
	d.push(Line{Text: key + "=" + value, EOL: eol})
}

func (d *Document) eolStyle() string {
	for _, ln := range d.lines {
		if ln.EOL != "" {
			return ln.EOL
		}
	}
	return "\n"
}

// Store returns the key/value view of the document.
func (d *Document) Store() *Store {
	s := NewStore()
	for _, ln := range d.lines {
		if ln.eq >= 0 {
			s.Set(ln.key, ln.Value())
		}
	}
	return s
}

// String re-joins all lines with their original terminators.
func (d *Document) String() string {
	var b strings.Builder
	for _, ln := range d.lines {
		b.WriteString(ln.Text)
		b.WriteString(ln.EOL)
	}
	return b.String()
}

// Bytes encodes the document in its recorded encoding.
func (d *Document) Bytes() ([]byte, error) {
	return Encode(d.String(), d.Encoding)
}

func splitLines(text string) []Line {
	var out []Line
	for len(text) > 0 {
		nl := strings.IndexByte(text, '\n')
		if nl < 0 {
			out = append(out, Line{Text: text, eq: -1})
			break
		}
		body, eol := text[:nl], "\n"
		if strings.HasSuffix(body, "\r") {
			body, eol = body[:len(body)-1], "\r\n"
		}
		out = append(out, Line{Text: body, EOL: eol, eq: -1})
		text = text[nl+1:]
	}
	return out
}
