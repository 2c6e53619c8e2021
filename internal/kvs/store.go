// Package kvs reads and writes the localization key=value text format.
//
// Two views are provided. Store is the ordered key/value map used by the
// auditor and the merger. Document keeps every physical line so that edits
// can be written back without disturbing untouched lines.
package kvs

import (
	"sort"
	"strings"
)

// Entry is one key/value pair. Value is the raw text after the first '='.
type Entry struct {
	Key   string
	Value string
}

// Store is an ordered key/value map. A repeated key keeps its first position
// and takes the later value.
type Store struct {
	keys   []string
	values map[string]string
	folded map[string]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		values: make(map[string]string),
		folded: make(map[string]string),
	}
}

// Parse builds a Store from localization text.
func Parse(text string) *Store {
	s := NewStore()
	for _, ln := range splitLines(text) {
		if key, value, ok := parseDataLine(ln.Text); ok {
			s.Set(key, value)
		}
	}
	return s
}

// Set stores value under key.
func (s *Store) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
		fk := strings.ToLower(key)
		if _, taken := s.folded[fk]; !taken {
			s.folded[fk] = key
		}
	}
	s.values[key] = value
}

// Get returns the whitespace-trimmed value for key.
func (s *Store) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return strings.TrimSpace(v), ok
}

// Raw returns the value exactly as written.
func (s *Store) Raw(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// LookupFold resolves key exactly, then case-insensitively. It returns the
// key as stored and its trimmed value.
func (s *Store) LookupFold(key string) (string, string, bool) {
	if v, ok := s.Get(key); ok {
		return key, v, true
	}
	stored, ok := s.folded[strings.ToLower(key)]
	if !ok {
		return "", "", false
	}
	v, _ := s.Get(stored)
	return stored, v, true
}

// Len returns the number of distinct keys.
func (s *Store) Len() int { return len(s.keys) }

// Keys returns keys in first-appearance order.
func (s *Store) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// SortedKeys returns keys in byte order.
func (s *Store) SortedKeys() []string {
	out := s.Keys()
	sort.Strings(out)
	return out
}

// Entries returns all pairs in first-appearance order with raw values.
func (s *Store) Entries() []Entry {
	out := make([]Entry, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, Entry{Key: k, Value: s.values[k]})
	}
	return out
}

// parseDataLine splits a line (without terminator) into key and raw value.
func parseDataLine(text string) (key, value string, ok bool) {
	eq := dataEq(text)
	if eq < 0 {
		return "", "", false
	}
	return strings.TrimSpace(text[:eq]), text[eq+1:], true
}

// dataEq returns the index of the separating '=' or -1 for non-data lines.
func dataEq(text string) int {
	trimmed := strings.TrimLeft(text, " \t")
	if strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "#") {
		return -1
	}
	eq := strings.IndexByte(text, '=')
	if eq < 0 || strings.TrimSpace(text[:eq]) == "" {
		return -1
	}
	return eq
}
