package naming

import (
	"strconv"
	"strings"
)

// DefaultClassCode is used for classes missing from the table, including
// ClassUnknown.
const DefaultClassCode = "C"

// Code is a canonical short code such as "M3B".
type Code string

func (c Code) String() string { return string(c) }

// DefaultCodes returns the built-in class-to-letter table.
func DefaultCodes() map[string]string {
	return map[string]string{
		ClassMilitary:    "M",
		ClassCivilian:    "C",
		ClassIndustrial:  "I",
		ClassStealth:     "S",
		ClassCompetition: "R",
	}
}

// CodeTable maps class names to single-letter codes. Lookups ignore case so
// tables read from config files (which lower-case keys) still match.
type CodeTable struct {
	codes    map[string]string
	fallback string
}

// NewCodeTable builds a table from codes. An empty fallback means
// DefaultClassCode. A nil or empty map uses DefaultCodes.
func NewCodeTable(codes map[string]string, fallback string) *CodeTable {
	if len(codes) == 0 {
		codes = DefaultCodes()
	}
	if fallback == "" {
		fallback = DefaultClassCode
	}
	t := &CodeTable{codes: make(map[string]string, len(codes)), fallback: fallback}
	for class, code := range codes {
		t.codes[strings.ToLower(class)] = code
	}
	return t
}

// Lookup returns the letter for class, or the fallback.
func (t *CodeTable) Lookup(class string) string {
	if c, ok := t.codes[strings.ToLower(class)]; ok {
		return c
	}
	return t.fallback
}

// Derive joins the class letter, size and grade into a Code.
func (t *CodeTable) Derive(class string, size int, grade string) Code {
	return Code(t.Lookup(class) + strconv.Itoa(size) + grade)
}

var gradeLetters = map[string]string{
	"1": "A",
	"2": "B",
	"3": "C",
	"4": "D",
}

// NormalizeGrade maps "1".."4" to "A".."D". Every other value, letters
// included, is returned unchanged.
func NormalizeGrade(grade string) string {
	if g, ok := gradeLetters[grade]; ok {
		return g
	}
	return grade
}
