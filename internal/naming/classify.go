package naming

import (
	"regexp"
	"strings"
)

// ClassUnknown is returned when a description carries no class marker.
const ClassUnknown = "Unknown"

// Known classes of the default code table.
const (
	ClassMilitary    = "Military"
	ClassCivilian    = "Civilian"
	ClassIndustrial  = "Industrial"
	ClassStealth     = "Stealth"
	ClassCompetition = "Competition"
)

var reClass = regexp.MustCompile(`(?i)Class:\s*([\p{L}\p{N}_]+)`)

// Classify extracts the item class from a description. The first marker wins;
// the token is capitalized ("MILITARY" and "military" both give "Military").
func Classify(description string) string {
	m := reClass.FindStringSubmatch(description)
	if m == nil {
		return ClassUnknown
	}
	return Capitalize(m[1])
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
