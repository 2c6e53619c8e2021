package naming

import (
	"regexp"
	"strings"
)

// rePrefix matches an existing code prefix followed by the base name. The
// size part accepts any number of digits; a bare code has an empty base.
var rePrefix = regexp.MustCompile(`^([A-Z][0-9]+[A-Z])(?:\s+(.*))?$`)

// SplitPrefix splits value into an existing code prefix and the base name.
// Without a prefix the whole trimmed value is the base and ok is false.
func SplitPrefix(value string) (prefix, base string, ok bool) {
	v := strings.TrimSpace(value)
	m := rePrefix.FindStringSubmatch(v)
	if m == nil {
		return "", v, false
	}
	return m[1], m[2], true
}

// Rename returns the value carrying code in front of its base name.
func Rename(code Code, value string) string {
	_, base, _ := SplitPrefix(value)
	if base == "" {
		return string(code)
	}
	return string(code) + " " + base
}
