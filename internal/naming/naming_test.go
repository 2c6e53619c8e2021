package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		desc string
		want string
	}{
		{"plain", "Class: Military", "Military"},
		{"no space", "Class:Stealth", "Stealth"},
		{"upper token", "Item Type: Shield\nClass: INDUSTRIAL\nSize: 2", "Industrial"},
		{"lower marker", "class: civilian", "Civilian"},
		{"first wins", "Class: Competition ... Class: Military", "Competition"},
		{"underscore word", "Class: Bespoke_Line", "Bespoke_line"},
		{"non-ascii letters", "Class: MILITÄR", "Militär"},
		{"stops at punctuation", "Class: Stealth-Mk2", "Stealth"},
		{"no marker", "A sturdy shield generator.", ClassUnknown},
		{"empty", "", ClassUnknown},
		{"marker without token", "Class:   ", ClassUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.desc))
		})
	}
}

func TestCodeTable(t *testing.T) {
	def := NewCodeTable(nil, "")
	fromConfig := NewCodeTable(map[string]string{"military": "X", "stealth": "S"}, "Z")

	cases := []struct {
		name  string
		table *CodeTable
		class string
		size  int
		grade string
		want  Code
	}{
		{"military", def, ClassMilitary, 3, "B", "M3B"},
		{"civilian", def, ClassCivilian, 1, "A", "C1A"},
		{"industrial", def, ClassIndustrial, 2, "C", "I2C"},
		{"stealth", def, ClassStealth, 4, "D", "S4D"},
		{"competition", def, ClassCompetition, 1, "B", "R1B"},
		{"unknown falls back", def, ClassUnknown, 2, "A", "C2A"},
		{"two digit size", def, ClassMilitary, 10, "A", "M10A"},
		{"case-insensitive keys", fromConfig, ClassMilitary, 1, "A", "X1A"},
		{"custom fallback", fromConfig, ClassCivilian, 1, "A", "Z1A"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.table.Derive(tc.class, tc.size, tc.grade))
		})
	}
}

func TestNormalizeGrade(t *testing.T) {
	cases := map[string]string{
		"1": "A",
		"2": "B",
		"3": "C",
		"4": "D",
		"A": "A",
		"D": "D",
		// Out-of-range values pass through unchanged.
		"5":  "5",
		"0":  "0",
		"E":  "E",
		"b":  "b",
		"":   "",
		"12": "12",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeGrade(in), "grade %q", in)
	}
}

func TestSplitPrefix(t *testing.T) {
	cases := []struct {
		value      string
		wantPrefix string
		wantBase   string
		wantOK     bool
	}{
		{"C1A PowerBolt", "C1A", "PowerBolt", true},
		{"  M3B   Old Name  ", "M3B", "Old Name", true},
		{"M10A Big Shield", "M10A", "Big Shield", true},
		{"M3B", "M3B", "", true},
		{"PowerBolt", "", "PowerBolt", false},
		{"c1a lower", "", "c1a lower", false},
		{"C1APowerBolt", "", "C1APowerBolt", false},
		{"", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			p, b, ok := SplitPrefix(tc.value)
			assert.Equal(t, tc.wantPrefix, p)
			assert.Equal(t, tc.wantBase, b)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestRename(t *testing.T) {
	assert.Equal(t, "M3B OldName", Rename("M3B", "C3B OldName"))
	assert.Equal(t, "M3B OldName", Rename("M3B", "OldName"))
	assert.Equal(t, "M3B OldName", Rename("M3B", "M3B OldName"))
	assert.Equal(t, "M3B", Rename("M3B", "C1A"))
	assert.Equal(t, "M3B", Rename("M3B", ""))
}
