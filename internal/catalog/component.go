// Package catalog builds the typed component catalog from an extracted
// record tree: one XML record per file, filtered down to the attachable
// ship components whose names are audited.
package catalog

import "strings"

// Kind is the attachable component type.
type Kind string

const (
	KindCooler       Kind = "Cooler"
	KindPowerPlant   Kind = "PowerPlant"
	KindShield       Kind = "Shield"
	KindQuantumDrive Kind = "QuantumDrive"
)

// Kinds lists the accepted component types.
var Kinds = []Kind{KindCooler, KindPowerPlant, KindShield, KindQuantumDrive}

// ParseKind returns the Kind named s. Matching is exact, as written in records.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// TokenSigil prefixes localization tokens inside records.
const TokenSigil = "@"

// Component is one auditable item extracted from a record.
type Component struct {
	Path             string `json:"path" yaml:"path"`
	RawName          string `json:"raw_name" yaml:"raw_name"`
	NameToken        string `json:"name_token" yaml:"name_token"`
	DescriptionToken string `json:"description_token,omitempty" yaml:"description_token,omitempty"`
	Size             int    `json:"size" yaml:"size"`
	Grade            string `json:"grade" yaml:"grade"`
	Kind             Kind   `json:"kind" yaml:"kind"`
}

// ID identifies the component in reports.
func (c Component) ID() string { return c.RawName }

// StripSigil removes every leading sigil from a record token.
func StripSigil(token string) string {
	return strings.TrimLeft(token, TokenSigil)
}

// Reason classifies why a record produced no Component.
type Reason string

const (
	ReasonUnreadable     Reason = "unreadable"
	ReasonMalformed      Reason = "malformed"
	ReasonNoAttachDef    Reason = "no-attach-def"
	ReasonUnknownKind    Reason = "unknown-kind"
	ReasonMissingSize    Reason = "missing-size"
	ReasonBadSize        Reason = "bad-size"
	ReasonMissingGrade   Reason = "missing-grade"
	ReasonNoLocalization Reason = "no-localization"
	ReasonBadNameToken   Reason = "bad-name-token"
)

// Rejection records a skipped record. It is never an error.
type Rejection struct {
	Path   string `json:"path" yaml:"path"`
	Reason Reason `json:"reason" yaml:"reason"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

func reject(path string, reason Reason, detail string) *Rejection {
	return &Rejection{Path: path, Reason: reason, Detail: detail}
}
