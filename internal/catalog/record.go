package catalog

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/backmassage/locremix/internal/errors"
	"github.com/backmassage/locremix/internal/naming"
)

const (
	elemAttachDef    = "AttachDef"
	elemLocalization = "Localization"
)

// ParseRecord reads one record and extracts its Component. The first
// AttachDef at any depth is used; its Localization must be a direct child.
// Decoding stops once that AttachDef is closed.
func ParseRecord(path string, r io.Reader) (Component, *Rejection) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var (
		attach  map[string]string
		loc     map[string]string
		depth   int
		attachD = -1
	)

scan:
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Component{}, reject(path, ReasonMalformed, err.Error())
		}
		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case attachD < 0 && el.Name.Local == elemAttachDef:
				attachD = depth
				attach = attrMap(el.Attr)
			case attachD >= 0 && loc == nil && depth == attachD+1 && el.Name.Local == elemLocalization:
				loc = attrMap(el.Attr)
			}
		case xml.EndElement:
			if depth == attachD {
				break scan
			}
			depth--
		}
	}

	if attach == nil {
		return Component{}, reject(path, ReasonNoAttachDef, "")
	}
	kind, ok := ParseKind(attach["Type"])
	if !ok {
		return Component{}, reject(path, ReasonUnknownKind, attach["Type"])
	}
	sizeStr, hasSize := attach["Size"]
	if !hasSize || sizeStr == "" {
		return Component{}, reject(path, ReasonMissingSize, "")
	}
	grade, hasGrade := attach["Grade"]
	if !hasGrade || grade == "" {
		return Component{}, reject(path, ReasonMissingGrade, "")
	}
	size, err := strconv.Atoi(strings.TrimSpace(sizeStr))
	if err != nil || size <= 0 {
		return Component{}, reject(path, ReasonBadSize, sizeStr)
	}
	if loc == nil {
		return Component{}, reject(path, ReasonNoLocalization, "")
	}
	name := loc["Name"]
	if !strings.HasPrefix(name, TokenSigil) || StripSigil(name) == "" {
		return Component{}, reject(path, ReasonBadNameToken, name)
	}

	return Component{
		Path:             path,
		RawName:          name,
		NameToken:        StripSigil(name),
		DescriptionToken: StripSigil(loc["Description"]),
		Size:             size,
		Grade:            naming.NormalizeGrade(grade),
		Kind:             kind,
	}, nil
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if _, dup := m[a.Name.Local]; !dup {
			m[a.Name.Local] = a.Value
		}
	}
	return m
}

// charsetReader lets records declare a non-UTF-8 encoding in their XML header.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, errors.Newf("unsupported charset %q", charset)
	}
	return enc.NewDecoder().Reader(input), nil
}
