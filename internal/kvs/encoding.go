package kvs

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/backmassage/locremix/internal/errors"
)

// DefaultEncodings is the decode order used when none is configured.
var DefaultEncodings = []string{"utf-8", "utf-16", "latin-1"}

// Canonical encoding names.
const (
	EncUTF8        = "utf-8"
	EncUTF16       = "utf-16"
	EncUTF16LE     = "utf-16le"
	EncUTF16BE     = "utf-16be"
	EncLatin1      = "latin-1"
	EncWindows1252 = "windows-1252"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Encoding records how a file was decoded so a rewrite can re-encode it
// identically. Name is always a concrete canonical name (never bare "utf-16").
type Encoding struct {
	Name string
	BOM  bool
}

// UTF8BOM is the encoding used for freshly generated files.
var UTF8BOM = Encoding{Name: EncUTF8, BOM: true}

// CanonicalEncoding maps an accepted alias to its canonical name. The second
// result is false for unsupported names.
func CanonicalEncoding(name string) (string, bool) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	switch n {
	case "utf-8", "utf8", "utf-8-sig":
		return EncUTF8, true
	case "utf-16", "utf16":
		return EncUTF16, true
	case "utf-16le", "utf16le":
		return EncUTF16LE, true
	case "utf-16be", "utf16be":
		return EncUTF16BE, true
	case "latin-1", "latin1", "iso-8859-1", "iso8859-1":
		return EncLatin1, true
	case "windows-1252", "cp1252":
		return EncWindows1252, true
	}
	return "", false
}

// Decode converts raw file bytes to text, trying each encoding in order. A
// leading byte-order mark is stripped. ErrUndecodable is returned only after
// every encoding failed.
func Decode(data []byte, encodings []string) (string, Encoding, error) {
	if len(encodings) == 0 {
		encodings = DefaultEncodings
	}
	tried := make([]string, 0, len(encodings))
	for _, name := range encodings {
		canon, ok := CanonicalEncoding(name)
		if !ok {
			return "", Encoding{}, errors.Newf("unsupported encoding %q", name)
		}
		text, enc, ok := decodeAs(data, canon)
		if ok {
			return text, enc, nil
		}
		tried = append(tried, canon)
	}
	return "", Encoding{}, errors.WithHint(
		errors.Wrapf(errors.ErrUndecodable, "tried %s", strings.Join(tried, ", ")),
		"add the file's encoding to the encodings list in the config",
	)
}

func decodeAs(data []byte, canon string) (string, Encoding, bool) {
	switch canon {
	case EncUTF8:
		body, bom := trimPrefix(data, bomUTF8)
		if !utf8.Valid(body) {
			return "", Encoding{}, false
		}
		return string(body), Encoding{Name: EncUTF8, BOM: bom}, true

	case EncUTF16:
		switch {
		case bytes.HasPrefix(data, bomUTF16LE):
			return decodeWith(data[2:], utf16(unicode.LittleEndian), Encoding{Name: EncUTF16LE, BOM: true})
		case bytes.HasPrefix(data, bomUTF16BE):
			return decodeWith(data[2:], utf16(unicode.BigEndian), Encoding{Name: EncUTF16BE, BOM: true})
		}
		return "", Encoding{}, false

	case EncUTF16LE:
		body, bom := trimPrefix(data, bomUTF16LE)
		return decodeWith(body, utf16(unicode.LittleEndian), Encoding{Name: EncUTF16LE, BOM: bom})

	case EncUTF16BE:
		body, bom := trimPrefix(data, bomUTF16BE)
		return decodeWith(body, utf16(unicode.BigEndian), Encoding{Name: EncUTF16BE, BOM: bom})

	case EncLatin1:
		body, bom := trimPrefix(data, bomUTF8)
		return decodeWith(body, charmap.ISO8859_1, Encoding{Name: EncLatin1, BOM: bom})

	case EncWindows1252:
		body, bom := trimPrefix(data, bomUTF8)
		return decodeWith(body, charmap.Windows1252, Encoding{Name: EncWindows1252, BOM: bom})
	}
	return "", Encoding{}, false
}

// Encode converts text back to bytes in enc, writing the BOM when enc.BOM is set.
func Encode(text string, enc Encoding) ([]byte, error) {
	var (
		e   encoding.Encoding
		bom []byte
	)
	switch enc.Name {
	case EncUTF8, "":
		if enc.BOM {
			return append(append([]byte{}, bomUTF8...), text...), nil
		}
		return []byte(text), nil
	case EncUTF16LE:
		e, bom = utf16(unicode.LittleEndian), bomUTF16LE
	case EncUTF16BE:
		e, bom = utf16(unicode.BigEndian), bomUTF16BE
	case EncLatin1:
		e, bom = charmap.ISO8859_1, bomUTF8
	case EncWindows1252:
		e, bom = charmap.Windows1252, bomUTF8
	default:
		return nil, errors.Newf("cannot encode as %q", enc.Name)
	}

	body, err := e.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, errors.Wrapf(err, "encode as %s", enc.Name)
	}
	if !enc.BOM {
		return body, nil
	}
	return append(append([]byte{}, bom...), body...), nil
}

func utf16(order unicode.Endianness) encoding.Encoding {
	return unicode.UTF16(order, unicode.IgnoreBOM)
}

func decodeWith(body []byte, e encoding.Encoding, enc Encoding) (string, Encoding, bool) {
	out, err := e.NewDecoder().Bytes(body)
	if err != nil {
		return "", Encoding{}, false
	}
	return string(out), enc, true
}

func trimPrefix(data, prefix []byte) ([]byte, bool) {
	if bytes.HasPrefix(data, prefix) {
		return data[len(prefix):], true
	}
	return data, false
}
