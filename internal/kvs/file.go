package kvs

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/backmassage/locremix/internal/errors"
	"github.com/backmassage/locremix/internal/fsutil"
)

// Load reads and decodes a localization file into a Store.
func Load(path string, encodings []string) (*Store, error) {
	doc, err := LoadDocument(path, encodings)
	if err != nil {
		return nil, err
	}
	return doc.Store(), nil
}

// LoadDocument reads and decodes a localization file, recording its encoding.
func LoadDocument(path string, encodings []string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrInputNotFound, "%s", path),
				"check the localization path in the config or on the command line",
			)
		}
		return nil, errors.Wrapf(err, "read %s", path)
	}
	text, enc, err := Decode(data, encodings)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	doc := ParseDocument(text)
	doc.Encoding = enc
	return doc, nil
}

// WriteFile atomically replaces path with the encoded document.
func (d *Document) WriteFile(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0o644)
}

// WriteSorted writes key=value lines for every entry in byte order of key.
func WriteSorted(w io.Writer, s *Store) error {
	bw := bufio.NewWriter(w)
	for _, k := range s.SortedKeys() {
		v, _ := s.Raw(k)
		if _, err := bw.WriteString(k + "=" + v + "\n"); err != nil {
			return errors.Wrap(err, "write entry")
		}
	}
	return bw.Flush()
}

// SaveSorted writes s sorted to path in enc, atomically.
func SaveSorted(path string, s *Store, enc Encoding) error {
	var buf strings.Builder
	if err := WriteSorted(&buf, s); err != nil {
		return err
	}
	data, err := Encode(buf.String(), enc)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0o644)
}
