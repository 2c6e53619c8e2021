package extract

import (
	"os"
	"os/exec"

	"github.com/backmassage/locremix/internal/errors"
)

// Default tool names, resolved on PATH.
const (
	DefaultUnp4k   = "unp4k"
	DefaultUnforge = "unforge"
)

// Tools names the two extraction binaries (a path or a PATH lookup name).
type Tools struct {
	Unp4k   string
	Unforge string
}

// DefaultTools returns PATH lookups for both binaries.
func DefaultTools() Tools {
	return Tools{Unp4k: DefaultUnp4k, Unforge: DefaultUnforge}
}

// Resolve returns the executable path for name.
func Resolve(name string) (string, error) {
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return name, nil
	}
	p, err := exec.LookPath(name)
	if err != nil {
		return "", errors.WithHintf(
			errors.Wrapf(errors.ErrToolNotFound, "%s", name),
			"install %s or set extract.%s in the config", name, name,
		)
	}
	return p, nil
}

// CheckTools verifies both binaries can be run, returning ErrToolNotFound
// for the first missing one.
func CheckTools(t Tools) error {
	for _, name := range []string{t.Unp4k, t.Unforge} {
		if _, err := Resolve(name); err != nil {
			return err
		}
	}
	return nil
}
