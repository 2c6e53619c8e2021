// Package layout locates the version and channel folders of a language pack
// or game install tree:
//
//	<root>/<version>/<channel>/data/Localization/<language>/global.ini
package layout

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/backmassage/locremix/internal/errors"
)

// DefaultChannels is the channel preference order.
var DefaultChannels = []string{"LIVE", "PTU"}

const (
	DefaultLanguage  = "english"
	LocalizationName = "global.ini"
)

// Version is a version-named folder.
type Version struct {
	Version *semver.Version
	Dir     string
}

// Versions lists subdirectories of root whose names parse as versions,
// lowest first.
func Versions(root string) ([]Version, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrInputNotFound, "%s", root)
		}
		return nil, errors.Wrapf(err, "list %s", root)
	}
	var out []Version
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := semver.NewVersion(e.Name())
		if err != nil {
			continue
		}
		out = append(out, Version{Version: v, Dir: filepath.Join(root, e.Name())})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version.LessThan(out[j].Version) })
	return out, nil
}

// LatestVersion returns the directory of the highest version under root.
func LatestVersion(root string) (string, error) {
	return LatestMatching(root, "")
}

// LatestMatching returns the highest version under root satisfying
// constraint (e.g. "< 4.5"). An empty constraint accepts every version.
func LatestMatching(root, constraint string) (string, error) {
	var c *semver.Constraints
	if constraint != "" {
		var err error
		if c, err = semver.NewConstraint(constraint); err != nil {
			return "", errors.Wrapf(err, "version constraint %q", constraint)
		}
	}
	versions, err := Versions(root)
	if err != nil {
		return "", err
	}
	for i := len(versions) - 1; i >= 0; i-- {
		if c == nil || c.Check(versions[i].Version) {
			return versions[i].Dir, nil
		}
	}
	return "", errors.WithHintf(
		errors.Wrapf(errors.ErrNoVersion, "%s", root),
		"expected folders named like 4.4.0 under %s", root,
	)
}

// ResolveChannel returns the first existing channel folder of preferred
// (DefaultChannels when empty) inside versionDir.
func ResolveChannel(versionDir string, preferred []string) (string, error) {
	if len(preferred) == 0 {
		preferred = DefaultChannels
	}
	for _, ch := range preferred {
		dir := filepath.Join(versionDir, ch)
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return dir, nil
		}
	}
	return "", errors.Wrapf(errors.ErrNoChannel, "%s (tried %v)", versionDir, preferred)
}

// LocalizationFile returns the localization file path inside a channel or
// install directory.
func LocalizationFile(channelDir, language string) string {
	if language == "" {
		language = DefaultLanguage
	}
	return filepath.Join(channelDir, "data", "Localization", language, LocalizationName)
}

// Target is a fully resolved pack location.
type Target struct {
	Version      string
	Channel      string
	Localization string
}

// Resolve picks the latest matching version under root, then its channel.
func Resolve(root, constraint string, channels []string, language string) (Target, error) {
	vdir, err := LatestMatching(root, constraint)
	if err != nil {
		return Target{}, err
	}
	cdir, err := ResolveChannel(vdir, channels)
	if err != nil {
		return Target{}, err
	}
	return Target{
		Version:      vdir,
		Channel:      cdir,
		Localization: LocalizationFile(cdir, language),
	}, nil
}
