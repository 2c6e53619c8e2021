package pipeline

import (
	"os"

	"github.com/backmassage/locremix/internal/errors"
	"github.com/backmassage/locremix/internal/fsutil"
	"github.com/backmassage/locremix/internal/layout"
)

// Deploy copies src into installDir's localization folder for language and
// returns the destination. installDir must already exist.
func Deploy(src, installDir, language string) (string, error) {
	fi, err := os.Stat(installDir)
	if err != nil || !fi.IsDir() {
		return "", errors.WithHint(
			errors.Wrapf(errors.ErrInputNotFound, "install directory %s", installDir),
			"set deploy.install_dir to the game's LIVE or PTU folder",
		)
	}
	dst := layout.LocalizationFile(installDir, language)
	if err := fsutil.CopyFile(src, dst); err != nil {
		return "", errors.Wrap(err, "deploy")
	}
	return dst, nil
}
