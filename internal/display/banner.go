package display

import (
	"io"

	"github.com/backmassage/locremix/internal/term"
)

const banner = ` _                               _
| | ___   ___ _ __ ___ _ __ ___ (_)_  __
| |/ _ \ / __| '__/ _ \ '_ ` + "`" + ` _ \| \ \/ /
| | (_) | (__| | |  __/ | | | | | |>  <
|_|\___/ \___|_|  \___|_| |_| |_|_/_/\_\`

// PrintBanner prints the ASCII art banner; magenta when colors are enabled.
func PrintBanner(w io.Writer) {
	_, _ = term.Magenta.Fprintln(w, banner)
}
