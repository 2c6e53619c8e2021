package display

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/locremix/internal/term"
)

// InfoLogger is the logging surface Progress falls back to.
type InfoLogger interface {
	Info(string, ...interface{})
}

// Progress reports scan progress as a spinner bar on a terminal, or as
// periodic log lines otherwise.
type Progress struct {
	bar *progressbar.ProgressBar
	log InfoLogger
}

// NewProgress returns a bar on stderr when enabled and stderr is a TTY.
func NewProgress(enabled bool, description string, log InfoLogger) *Progress {
	if enabled && term.IsTerminal(os.Stderr) {
		return newBar(os.Stderr, description)
	}
	return &Progress{log: log}
}

func newBar(w io.Writer, description string) *Progress {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionEnableColorCodes(term.Enabled()),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
	)
	return &Progress{bar: bar}
}

// Update records scanned files and components found so far.
func (p *Progress) Update(scanned, found int) {
	if p.bar != nil {
		p.bar.Describe(fmt.Sprintf("Scanning (%d found)", found))
		_ = p.bar.Set(scanned)
		return
	}
	if p.log != nil {
		p.log.Info("  Processed %d XML files, found %d components so far...", scanned, found)
	}
}

// Finish completes the bar. It is a no-op in log mode.
func (p *Progress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
