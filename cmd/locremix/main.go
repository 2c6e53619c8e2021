// Command locremix audits and repairs component names in the game's
// localization file, and carries hand edits across patches.
//
// Subcommands are defined in commands.go; this file holds the bootstrap,
// signal handling and the error-to-exit-code mapping.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/locremix/internal/config"
	"github.com/backmassage/locremix/internal/errors"
	"github.com/backmassage/locremix/internal/logging"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "0.1.0"
	commit  = "unknown"
)

// Exit codes.
const (
	exitOK     = 0
	exitFatal  = 1 // fatal input, usage or write error
	exitIssues = 2 // --strict and mismatched or missing names remain
)

// errIssues is returned by commands when --strict is set and issues remain.
var errIssues = errors.New("issues remain")

// app is the state shared by all subcommands. It is filled by the root
// command's PersistentPreRunE.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *logging.Logger
	stdout  io.Writer
}

func main() {
	os.Exit(run())
}

func run() int {
	// Cancel on SIGINT/SIGTERM so extraction processes are killed and no
	// partial file is written.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{stdout: os.Stdout}
	defer a.close()

	err := newRootCmd(a).ExecuteContext(ctx)
	if err != nil && ctx.Err() != nil && a.log != nil {
		a.log.Warn("Interrupted")
	}
	return a.report(err)
}

// report prints err with its hints and maps it to an exit code. Before the
// logger exists errors go directly to stderr.
func (a *app) report(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errIssues):
		if a.log != nil {
			a.log.Warn("Strict mode: issues remain")
		}
		return exitIssues
	}

	hints := errors.GetAllHints(err)
	if a.log == nil {
		fmt.Fprintf(os.Stderr, "locremix: %v\n", err)
		for _, h := range hints {
			fmt.Fprintf(os.Stderr, "  hint: %s\n", h)
		}
		return exitFatal
	}
	a.log.Error("%v", err)
	for _, h := range hints {
		a.log.Info("  hint: %s", h)
	}
	return exitFatal
}

func (a *app) close() {
	if a.log != nil {
		_ = a.log.Close()
	}
}
