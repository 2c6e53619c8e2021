package extract

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/backmassage/locremix/internal/errors"
)

// ExecResult holds the outcome of a single tool invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Runner executes a Command. Execute is the production runner.
type Runner func(ctx context.Context, c Command) ExecResult

// Execute runs c with its timeout. Stderr is captured for the error message
// and, when tee is non-nil, streamed to it as well.
func Execute(ctx context.Context, c Command, tee io.Writer) ExecResult {
	if len(c.Args) == 0 {
		return ExecResult{Err: errors.New("empty command")}
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	cmd.WaitDelay = time.Second

	var stderrBuf bytes.Buffer
	if tee != nil {
		cmd.Stdout = tee
		cmd.Stderr = io.MultiWriter(&stderrBuf, tee)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	stderr := stderrBuf.String()
	return ExecResult{Stderr: stderr, Err: describe(ctx, c, err, stderr)}
}

// describe turns a failed run into an error carrying the tool name, the
// cause and the last stderr line.
func describe(ctx context.Context, c Command, err error, stderr string) error {
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Newf("%s timed out after %s", c.Name(), c.Timeout)
	}
	if ctx.Err() != nil {
		return errors.Wrapf(ctx.Err(), "%s interrupted", c.Name())
	}
	if last := lastLine(stderr); last != "" {
		return errors.WithDetailf(errors.Wrapf(err, "%s failed: %s", c.Name(), last), "stderr:\n%s", stderr)
	}
	return errors.Wrapf(err, "%s failed", c.Name())
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
