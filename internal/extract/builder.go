package extract

import (
	"path/filepath"
	"time"
)

// Default per-tool timeouts.
const (
	DefaultUnp4kTimeout   = 5 * time.Minute
	DefaultUnforgeTimeout = 10 * time.Minute
)

// Command is one external tool invocation.
type Command struct {
	Args    []string
	Dir     string
	Timeout time.Duration
}

// Name returns the tool's base name for log messages.
func (c Command) Name() string {
	if len(c.Args) == 0 {
		return ""
	}
	return filepath.Base(c.Args[0])
}

// Unp4kCommand extracts entries matching pattern from p4k into outDir.
func Unp4kCommand(tool, p4k, pattern, outDir string, timeout time.Duration) Command {
	if timeout <= 0 {
		timeout = DefaultUnp4kTimeout
	}
	return Command{
		Args:    []string{tool, p4k, pattern},
		Dir:     outDir,
		Timeout: timeout,
	}
}

// UnforgeCommand converts dcb into an XML tree next to it.
func UnforgeCommand(tool, dcb string, timeout time.Duration) Command {
	if timeout <= 0 {
		timeout = DefaultUnforgeTimeout
	}
	return Command{
		Args:    []string{tool, dcb},
		Dir:     filepath.Dir(dcb),
		Timeout: timeout,
	}
}
