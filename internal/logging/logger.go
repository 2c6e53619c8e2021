// Package logging provides the leveled console logger used by every command,
// with an optional JSON-lines file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/locremix/internal/config"
	"github.com/backmassage/locremix/internal/errors"
	"github.com/backmassage/locremix/internal/term"
)

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	verbose bool

	file *os.File
	sink *zap.Logger
}

// NewLogger configures colors from cfg and optionally opens the JSON log
// file. Call Close() when done if a log file was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.Display.Color)
	l := &Logger{
		out:     color.Output,
		errOut:  color.Error,
		verbose: cfg.Display.Verbose,
	}
	if cfg.Display.LogFile != "" {
		if err := l.openSink(cfg.Display.LogFile); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// New returns a logger writing to out and errOut without a file sink.
func New(out, errOut io.Writer, verbose bool) *Logger {
	return &Logger{out: out, errOut: errOut, verbose: verbose}
}

func (l *Logger) openSink(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create log directory")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open log file")
	}
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	l.file = f
	l.sink = zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(f), zap.DebugLevel))
	return nil
}

// Verbose reports whether debug output is enabled.
func (l *Logger) Verbose() bool { return l.verbose }

// Close flushes and closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	_ = l.sink.Sync()
	err := l.file.Close()
	l.file, l.sink = nil, nil
	return err
}

func (l *Logger) line(level string, c *color.Color, zl zapcore.Level, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.out
	if level == "ERROR" {
		out = l.errOut
	}
	_, _ = io.WriteString(out, ts+" "+c.Sprint("["+level+"]")+" "+text+"\n")
	if l.sink != nil {
		if ce := l.sink.Check(zl, text); ce != nil {
			ce.Write(zap.String("level_tag", level))
		}
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", term.Blue, zap.InfoLevel, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", term.Green, zap.InfoLevel, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", term.Yellow, zap.WarnLevel, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", term.Red, zap.ErrorLevel, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.line("DEBUG", term.Cyan, zap.DebugLevel, fmt.Sprintf(format, args...))
}
