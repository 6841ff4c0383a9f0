// Package logger provides the process-wide diagnostic log for pdfindex.
//
// Debug, Info and Section lines are written only in verbose mode (the
// --verbose flag) so users can follow migrations, cascades and imports.
// Warnings are always written: they report data that was skipped or a
// pointer that was cleared.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
)

var prefixes = map[level]string{
	levelDebug: "[DEBUG] ",
	levelInfo:  "[INFO] ",
	levelWarn:  "[WARN] ",
}

var (
	mu      sync.Mutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetOutput redirects the log. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

func logf(l level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < levelWarn && !verbose {
		return
	}
	fmt.Fprintf(output, prefixes[l]+format+"\n", args...)
}

// Debug logs a detail line in verbose mode.
func Debug(format string, args ...any) {
	logf(levelDebug, format, args...)
}

// Info logs a progress line in verbose mode.
func Info(format string, args ...any) {
	logf(levelInfo, format, args...)
}

// Warn logs a warning in every mode.
func Warn(format string, args ...any) {
	logf(levelWarn, format, args...)
}

// Section starts a named block of verbose output.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Timed logs the start of an operation and returns a function that logs
// its duration. Use as: defer logger.Timed("import")().
func Timed(name string) func() {
	Debug("%s: started", name)
	start := time.Now()
	return func() {
		Debug("%s: finished in %s", name, time.Since(start).Round(time.Millisecond))
	}
}
