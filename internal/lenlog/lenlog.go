// Package lenlog is the compiler's diagnostic logger: a thin wrapper
// around stderr writes, gated by a verbose flag.
//
// The pack's compiler-shaped repos never reach for a structured-logging
// library (they write "if verbose { fmt.Fprintf(os.Stderr, ...) }"
// directly, e.g. cmd/dwscript/cmd/run.go's `-v` handling) so this
// package follows that idiom rather than introducing one.
package lenlog

import (
	"fmt"
	"io"
	"os"
)

// Logger writes verbose diagnostic notes to an output stream (stderr by
// default) only when Verbose is enabled.
type Logger struct {
	Out     io.Writer
	Verbose bool
}

// New returns a Logger writing to os.Stderr.
func New(verbose bool) *Logger {
	return &Logger{Out: os.Stderr, Verbose: verbose}
}

// Notef writes a verbose-only diagnostic note.
func (l *Logger) Notef(format string, args ...any) {
	if l == nil || !l.Verbose {
		return
	}
	fmt.Fprintf(l.Out, "note: "+format+"\n", args...)
}

// Stage announces a pipeline stage has started, when verbose.
func (l *Logger) Stage(name string) {
	l.Notef("stage: %s", name)
}
