// Package errors provides shared formatting for all four of the
// compiler's fatal error kinds (§7): LexError, ParseError, TypeError,
// and EmitError. Every kind renders through CompilerError so the driver
// presents one consistent diagnostic shape regardless of which stage
// raised it.
package errors

import (
	"fmt"
	"strings"
)

// Kind classifies which pipeline stage raised the error.
type Kind string

const (
	Lex   Kind = "LexError"
	Parse Kind = "ParseError"
	Type  Kind = "TypeError"
	Emit  Kind = "EmitError"
)

// CompilerError is one fatal diagnostic with source position and
// context, formatted with a line-number gutter and a caret.
type CompilerError struct {
	Kind    Kind
	Message string
	Line    int
	Source  string
	File    string
}

func New(kind Kind, line int, message, source, file string) *CompilerError {
	return &CompilerError{Kind: kind, Message: message, Line: line, Source: source, File: file}
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error with its source line and a caret under it.
// When color is true, the header and caret are wrapped in ANSI red.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	header := fmt.Sprintf("%s", e.Kind)
	if e.File != "" {
		header = fmt.Sprintf("%s in %s:%d", e.Kind, e.File, e.Line)
	} else if e.Line > 0 {
		header = fmt.Sprintf("%s at line %d", e.Kind, e.Line)
	}
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString(header)
	if color {
		sb.WriteString("\033[0m")
	}
	sb.WriteString("\n")

	if line := sourceLine(e.Source, e.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", e.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(gutter)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// FormatAll renders a batch of errors, one per blank-line-separated
// block, in the order they appear in errs.
func FormatAll(errs []*CompilerError, color bool) string {
	var sb strings.Builder
	for i, e := range errs {
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
