// Package diag implements the error sink the three semantic passes report
// diagnostics to: a stream of (line, column, message) triples, with enough
// source context retained to format each one with a caret pointing at the
// offending column.
package diag

import (
	"fmt"
	"strings"
)

// Diagnostic is a single reported error.
type Diagnostic struct {
	Line    int
	Column  int
	Message string
}

// Sink is the contract every pass reports errors through. It is the only
// channel a pass has to the outside world for diagnostics; passes never
// panic or return an error value for a source-level problem.
type Sink interface {
	Error(line, col int, message string)
	FatalCount() int
}

// CollectingSink accumulates diagnostics in report order and can format
// them against the original source text for display.
type CollectingSink struct {
	Source string
	File   string
	diags  []Diagnostic
}

// NewCollectingSink creates a sink that formats diagnostics against src.
// file is used only in the formatted header and may be empty.
func NewCollectingSink(src, file string) *CollectingSink {
	return &CollectingSink{Source: src, File: file}
}

func (s *CollectingSink) Error(line, col int, message string) {
	s.diags = append(s.diags, Diagnostic{Line: line, Column: col, Message: message})
}

// FatalCount is the number of diagnostics reported so far. The driver
// decides whether to proceed to the next pass by checking this; the core
// passes themselves never abort on their own.
func (s *CollectingSink) FatalCount() int { return len(s.diags) }

// Diagnostics returns the diagnostics reported so far, in report order.
func (s *CollectingSink) Diagnostics() []Diagnostic { return s.diags }

// Format renders every diagnostic with a source line and a caret, in the
// style of a typical compiler's console output.
func (s *CollectingSink) Format() string {
	var out strings.Builder
	for _, d := range s.diags {
		out.WriteString(s.formatOne(d))
		out.WriteString("\n")
	}
	return out.String()
}

func (s *CollectingSink) formatOne(d Diagnostic) string {
	var out strings.Builder
	if s.File != "" {
		fmt.Fprintf(&out, "%s:%d:%d: %s\n", s.File, d.Line, d.Column, d.Message)
	} else {
		fmt.Fprintf(&out, "%d:%d: %s\n", d.Line, d.Column, d.Message)
	}

	if line := sourceLine(s.Source, d.Line); line != "" {
		fmt.Fprintf(&out, "%4d | %s\n", d.Line, line)
		out.WriteString(strings.Repeat(" ", 7+d.Column-1))
		out.WriteString("^")
	}
	return out.String()
}

func sourceLine(src string, line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}
