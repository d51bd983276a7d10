package codegen

import (
	"fmt"
	"strings"
)

// Sink is the assembly text stream code generation writes to. It tracks
// which section (.text or .data) is currently open so callers can
// freely interleave string-literal emission (which switches to .data
// and back) with instruction emission, without manually re-issuing
// section directives on every line.
type Sink struct {
	out        strings.Builder
	inData     bool
	sectioned  bool
}

// NewSink returns an empty assembly sink with no section directive
// emitted yet; the first Text or Data call emits one.
func NewSink() *Sink {
	return &Sink{}
}

// Text switches emission to the .text section if not already there.
func (s *Sink) Text() {
	if s.sectioned && !s.inData {
		return
	}
	s.sectioned = true
	s.inData = false
	s.out.WriteString(".text\n")
}

// Data switches emission to the .data section if not already there.
func (s *Sink) Data() {
	if s.sectioned && s.inData {
		return
	}
	s.sectioned = true
	s.inData = true
	s.out.WriteString(".data\n")
}

// Directive emits a bare assembler directive line, e.g. ".align 2".
func (s *Sink) Directive(d string) {
	s.out.WriteString(d)
	s.out.WriteString("\n")
}

// Label emits a label definition, e.g. "_f:".
func (s *Sink) Label(name string) {
	fmt.Fprintf(&s.out, "%s:\n", name)
}

// Instr emits a single instruction with its operands, indented to match
// a typical SPIM listing.
func (s *Sink) Instr(op string, operands ...string) {
	if len(operands) == 0 {
		fmt.Fprintf(&s.out, "\t%s\n", op)
		return
	}
	fmt.Fprintf(&s.out, "\t%s %s\n", op, strings.Join(operands, ", "))
}

// Comment emits a standalone comment line.
func (s *Sink) Comment(format string, args ...any) {
	fmt.Fprintf(&s.out, "\t# %s\n", fmt.Sprintf(format, args...))
}

// Blank emits an empty line, used to separate globals and functions.
func (s *Sink) Blank() {
	s.out.WriteString("\n")
}

// String returns the accumulated assembly text.
func (s *Sink) String() string {
	return s.out.String()
}
