// Package errors provides the line-oriented diagnostic sink the
// semantic pass streams to (spec §6): err_header(line) plus an
// aggregate error type for returning every diagnostic from one run as
// a single Go error, grounded on the teacher's CompilerError/
// AnalysisError split.
package errors

import (
	"fmt"
	"strings"
)

// ErrHeader formats the line-prefix every diagnostic is given, the Go
// equivalent of the original's err_header(line) helper.
func ErrHeader(line int) string {
	return fmt.Sprintf("line %d: ", line)
}

// Sink is a line-oriented diagnostic stream. Diagnostics are appended
// in AST traversal order and never reordered or deduplicated.
type Sink struct {
	lines []string
}

// NewSink creates an empty diagnostic sink.
func NewSink() *Sink {
	return &Sink{}
}

// Reportf formats a line-prefixed diagnostic and appends it to the
// sink.
func (s *Sink) Reportf(line int, format string, args ...any) {
	s.lines = append(s.lines, ErrHeader(line)+fmt.Sprintf(format, args...))
}

// Lines returns every diagnostic reported so far, in report order.
func (s *Sink) Lines() []string {
	return s.lines
}

// Empty reports whether no diagnostics have been reported.
func (s *Sink) Empty() bool {
	return len(s.lines) == 0
}

// AnalysisError aggregates every diagnostic from one semantic-analysis
// run into a single error value.
type AnalysisError struct {
	Lines []string
}

func (e *AnalysisError) Error() string {
	if len(e.Lines) == 1 {
		return e.Lines[0]
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d semantic errors:\n", len(e.Lines))
	for _, line := range e.Lines {
		sb.WriteString("  ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
