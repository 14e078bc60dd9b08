// Package diag defines the positioned diagnostics produced by the TGS
// compiler front end and their serializations.
//
// Syntactic and local semantic problems are accumulated into a List and
// surfaced together once a file has been fully parsed; they are never
// raised one at a time. Cross-file resolution failures and generator
// invariant violations are ordinary Go errors instead, since they abort
// the whole compilation.
package diag

import (
	"fmt"
	"strings"
)

// Separators for the single-line machine serialization consumed by the
// daemon loop. FieldSep joins line and message inside one diagnostic;
// RecordSep joins diagnostics. They are distinct so a consumer can split
// the list reliably.
const (
	FieldSep  = "\x1f"
	RecordSep = "\x1e"
)

// Diagnostic is one positioned parse or semantic problem.
// Line and Column are 1-based; both are 0 when the location is unknown
// (inheritance errors are reported after token positions are gone).
type Diagnostic struct {
	File    string
	Line    int
	Column  int
	Message string
}

// New creates a diagnostic at a known position
func New(file string, line, column int, message string) Diagnostic {
	return Diagnostic{File: file, Line: line, Column: column, Message: message}
}

// Error implements the error interface using the plain form
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message)
}

// Exact returns the column-exact form used by editor integrations
func (d Diagnostic) Exact() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Line, d.Column, d.Message)
}

// Machine returns the single-line machine form: line FieldSep message
func (d Diagnostic) Machine() string {
	return fmt.Sprintf("%d%s%s", d.Line, FieldSep, d.Message)
}

// List is the accumulated diagnostics for one file
type List []Diagnostic

// HasErrors returns true if there are any diagnostics
func (l List) HasErrors() bool {
	return len(l) > 0
}

// Error implements the error interface for diagnostic lists
func (l List) Error() string {
	if len(l) == 0 {
		return "no errors"
	}
	if len(l) == 1 {
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
}

// Machine serializes the whole list for a daemon-style consumer
func (l List) Machine() string {
	parts := make([]string, len(l))
	for i, d := range l {
		parts[i] = d.Machine()
	}
	return strings.Join(parts, RecordSep)
}

// Format formats all diagnostics as a human-readable report
func (l List) Format() string {
	if len(l) == 0 {
		return "No errors"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d error(s):\n\n", len(l))
	for i, d := range l {
		fmt.Fprintf(&b, "%d. %s\n", i+1, d.Error())
	}
	return b.String()
}

// Exact formats all diagnostics in the column-exact form, one per line
func (l List) Exact() string {
	parts := make([]string, len(l))
	for i, d := range l {
		parts[i] = d.Exact()
	}
	return strings.Join(parts, "\n")
}
