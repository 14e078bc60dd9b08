// Package ui renders compiler output for humans on a terminal.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/cakeruu/typegen/compiler/diag"
)

var (
	errorHeader = color.New(color.FgRed, color.Bold)
	errorBody   = color.New(color.FgRed)
	successText = color.New(color.FgGreen, color.Bold)
	infoText    = color.New(color.FgCyan)
)

// PrintDiagnostics writes every diagnostic for a file, column-exact,
// with a count header. Build failures must show every problem found,
// not just the first, to avoid a one-error-at-a-time fix loop.
func PrintDiagnostics(w io.Writer, file string, diags diag.List) {
	if !diags.HasErrors() {
		return
	}

	errorHeader.Fprintf(w, "✗ %s: %d error(s)\n", file, len(diags))
	for _, d := range diags {
		errorBody.Fprintf(w, "  %s\n", d.Exact())
	}
}

// PrintFatal writes a single fatal (non-accumulating) error, such as a
// cross-file resolution failure.
func PrintFatal(w io.Writer, err error) {
	errorHeader.Fprintf(w, "✗ build failed\n")
	errorBody.Fprintf(w, "  %s\n", err.Error())
}

// PrintSuccess writes the build summary
func PrintSuccess(w io.Writer, fileCount, outputCount int) {
	successText.Fprintf(w, "✓ compiled %d schema file(s), wrote %d output file(s)\n",
		fileCount, outputCount)
}

// PrintInfo writes a secondary status line
func PrintInfo(w io.Writer, format string, args ...interface{}) {
	infoText.Fprintf(w, format+"\n", args...)
}

// PrintCleaned reports stale generated files removed after a build
func PrintCleaned(w io.Writer, files []string) {
	if len(files) == 0 {
		return
	}
	infoText.Fprintf(w, "cleaned %d stale generated file(s)\n", len(files))
	for _, f := range files {
		fmt.Fprintf(w, "  - %s\n", f)
	}
}
