// Package codegen turns a fully-resolved schema graph into source files
// for one or more target languages.
//
// Each backend supplies a translation table (built-in type name to
// target spelling, optionally carrying an import/using requirement) and
// the text emission; the recursive generic type translation is shared.
// Generation requires the resolver to have completed: schemas must carry
// resolved inheritance links and imports their resolved entries.
package codegen

import (
	"fmt"
	"strings"

	"github.com/cakeruu/typegen/compiler/parser"
)

// File is one generated output: an absolute path and its full text.
// Callers are responsible for writing it to storage.
type File struct {
	Path    string
	Content string
}

// Mapping is one translation-table entry: how a type is spelled in the
// target language and, if needed, the import or using it requires.
type Mapping struct {
	Target string
	Import string
}

// Backend generates source text for one target language
type Backend interface {
	// Name is the target identifier as users configure it
	Name() string
	// Table is the immutable base translation table for built-in types
	Table() map[string]Mapping
	// Generate produces every output file for the given program
	Generate(files []*parser.SchemaFile, outputRoot string) ([]File, error)
}

// Target pairs a backend with the output directory it generates into
type Target struct {
	Backend    Backend
	OutputRoot string
}

// Generate runs every target over the resolved program
func Generate(files []*parser.SchemaFile, targets []Target) ([]File, error) {
	var out []File
	for _, t := range targets {
		generated, err := t.Backend.Generate(files, t.OutputRoot)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", t.Backend.Name(), err)
		}
		out = append(out, generated...)
	}
	return out, nil
}

// ForTarget returns the backend for a target identifier
func ForTarget(name string) (Backend, error) {
	switch strings.ToLower(name) {
	case "c#", "csharp", "cs":
		return NewCSharp(), nil
	case "typescript", "ts":
		return NewTypeScript(), nil
	}
	return nil, fmt.Errorf("unknown target %q (supported: c#, typescript)", name)
}

// InternalError signals an "impossible" condition such as an
// untranslatable type reaching the generator. It indicates a validation
// bug in an earlier phase and must never surface to a user of a correct
// build, which is why it is distinguished from ordinary diagnostics.
type InternalError struct {
	msg string
}

func internalErrorf(format string, args ...interface{}) *InternalError {
	return &InternalError{msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	return "internal error: " + e.msg
}
