// Package resolver links the parsed files of a whole program: it binds
// import statements to the exporting file's schemas and enums, and
// attaches each schema's resolved parent across file boundaries.
//
// Resolution requires every file to be parsed first; it must not run
// incrementally. Unlike parser diagnostics, a resolution failure is a
// single fatal error that aborts the whole compilation.
package resolver

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cakeruu/typegen/compiler/parser"
)

// suggestionThreshold is the minimum similarity score an unresolved
// imported name needs before we offer a "did you mean" candidate.
const suggestionThreshold = 0.70

// Resolve links imports and inheritance across all parsed files.
// baseDir is the directory non-relative import paths resolve against;
// paths starting with "./" or "../" resolve against the importing file.
func Resolve(files []*parser.SchemaFile, baseDir string) error {
	index := make(map[string]*parser.SchemaFile, len(files))
	for _, f := range files {
		index[filepath.Clean(f.Path)] = f
	}

	for _, f := range files {
		for _, imp := range f.Imports {
			if err := resolveImport(f, imp, index, baseDir); err != nil {
				return err
			}
		}
	}

	linkInheritance(files)
	return nil
}

// resolveImport binds one import statement to its exporting file
func resolveImport(f *parser.SchemaFile, imp *parser.Import, index map[string]*parser.SchemaFile, baseDir string) error {
	var target string
	if strings.HasPrefix(imp.Path, "./") || strings.HasPrefix(imp.Path, "../") {
		target = filepath.Clean(filepath.Join(filepath.Dir(f.Path), imp.Path))
	} else {
		target = identity(imp.Path, baseDir)
	}

	exporter, ok := index[target]
	if !ok {
		return fmt.Errorf("cannot resolve import %q in %s: %s is not part of the build",
			imp.Path, f.Path, target)
	}

	for _, name := range imp.Names {
		if s := exporter.Schema(name); s != nil {
			imp.Schemas = append(imp.Schemas, s)
			continue
		}
		if e := exporter.Enum(name); e != nil {
			imp.Enums = append(imp.Enums, e)
			continue
		}
		return unresolvedNameError(name, exporter)
	}
	return nil
}

// unresolvedNameError builds the failure for a name the exporting file
// does not define, with a fuzzy-match suggestion when one clears the
// threshold.
func unresolvedNameError(name string, exporter *parser.SchemaFile) error {
	type candidate struct {
		name  string
		score float64
	}
	var candidates []candidate

	for _, s := range exporter.Schemas {
		if score := Similarity(name, s.Name); score >= suggestionThreshold {
			candidates = append(candidates, candidate{s.Name, score})
		}
	}

	if len(candidates) == 0 {
		return fmt.Errorf("schema or enum '%s' not found in %s", name, exporter.Path)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return fmt.Errorf("schema or enum '%s' not found in %s: did you mean %s?",
		name, exporter.Path, strings.Join(names, ", "))
}

// linkInheritance attaches each schema's resolved parent by searching
// the whole program. A parent may live in a file the schema's own file
// imports; when no schema of that name exists anywhere the reference
// stays empty (the per-file existence check already reported it).
func linkInheritance(files []*parser.SchemaFile) {
	for _, f := range files {
		for _, schema := range f.Schemas {
			if schema.ParentName == "" || schema.Parent != nil {
				continue
			}
			schema.Parent = findSchema(files, schema.ParentName)
		}
	}
}

// findSchema returns the first schema of the given name in the program
func findSchema(files []*parser.SchemaFile, name string) *parser.Schema {
	for _, f := range files {
		if s := f.Schema(name); s != nil {
			return s
		}
	}
	return nil
}

// identity normalizes a file path into the key used to match imports
// against parsed files.
func identity(path, baseDir string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	return filepath.Clean(path)
}
