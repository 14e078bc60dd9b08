package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cakeruu/typegen/compiler/lexer"
	"github.com/cakeruu/typegen/compiler/parser"
	"github.com/cakeruu/typegen/compiler/resolver"
)

type sourceFile struct {
	path   string
	source string
}

// compileProgram lexes, parses and resolves a set of sources for
// generation tests.
func compileProgram(t *testing.T, sources []sourceFile) []*parser.SchemaFile {
	t.Helper()
	var files []*parser.SchemaFile
	for _, s := range sources {
		lex := lexer.New(s.source, s.path)
		tokens, lexErrors := lex.ScanTokens()
		require.Empty(t, lexErrors, "lex errors in %s", s.path)

		f, diags := parser.Parse(tokens, s.path)
		require.False(t, diags.HasErrors(), "diagnostics in %s: %v", s.path, diags)
		files = append(files, f)
	}
	require.NoError(t, resolver.Resolve(files, "schemas"))
	return files
}

// findFile returns the generated file at the given path
func findFile(t *testing.T, files []File, path string) File {
	t.Helper()
	for _, f := range files {
		if f.Path == path {
			return f
		}
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	t.Fatalf("No generated file at %s, have %v", path, paths)
	return File{}
}

// markerless returns a C# backend whose project marker search never
// finds anything, so the output directory's base name becomes the root.
func markerless() *CSharp {
	return &CSharp{findMarker: func(string) (string, bool) { return "", false }}
}

// TestForTarget tests target identifier lookup
func TestForTarget(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"c#", "c#"},
		{"CSharp", "c#"},
		{"cs", "c#"},
		{"typescript", "typescript"},
		{"TS", "typescript"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			backend, err := ForTarget(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, backend.Name())
		})
	}

	_, err := ForTarget("rust")
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown target "rust"`)
}

// TestGenerateMultipleTargets tests the driver running every target
func TestGenerateMultipleTargets(t *testing.T) {
	files := compileProgram(t, []sourceFile{{"schemas/main.tgs", `
rootPath = /Test;

create enum Status<Enums>(Active);
`}})

	out, err := Generate(files, []Target{
		{Backend: markerless(), OutputRoot: "out/server"},
		{Backend: NewTypeScript(), OutputRoot: "out/web"},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	findFile(t, out, "out/server/Test/Enums/Status.cs")
	findFile(t, out, "out/web/Test/Enums/status.ts")
}

// TestGenerateIsDeterministic tests that repeated runs of the same
// program produce byte-identical output.
func TestGenerateIsDeterministic(t *testing.T) {
	sources := []sourceFile{{"schemas/main.tgs", `
rootPath = /Test;

create enum Status<Enums>(Active, Inactive);

create schema User<Entities>(
	Id: Uid;
	Status: Status;
	Meta: Map<string, Array<string>>?;
);
`}}

	targets := []Target{
		{Backend: markerless(), OutputRoot: "out/server"},
		{Backend: NewTypeScript(), OutputRoot: "out/web"},
	}

	first, err := Generate(compileProgram(t, sources), targets)
	require.NoError(t, err)
	second, err := Generate(compileProgram(t, sources), targets)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

// TestInternalErrorSurfacesTarget tests that a generator failure names
// the target it happened in.
func TestInternalErrorSurfacesTarget(t *testing.T) {
	// Bypass the parser so an invalid type reaches the generator
	file := &parser.SchemaFile{
		Path: "schemas/bad.tgs",
		Schemas: []*parser.Schema{{
			Name:    "Bad",
			OutPath: "Test",
			Properties: []*parser.Property{
				{Name: "X", Type: "Nonsense"},
			},
		}},
	}

	_, err := Generate([]*parser.SchemaFile{file}, []Target{
		{Backend: markerless(), OutputRoot: "out"},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "target c#")
	require.Contains(t, err.Error(), "internal error")
	require.Contains(t, err.Error(), "untranslatable type 'Nonsense'")
}
