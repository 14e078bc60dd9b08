package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cakeruu/typegen/compiler/parser"
)

// maxMarkerSearchDepth bounds the upward search for a project marker
// file when deriving the root namespace.
const maxMarkerSearchDepth = 6

// csharpTable maps every built-in type to its C# spelling
var csharpTable = map[string]Mapping{
	"Uid":      {Target: "Guid", Import: "System"},
	"sbyte":    {Target: "sbyte"},
	"short":    {Target: "short"},
	"int":      {Target: "int"},
	"long":     {Target: "long"},
	"byte":     {Target: "byte"},
	"ushort":   {Target: "ushort"},
	"uint":     {Target: "uint"},
	"ulong":    {Target: "ulong"},
	"float":    {Target: "float"},
	"double":   {Target: "double"},
	"decimal":  {Target: "decimal"},
	"bool":     {Target: "bool"},
	"char":     {Target: "char"},
	"object":   {Target: "object"},
	"string":   {Target: "string"},
	"date":     {Target: "DateOnly", Import: "System"},
	"datetime": {Target: "DateTime", Import: "System"},
	"Array":    {Target: "Array"},
	"List":     {Target: "List", Import: "System.Collections.Generic"},
	"Map":      {Target: "Dictionary", Import: "System.Collections.Generic"},
	"Set":      {Target: "HashSet", Import: "System.Collections.Generic"},
	"Queue":    {Target: "Queue", Import: "System.Collections.Generic"},
}

// CSharp generates C# classes and enums. Namespaces are derived from
// output paths, rooted at the nearest .csproj above the output
// directory; cross-namespace references get automatic using directives.
type CSharp struct {
	// findMarker reports the project name declared by a marker file in
	// dir, if any. Injected so the namespace derivation is testable
	// without a real project tree.
	findMarker func(dir string) (string, bool)
}

// NewCSharp creates the C# backend with filesystem marker discovery
func NewCSharp() *CSharp {
	return &CSharp{findMarker: findCsprojMarker}
}

// findCsprojMarker looks for a *.csproj file in dir
func findCsprojMarker(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".csproj") {
			return strings.TrimSuffix(entry.Name(), ".csproj"), true
		}
	}
	return "", false
}

// Name implements Backend
func (b *CSharp) Name() string { return "c#" }

// Table implements Backend
func (b *CSharp) Table() map[string]Mapping { return csharpTable }

// Generate implements Backend
func (b *CSharp) Generate(files []*parser.SchemaFile, outputRoot string) ([]File, error) {
	root := b.rootScopeName(outputRoot)
	var out []File

	for _, f := range files {
		sc := newScope(csharpTable)
		for name, outPath := range visibleEntities(f) {
			sc.add(name, Mapping{
				Target: name,
				Import: b.namespaceFor(root, outputRoot, outPath),
			})
		}

		for _, schema := range f.Schemas {
			file, err := b.generateSchema(schema, sc, root, outputRoot)
			if err != nil {
				return nil, err
			}
			out = append(out, file)
		}
		for _, enum := range f.Enums {
			out = append(out, b.generateEnum(enum, root, outputRoot))
		}
	}
	return out, nil
}

// generateSchema emits one class declaration
func (b *CSharp) generateSchema(schema *parser.Schema, sc *scope, root, outputRoot string) (File, error) {
	ns := b.namespaceFor(root, outputRoot, schema.OutPath)

	var usings []string
	seen := make(map[string]bool)
	addUsing := func(u string) {
		// The file's own namespace needs no using; duplicates are
		// suppressed
		if u == "" || u == ns || seen[u] {
			return
		}
		seen[u] = true
		usings = append(usings, u)
	}

	var body strings.Builder
	for _, prop := range schema.Properties {
		t, imports, err := translateType(prop.Type, sc)
		if err != nil {
			return File{}, fmt.Errorf("schema %s: %w", schema.Name, err)
		}
		for _, imp := range imports {
			addUsing(imp)
		}
		if prop.Nullable {
			t += "?"
		}
		fmt.Fprintf(&body, "    public %s %s { get; set; }\n", t, prop.Name)
	}

	declaration := "public class " + schema.Name
	if schema.ParentName != "" {
		declaration += " : " + schema.ParentName
		if parent, ok := sc.lookup(schema.ParentName); ok {
			addUsing(parent.Import)
		}
	}

	var content strings.Builder
	for _, u := range usings {
		fmt.Fprintf(&content, "using %s;\n", u)
	}
	if len(usings) > 0 {
		content.WriteString("\n")
	}
	fmt.Fprintf(&content, "namespace %s;\n\n", ns)
	content.WriteString(declaration + "\n{\n")
	content.WriteString(body.String())
	content.WriteString("}\n")

	return File{
		Path:    filepath.Join(outputRoot, filepath.FromSlash(schema.OutPath), schema.Name+".cs"),
		Content: content.String(),
	}, nil
}

// generateEnum emits one enum declaration with ordinal member values
func (b *CSharp) generateEnum(enum *parser.Enum, root, outputRoot string) File {
	ns := b.namespaceFor(root, outputRoot, enum.OutPath)

	var content strings.Builder
	fmt.Fprintf(&content, "namespace %s;\n\n", ns)
	fmt.Fprintf(&content, "public enum %s\n{\n", enum.Name)
	for i, value := range enum.Values {
		suffix := ","
		if i == len(enum.Values)-1 {
			suffix = ""
		}
		fmt.Fprintf(&content, "    %s = %d%s\n", value, i, suffix)
	}
	content.WriteString("}\n")

	return File{
		Path:    filepath.Join(outputRoot, filepath.FromSlash(enum.OutPath), enum.Name+".cs"),
		Content: content.String(),
	}
}

// rootScopeName finds the name of the root scope by searching upward
// from the output directory, a bounded number of levels, for a project
// marker file; the last path segment is the fallback.
func (b *CSharp) rootScopeName(outputRoot string) string {
	dir := filepath.Clean(outputRoot)
	for i := 0; i < maxMarkerSearchDepth; i++ {
		if name, ok := b.findMarker(dir); ok {
			return name
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return filepath.Base(filepath.Clean(outputRoot))
}

// namespaceFor derives the namespace of an output path: the root scope
// name plus the full output path's segments after the one matching it,
// joined with dots. When the root name does not occur in the path the
// declared fragment is appended to the root directly.
func (b *CSharp) namespaceFor(root, outputRoot, outPath string) string {
	full := append(pathSegments(filepath.ToSlash(filepath.Clean(outputRoot))), pathSegments(outPath)...)

	for i := len(full) - 1; i >= 0; i-- {
		if full[i] == root {
			return strings.Join(full[i:], ".")
		}
	}

	parts := append([]string{root}, pathSegments(outPath)...)
	return strings.Join(parts, ".")
}

// pathSegments splits a slash path into its non-empty segments
func pathSegments(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" && seg != "." {
			segments = append(segments, seg)
		}
	}
	return segments
}

// visibleEntities maps every custom type name visible to a file (its
// own schemas and enums plus everything imported) to its output path.
func visibleEntities(f *parser.SchemaFile) map[string]string {
	entities := make(map[string]string)
	for _, s := range f.Schemas {
		entities[s.Name] = s.OutPath
	}
	for _, e := range f.Enums {
		entities[e.Name] = e.OutPath
	}
	for _, imp := range f.Imports {
		for _, s := range imp.Schemas {
			entities[s.Name] = s.OutPath
		}
		for _, e := range imp.Enums {
			entities[e.Name] = e.OutPath
		}
	}
	return entities
}
