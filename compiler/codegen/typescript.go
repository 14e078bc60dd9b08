package codegen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cakeruu/typegen/compiler/parser"
	utilstrings "github.com/cakeruu/typegen/internal/util/strings"
)

// typescriptTable maps every built-in type to its TypeScript spelling.
// No entry needs an auxiliary import; custom types get relative import
// paths computed per file instead.
var typescriptTable = map[string]Mapping{
	"Uid":      {Target: "string"},
	"sbyte":    {Target: "number"},
	"short":    {Target: "number"},
	"int":      {Target: "number"},
	"long":     {Target: "number"},
	"byte":     {Target: "number"},
	"ushort":   {Target: "number"},
	"uint":     {Target: "number"},
	"ulong":    {Target: "number"},
	"float":    {Target: "number"},
	"double":   {Target: "number"},
	"decimal":  {Target: "number"},
	"bool":     {Target: "boolean"},
	"char":     {Target: "string"},
	"object":   {Target: "any"},
	"string":   {Target: "string"},
	"date":     {Target: "Date"},
	"datetime": {Target: "Date"},
	"Array":    {Target: "Array"},
	"List":     {Target: "Array"},
	"Map":      {Target: "Map"},
	"Set":      {Target: "Set"},
	"Queue":    {Target: "Array"},
}

// TypeScript generates interfaces and string-valued enums. File names
// are the kebab-cased entity names; references to other generated files
// become relative imports with the .ts suffix stripped.
type TypeScript struct{}

// NewTypeScript creates the TypeScript backend
func NewTypeScript() *TypeScript {
	return &TypeScript{}
}

// Name implements Backend
func (b *TypeScript) Name() string { return "typescript" }

// Table implements Backend
func (b *TypeScript) Table() map[string]Mapping { return typescriptTable }

// Generate implements Backend
func (b *TypeScript) Generate(files []*parser.SchemaFile, outputRoot string) ([]File, error) {
	var out []File

	for _, f := range files {
		sc := newScope(typescriptTable)
		entityPaths := visibleEntities(f)
		for name := range entityPaths {
			sc.add(name, Mapping{Target: name})
		}

		for _, schema := range f.Schemas {
			file, err := b.generateSchema(schema, sc, entityPaths, outputRoot)
			if err != nil {
				return nil, err
			}
			out = append(out, file)
		}
		for _, enum := range f.Enums {
			out = append(out, b.generateEnum(enum, outputRoot))
		}
	}
	return out, nil
}

// generateSchema emits one interface declaration
func (b *TypeScript) generateSchema(schema *parser.Schema, sc *scope, entityPaths map[string]string, outputRoot string) (File, error) {
	selfDir := filepath.ToSlash(filepath.Join(outputRoot, filepath.FromSlash(schema.OutPath)))

	var importLines []string
	seen := make(map[string]bool)
	addImport := func(name string) {
		outPath, ok := entityPaths[name]
		if !ok {
			return
		}
		if name == schema.Name && outPath == schema.OutPath {
			return
		}
		line := fmt.Sprintf("import { %s } from \"%s\";",
			name, b.importSpecifier(selfDir, outputRoot, outPath, name))
		// Deduplicated by exact text match
		if seen[line] {
			return
		}
		seen[line] = true
		importLines = append(importLines, line)
	}

	var body strings.Builder
	for _, prop := range schema.Properties {
		t, _, err := translateType(prop.Type, sc)
		if err != nil {
			return File{}, fmt.Errorf("schema %s: %w", schema.Name, err)
		}
		for _, ref := range customRefs(prop.Type, sc) {
			addImport(ref)
		}
		marker := ""
		if prop.Nullable {
			marker = "?"
		}
		fmt.Fprintf(&body, "    %s%s: %s;\n", prop.Name, marker, t)
	}

	declaration := "export interface " + schema.Name
	if schema.ParentName != "" {
		declaration += " extends " + schema.ParentName
		addImport(schema.ParentName)
	}

	var content strings.Builder
	for _, line := range importLines {
		content.WriteString(line + "\n")
	}
	if len(importLines) > 0 {
		content.WriteString("\n")
	}
	content.WriteString(declaration + " {\n")
	content.WriteString(body.String())
	content.WriteString("}\n")

	return File{
		Path:    filepath.Join(outputRoot, filepath.FromSlash(schema.OutPath), b.fileName(schema.Name)),
		Content: content.String(),
	}, nil
}

// generateEnum emits one enum declaration with symbolic string values
func (b *TypeScript) generateEnum(enum *parser.Enum, outputRoot string) File {
	var content strings.Builder
	fmt.Fprintf(&content, "export enum %s {\n", enum.Name)
	for _, value := range enum.Values {
		fmt.Fprintf(&content, "    %s = \"%s\",\n", value, value)
	}
	content.WriteString("}\n")

	return File{
		Path:    filepath.Join(outputRoot, filepath.FromSlash(enum.OutPath), b.fileName(enum.Name)),
		Content: content.String(),
	}
}

// fileName converts an entity name to its generated file name
func (b *TypeScript) fileName(name string) string {
	return utilstrings.ToKebabCase(name) + ".ts"
}

// importSpecifier computes the relative import path from the directory
// of the generated file to the file defining the referenced entity. The
// two absolute paths are compared segment by segment with a
// case-insensitive common prefix; the remainder of the importing side
// becomes "../" steps and the remainder of the imported side is
// appended, with the .ts suffix stripped.
func (b *TypeScript) importSpecifier(fromDir, outputRoot, toOutPath, toName string) string {
	toFile := filepath.ToSlash(filepath.Join(outputRoot, filepath.FromSlash(toOutPath), b.fileName(toName)))
	toFile = strings.TrimSuffix(toFile, ".ts")

	from := pathSegments(fromDir)
	to := pathSegments(toFile)

	common := 0
	for common < len(from) && common < len(to)-1 &&
		strings.EqualFold(from[common], to[common]) {
		common++
	}

	ups := len(from) - common
	rest := strings.Join(to[common:], "/")
	if ups == 0 {
		return "./" + rest
	}
	return strings.Repeat("../", ups) + rest
}
