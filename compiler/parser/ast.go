package parser

// Property is one typed member of a schema. The type is kept as written
// (possibly a generic expression such as Map<string, Customer>); the
// line and column of its first token are retained for diagnostics.
type Property struct {
	Name       string
	Type       string
	Nullable   bool
	TypeLine   int
	TypeColumn int
}

// Schema is a record-type definition with an optional single parent.
// ParentName is set by the parser whenever inheritance syntax was used;
// Parent is linked by the cross-file resolver after all files are parsed.
type Schema struct {
	Name       string
	OutPath    string // output path fragment, e.g. "Test/Entities"
	Properties []*Property
	ParentName string
	Parent     *Schema
}

// Enum is an enumeration definition. Value order is significant: it is
// the generation order and, for the C# target, the numeric value.
type Enum struct {
	Name    string
	OutPath string
	Values  []string
}

// Import is a cross-file import statement. Schemas and Enums start empty
// and are populated by the resolver.
type Import struct {
	Path    string
	Names   []string
	Schemas []*Schema
	Enums   []*Enum
}

// VariablePath is a named, reusable path fragment resolved at parse time
type VariablePath struct {
	Name string
	Path string
}

// SchemaFile is everything parsed from one TGS source file
type SchemaFile struct {
	Path        string
	RootPath    string
	HasRootPath bool
	Variables   []*VariablePath
	Schemas     []*Schema
	Enums       []*Enum
	Imports     []*Import
}

// Schema returns the schema with the given name, or nil
func (f *SchemaFile) Schema(name string) *Schema {
	for _, s := range f.Schemas {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Enum returns the enum with the given name, or nil
func (f *SchemaFile) Enum(name string) *Enum {
	for _, e := range f.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// ImportedNames returns every name brought in by import statements
func (f *SchemaFile) ImportedNames() []string {
	var names []string
	for _, imp := range f.Imports {
		names = append(names, imp.Names...)
	}
	return names
}
