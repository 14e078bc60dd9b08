package parser

// builtinTypes is the fixed set of type names the schema language knows
// without any declaration. Containers are listed alongside scalars; the
// generator decides per target how each is spelled.
var builtinTypes = map[string]bool{
	// Identifier
	"Uid": true,

	// Numeric family
	"sbyte":   true,
	"short":   true,
	"int":     true,
	"long":    true,
	"byte":    true,
	"ushort":  true,
	"uint":    true,
	"ulong":   true,
	"float":   true,
	"double":  true,
	"decimal": true,

	// Scalars
	"bool":   true,
	"char":   true,
	"object": true,
	"string": true,

	// Containers
	"Array": true,
	"List":  true,
	"Map":   true,
	"Set":   true,
	"Queue": true,

	// Date and time
	"date":     true,
	"datetime": true,
}

// IsBuiltinType reports whether name is a built-in type of the language
func IsBuiltinType(name string) bool {
	return builtinTypes[name]
}
