package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cakeruu/typegen/compiler/diag"
)

var genericTypeRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)<(.+)>$`)

// checkSemantics runs the local (single-file) semantic pass once the
// whole file has been consumed. It validates inheritance against the
// names visible to this file and every property type string. Cross-file
// existence is the resolver's job; the per-file check here and the
// program-wide link there are intentionally redundant safety nets.
func (p *Parser) checkSemantics() {
	visible := p.visibleNames()

	for _, schema := range p.out.Schemas {
		if schema.ParentName == "" {
			continue
		}
		if schema.ParentName == schema.Name {
			p.errorNoPos(fmt.Sprintf(
				"Schema '%s' cannot inherit from itself", schema.Name))
			continue
		}
		if !visible[schema.ParentName] {
			p.errorNoPos(fmt.Sprintf(
				"Unknown parent schema '%s' for schema '%s'",
				schema.ParentName, schema.Name))
		}
	}

	for _, schema := range p.out.Schemas {
		for _, prop := range schema.Properties {
			if err := validateTypeExpr(prop.Type, visible); err != "" {
				p.diags = append(p.diags, diag.New(p.file, prop.TypeLine, prop.TypeColumn,
					fmt.Sprintf("%s (property '%s' of schema '%s')",
						err, prop.Name, schema.Name)))
			}
		}
	}
}

// visibleNames collects every custom type name this file can reference:
// its own schemas and enums plus everything imported.
func (p *Parser) visibleNames() map[string]bool {
	names := make(map[string]bool)
	for _, s := range p.out.Schemas {
		names[s.Name] = true
	}
	for _, e := range p.out.Enums {
		names[e.Name] = true
	}
	for _, name := range p.out.ImportedNames() {
		names[name] = true
	}
	return names
}

// validateTypeExpr validates a type string recursively. It returns an
// empty string when the type is valid, otherwise the problem description.
func validateTypeExpr(typeExpr string, visible map[string]bool) string {
	typeExpr = strings.TrimSpace(typeExpr)

	if !strings.Contains(typeExpr, "<") {
		if typeExpr == "Array" {
			return "'Array' requires a type parameter, e.g. Array<string>"
		}
		if IsBuiltinType(typeExpr) || visible[typeExpr] {
			return ""
		}
		return fmt.Sprintf("Unknown type '%s'", typeExpr)
	}

	m := genericTypeRe.FindStringSubmatch(typeExpr)
	if m == nil {
		return fmt.Sprintf("Malformed generic type '%s'", typeExpr)
	}
	base, params := m[1], m[2]

	if !IsBuiltinType(base) && !visible[base] {
		return fmt.Sprintf("Unknown type '%s'", base)
	}

	for _, param := range SplitTypeParams(params) {
		if err := validateTypeExpr(param, visible); err != "" {
			return err
		}
	}
	return ""
}

// SplitTypeParams splits a generic parameter list on top-level commas
// only: commas inside nested angle brackets never cause a split.
func SplitTypeParams(params string) []string {
	var out []string
	depth := 0
	start := 0

	for i, r := range params {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(params[start:i]))
				start = i + 1
			}
		}
	}
	out = append(out, strings.TrimSpace(params[start:]))
	return out
}
