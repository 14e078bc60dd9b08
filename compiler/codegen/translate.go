package codegen

import (
	"regexp"
	"strings"

	"github.com/cakeruu/typegen/compiler/parser"
)

var genericTypeRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)<(.+)>$`)

// translateType renders a schema-language type expression in the target
// language. Generic parameter lists are translated recursively, splitting
// on top-level commas only; the Array marker renders as a suffix
// ("<inner>[]") with no explicit container name. The returned imports
// combine the base type's requirement with every parameter's, without
// duplicates.
func translateType(typeExpr string, sc *scope) (string, []string, error) {
	typeExpr = strings.TrimSpace(typeExpr)

	if !strings.Contains(typeExpr, "<") {
		if typeExpr == "Array" {
			return "", nil, internalErrorf(
				"'Array' reached the generator without a type parameter")
		}
		m, ok := sc.lookup(typeExpr)
		if !ok {
			return "", nil, internalErrorf("untranslatable type '%s'", typeExpr)
		}
		return m.Target, importsOf(m), nil
	}

	groups := genericTypeRe.FindStringSubmatch(typeExpr)
	if groups == nil {
		return "", nil, internalErrorf("malformed generic type '%s'", typeExpr)
	}
	base, paramList := groups[1], groups[2]

	params := parser.SplitTypeParams(paramList)
	translated := make([]string, len(params))
	var imports []string
	seen := make(map[string]bool)

	for i, param := range params {
		t, paramImports, err := translateType(param, sc)
		if err != nil {
			return "", nil, err
		}
		translated[i] = t
		for _, imp := range paramImports {
			if !seen[imp] {
				seen[imp] = true
				imports = append(imports, imp)
			}
		}
	}

	if base == "Array" {
		return translated[0] + "[]", imports, nil
	}

	baseMapping, ok := sc.lookup(base)
	if !ok {
		return "", nil, internalErrorf("untranslatable type '%s'", base)
	}
	for _, imp := range importsOf(baseMapping) {
		if !seen[imp] {
			seen[imp] = true
			imports = append(imports, imp)
		}
	}

	return baseMapping.Target + "<" + strings.Join(translated, ", ") + ">", imports, nil
}

// importsOf returns a mapping's import requirement as a slice
func importsOf(m Mapping) []string {
	if m.Import == "" {
		return nil
	}
	return []string{m.Import}
}

// customRefs returns the custom (schema/enum) type names referenced
// anywhere inside a type expression, in order of first appearance.
func customRefs(typeExpr string, sc *scope) []string {
	var refs []string
	seen := make(map[string]bool)

	for _, ident := range identifierRe.FindAllString(typeExpr, -1) {
		if sc.isCustom(ident) && !seen[ident] {
			seen[ident] = true
			refs = append(refs, ident)
		}
	}
	return refs
}

var identifierRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
