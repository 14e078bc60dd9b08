package parser

import (
	"fmt"
	"strings"

	"github.com/cakeruu/typegen/compiler/lexer"
)

// parseDefinition parses "create (schema ... | enum ...);"
func (p *Parser) parseDefinition() {
	p.advance() // 'create'

	switch {
	case p.check(lexer.TOKEN_SCHEMA):
		p.advance()
		p.parseSchema()
	case p.check(lexer.TOKEN_ENUM):
		p.advance()
		p.parseEnum()
	default:
		if p.check(lexer.TOKEN_IDENTIFIER) {
			p.errorAt(p.peek(), fmt.Sprintf(
				"Expected 'schema' or 'enum' after 'create', found '%s' (did you forget the keyword?)",
				p.peek().Lexeme))
		} else {
			p.errorAt(p.peek(), "Expected 'schema' or 'enum' after 'create'")
		}
		p.skipStatement()
	}
}

// parseDeclPath parses the '<...>' output path of a schema or enum and
// resolves it against the file's rootPath. Inside the brackets a bare
// identifier is a variable reference when one is declared, otherwise a
// plain path segment.
func (p *Parser) parseDeclPath() string {
	var segments []string
	startsWithVariable := false
	first := true

	for {
		switch {
		case p.check(lexer.TOKEN_PATH):
			segments = append(segments, splitPath(p.advance().Lexeme)...)

		case p.check(lexer.TOKEN_IDENTIFIER):
			tok := p.advance()
			if resolved, found := p.lookupVariable(tok.Lexeme); found {
				if first {
					startsWithVariable = true
				}
				segments = append(segments, splitPath(resolved)...)
			} else {
				segments = append(segments, tok.Lexeme)
			}

		default:
			p.errorAt(p.peek(), fmt.Sprintf(
				"Expected a path inside '<...>', found '%s'", p.peek().Lexeme))
			return ""
		}

		first = false
		if !p.match(lexer.TOKEN_PLUS) {
			break
		}
	}

	if !p.match(lexer.TOKEN_GREATER) {
		p.errorAt(p.peek(), "Expected '>' to close output path")
		return ""
	}

	path := strings.Join(segments, "/")
	if !startsWithVariable && p.out.HasRootPath {
		path = joinPath(p.out.RootPath, path)
	}
	return path
}

// joinPath joins two normalized path fragments
func joinPath(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "/" + b
}

// declaredPath parses an optional '<...>' clause, falling back to the
// file's rootPath when absent.
func (p *Parser) declaredPath() string {
	if p.match(lexer.TOKEN_LESS) {
		return p.parseDeclPath()
	}
	if p.out.HasRootPath {
		return p.out.RootPath
	}
	return ""
}

// parseSchema parses "Name<path>? (& Parent)? ( Property* );"
func (p *Parser) parseSchema() {
	if !p.check(lexer.TOKEN_IDENTIFIER) {
		p.errorAt(p.peek(), "Expected schema name after 'create schema'")
		p.skipStatement()
		return
	}
	nameTok := p.advance()

	schema := &Schema{
		Name:    nameTok.Lexeme,
		OutPath: p.declaredPath(),
	}

	if p.match(lexer.TOKEN_AMPERSAND) {
		if !p.check(lexer.TOKEN_IDENTIFIER) {
			p.errorAt(p.peek(), fmt.Sprintf(
				"Expected parent schema name after '&' in schema '%s'", schema.Name))
			p.skipStatement()
			return
		}
		schema.ParentName = p.advance().Lexeme
	}

	if !p.match(lexer.TOKEN_LPAREN) {
		p.errorAt(p.peek(), fmt.Sprintf(
			"Expected '(' to open the body of schema '%s'", schema.Name))
		p.skipDefinitionRemainder()
		p.out.Schemas = append(p.out.Schemas, schema)
		return
	}

	for !p.isAtEnd() && !p.check(lexer.TOKEN_RPAREN) {
		before := p.current
		if prop := p.parseProperty(schema.Name); prop != nil {
			schema.Properties = append(schema.Properties, prop)
		}
		if p.current == before {
			// Recovery stopped at a top-level keyword: the body is
			// unclosed, bail out rather than loop
			break
		}
	}

	if !p.match(lexer.TOKEN_RPAREN) {
		p.errorAt(p.peek(), fmt.Sprintf(
			"Expected ')' to close the body of schema '%s'", schema.Name))
		p.skipStatement()
		p.out.Schemas = append(p.out.Schemas, schema)
		return
	}
	p.expectSemicolon(fmt.Sprintf("schema '%s'", schema.Name))

	p.out.Schemas = append(p.out.Schemas, schema)
}

// parseProperty parses "Name: Type?? ;" with local recovery: a malformed
// property skips to its own ';' (or the closing ')') so the next property
// still parses cleanly. Returns nil when nothing usable was parsed.
func (p *Parser) parseProperty(schemaName string) *Property {
	if !p.check(lexer.TOKEN_IDENTIFIER) {
		p.errorAt(p.peek(), fmt.Sprintf(
			"Expected property name in schema '%s', found '%s'",
			schemaName, p.peek().Lexeme))
		p.skipProperty()
		return nil
	}
	nameTok := p.advance()

	if !p.match(lexer.TOKEN_COLON) {
		p.errorAt(p.peek(), fmt.Sprintf(
			"Expected ':' after property name '%s'", nameTok.Lexeme))
		p.skipProperty()
		return nil
	}

	typeText, typeTok, ok := p.parseTypeExpr()
	if !ok {
		p.skipProperty()
		return nil
	}

	nullable := p.match(lexer.TOKEN_QUESTION)

	if !p.match(lexer.TOKEN_SEMICOLON) {
		p.errorAt(p.peek(), fmt.Sprintf(
			"Expected ';' after property '%s'", nameTok.Lexeme))
		p.skipProperty()
	}

	return &Property{
		Name:       nameTok.Lexeme,
		Type:       typeText,
		Nullable:   nullable,
		TypeLine:   typeTok.Line,
		TypeColumn: typeTok.Column,
	}
}

// parseTypeExpr parses a possibly-generic type expression, re-emitting
// the original bracket text. Angle-bracket depth is tracked explicitly
// so arbitrarily nested parameter lists survive intact.
func (p *Parser) parseTypeExpr() (string, lexer.Token, bool) {
	if !p.check(lexer.TOKEN_IDENTIFIER) {
		p.errorAt(p.peek(), fmt.Sprintf(
			"Expected type name, found '%s'", p.peek().Lexeme))
		return "", lexer.Token{}, false
	}
	baseTok := p.advance()

	if !p.check(lexer.TOKEN_LESS) {
		return baseTok.Lexeme, baseTok, true
	}

	var b strings.Builder
	b.WriteString(baseTok.Lexeme)
	depth := 0

	for !p.isAtEnd() {
		switch p.peek().Type {
		case lexer.TOKEN_LESS:
			depth++
		case lexer.TOKEN_GREATER:
			depth--
		case lexer.TOKEN_IDENTIFIER, lexer.TOKEN_COMMA:
			// Part of the parameter list
		default:
			p.errorAt(p.peek(), fmt.Sprintf(
				"Unexpected '%s' in generic type '%s'", p.peek().Lexeme, b.String()))
			return "", baseTok, false
		}

		b.WriteString(p.advance().Lexeme)
		if depth == 0 {
			return b.String(), baseTok, true
		}
	}

	p.errorAt(baseTok, fmt.Sprintf(
		"Unterminated generic type '%s'", b.String()))
	return "", baseTok, false
}

// skipProperty recovers inside a schema body: it skips up to and
// including the next ';', stopping early at the body's closing ')'.
func (p *Parser) skipProperty() {
	for !p.isAtEnd() {
		switch p.peek().Type {
		case lexer.TOKEN_SEMICOLON:
			p.advance()
			return
		case lexer.TOKEN_RPAREN, lexer.TOKEN_CREATE, lexer.TOKEN_IMPORT:
			return
		}
		p.advance()
	}
}

// skipDefinitionRemainder recovers from a definition whose opening '('
// is altogether absent. It conservatively keeps skipping past trailing
// content that still looks like an orphaned property or value list, so
// the leftovers are not mis-parsed as new top-level statements.
func (p *Parser) skipDefinitionRemainder() {
	p.skipStatement()

	for !p.isAtEnd() {
		switch {
		case p.check(lexer.TOKEN_IDENTIFIER) &&
			(p.peekNext().Type == lexer.TOKEN_COLON || p.peekNext().Type == lexer.TOKEN_COMMA):
			p.skipToStatementEnd()
		case p.check(lexer.TOKEN_RPAREN):
			p.advance()
			p.match(lexer.TOKEN_SEMICOLON)
		default:
			return
		}
	}
}

// parseEnum parses "Name<path>? ( Value (, Value)* ,? );"
func (p *Parser) parseEnum() {
	if !p.check(lexer.TOKEN_IDENTIFIER) {
		p.errorAt(p.peek(), "Expected enum name after 'create enum'")
		p.skipStatement()
		return
	}
	nameTok := p.advance()

	enum := &Enum{
		Name:    nameTok.Lexeme,
		OutPath: p.declaredPath(),
	}

	if !p.match(lexer.TOKEN_LPAREN) {
		p.errorAt(p.peek(), fmt.Sprintf(
			"Expected '(' to open the body of enum '%s'", enum.Name))
		p.skipDefinitionRemainder()
		p.out.Enums = append(p.out.Enums, enum)
		return
	}

	for !p.isAtEnd() && !p.check(lexer.TOKEN_RPAREN) {
		if p.check(lexer.TOKEN_CREATE) || p.check(lexer.TOKEN_IMPORT) {
			// Unclosed enum body, bail out at the next statement
			break
		}
		if !p.check(lexer.TOKEN_IDENTIFIER) {
			p.errorAt(p.peek(), fmt.Sprintf(
				"Expected enum value in enum '%s', found '%s'",
				enum.Name, p.peek().Lexeme))
			p.skipProperty()
			continue
		}
		enum.Values = append(enum.Values, p.advance().Lexeme)

		if p.match(lexer.TOKEN_COMMA) {
			continue
		}
		if p.check(lexer.TOKEN_IDENTIFIER) {
			// Distinct from the end-of-list case: two values in a row
			p.errorAt(p.peek(), fmt.Sprintf(
				"Missing ',' between enum values '%s' and '%s'",
				enum.Values[len(enum.Values)-1], p.peek().Lexeme))
			continue
		}
		break
	}

	if !p.match(lexer.TOKEN_RPAREN) {
		p.errorAt(p.peek(), fmt.Sprintf(
			"Expected ')' to close the body of enum '%s'", enum.Name))
		p.skipStatement()
	} else {
		p.expectSemicolon(fmt.Sprintf("enum '%s'", enum.Name))
	}

	if len(enum.Values) == 0 {
		p.errorAt(nameTok, fmt.Sprintf(
			"Enum '%s' must define at least one value", enum.Name))
	}

	p.out.Enums = append(p.out.Enums, enum)
}
