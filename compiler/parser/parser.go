// Package parser turns a TGS token stream into a per-file AST.
//
// The parser never stops at the first error: every top-level construct
// and every property or enum value has its own recovery routine that
// skips to a safe synchronization point, so one malformed construct does
// not cascade into misdiagnosing the next ten. All diagnostics for a
// file are accumulated and returned together.
package parser

import (
	"fmt"
	"strings"

	"github.com/cakeruu/typegen/compiler/diag"
	"github.com/cakeruu/typegen/compiler/lexer"
)

// Parser transforms a token stream into a SchemaFile
type Parser struct {
	tokens  []lexer.Token
	current int
	file    string
	diags   diag.List
	out     *SchemaFile
	vars    map[string]string
}

// New creates a Parser for an already-filtered token stream
func New(tokens []lexer.Token, file string) *Parser {
	return &Parser{
		tokens: tokens,
		file:   file,
		out:    &SchemaFile{Path: file},
		vars:   make(map[string]string),
	}
}

// Parse parses a raw token stream (whitespace and comments included) and
// returns the file's AST together with every diagnostic found. The AST
// may be partial when diagnostics are present.
func Parse(tokens []lexer.Token, file string) (*SchemaFile, diag.List) {
	p := New(lexer.FilterSignificant(tokens), file)
	return p.ParseFile()
}

// ParseFile parses the whole token stream
func (p *Parser) ParseFile() (*SchemaFile, diag.List) {
	for !p.isAtEnd() {
		p.parseTopLevel()
	}
	p.checkSemantics()
	return p.out, p.diags
}

// parseTopLevel dispatches one top-level construct
func (p *Parser) parseTopLevel() {
	switch {
	case p.check(lexer.TOKEN_IMPORT):
		p.parseImport()

	case p.check(lexer.TOKEN_CREATE):
		p.parseDefinition()

	case p.check(lexer.TOKEN_IDENTIFIER):
		switch p.peekNext().Type {
		case lexer.TOKEN_COLON:
			// A property outside any schema body
			p.errorAt(p.peek(), fmt.Sprintf(
				"Property '%s' declared outside of a schema body", p.peek().Lexeme))
			p.skipToStatementEnd()
		case lexer.TOKEN_EQUAL:
			p.parseAssignment()
		default:
			p.errorAt(p.peek(), fmt.Sprintf("Unexpected token '%s'", p.peek().Lexeme))
			p.advance()
		}

	default:
		p.errorAt(p.peek(), fmt.Sprintf("Unexpected token '%s'", p.peek().Lexeme))
		p.advance()
	}
}

// parseAssignment parses 'rootPath = PathExpr ;' or 'Name = PathExpr ;'
func (p *Parser) parseAssignment() {
	nameTok := p.advance()
	p.advance() // '='

	if nameTok.Lexeme == "rootPath" {
		// A bare identifier here is almost always a forgotten slash
		if p.check(lexer.TOKEN_IDENTIFIER) && !p.isVariable(p.peek().Lexeme) {
			p.errorAt(p.peek(), fmt.Sprintf(
				"rootPath expects an absolute path; did you mean 'rootPath = /%s;'?",
				p.peek().Lexeme))
			p.skipToStatementEnd()
			return
		}
	}

	value, _, ok := p.parsePathExpr()
	if !ok {
		p.skipToStatementEnd()
		return
	}

	if !p.expectSemicolon("path assignment") {
		return
	}

	if nameTok.Lexeme == "rootPath" {
		p.out.RootPath = value
		p.out.HasRootPath = true
		return
	}

	p.out.Variables = append(p.out.Variables, &VariablePath{Name: nameTok.Lexeme, Path: value})
	p.vars[nameTok.Lexeme] = value
}

// parsePathExpr parses 'PathPart (+ PathPart)*' and resolves it to a
// normalized path string. It reports whether the first part was a
// variable reference: a path that begins with a variable is already
// complete and must not be re-prefixed with the file's rootPath.
func (p *Parser) parsePathExpr() (value string, startsWithVariable bool, ok bool) {
	var segments []string
	first := true

	for {
		switch {
		case p.check(lexer.TOKEN_PATH):
			tok := p.advance()
			segments = append(segments, splitPath(tok.Lexeme)...)

		case p.check(lexer.TOKEN_IDENTIFIER):
			tok := p.advance()
			resolved, found := p.lookupVariable(tok.Lexeme)
			if !found {
				p.errorAt(tok, fmt.Sprintf("Unknown path variable '%s'", tok.Lexeme))
				return "", false, false
			}
			if first {
				startsWithVariable = true
			}
			segments = append(segments, splitPath(resolved)...)

		default:
			p.errorAt(p.peek(), fmt.Sprintf(
				"Expected a path or path variable, found '%s'", p.peek().Lexeme))
			return "", false, false
		}

		first = false
		if !p.match(lexer.TOKEN_PLUS) {
			break
		}
	}

	return strings.Join(segments, "/"), startsWithVariable, true
}

// lookupVariable resolves a path variable name, treating rootPath as a
// variable like any other.
func (p *Parser) lookupVariable(name string) (string, bool) {
	if name == "rootPath" && p.out.HasRootPath {
		return p.out.RootPath, true
	}
	value, ok := p.vars[name]
	return value, ok
}

// isVariable reports whether name is a declared path variable
func (p *Parser) isVariable(name string) bool {
	_, ok := p.lookupVariable(name)
	return ok
}

// splitPath normalizes a path literal into its non-empty segments
func splitPath(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// parseImport parses 'import { A, B } from "file.tgs";'. A malformed
// import always skips forward to its own terminating ';' so that partial
// state never leaks into top-level parsing.
func (p *Parser) parseImport() {
	p.advance() // 'import'

	if !p.check(lexer.TOKEN_LBRACE) {
		p.errorAt(p.peek(), "Expected '{' after 'import'")
		p.skipToStatementEnd()
		return
	}
	p.advance()

	var names []string
	for {
		if !p.check(lexer.TOKEN_IDENTIFIER) {
			p.errorAt(p.peek(), fmt.Sprintf(
				"Expected imported name, found '%s'", p.peek().Lexeme))
			p.skipToStatementEnd()
			return
		}
		names = append(names, p.advance().Lexeme)

		if p.match(lexer.TOKEN_COMMA) {
			continue
		}
		if p.check(lexer.TOKEN_IDENTIFIER) {
			// Two names in a row reads better as a missing comma than
			// as a generic expectation failure
			p.errorAt(p.peek(), fmt.Sprintf(
				"Missing ',' between imported names '%s' and '%s'",
				names[len(names)-1], p.peek().Lexeme))
			continue
		}
		break
	}

	if !p.check(lexer.TOKEN_RBRACE) {
		p.errorAt(p.peek(), "Expected '}' after import list")
		p.skipToStatementEnd()
		return
	}
	p.advance()

	if !p.check(lexer.TOKEN_FROM) {
		p.errorAt(p.peek(), "Expected 'from' after import list")
		p.skipToStatementEnd()
		return
	}
	p.advance()

	if !p.check(lexer.TOKEN_STRING_LITERAL) {
		p.errorAt(p.peek(), "Expected file path string after 'from'")
		p.skipToStatementEnd()
		return
	}
	pathTok := p.advance()

	if !p.expectSemicolon("import statement") {
		return
	}

	p.out.Imports = append(p.out.Imports, &Import{
		Path:  pathTok.Value,
		Names: names,
	})
}

// Token manipulation helpers

// isAtEnd checks if we're at the end of the token stream
func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Type == lexer.TOKEN_EOF
}

// peek returns the current token without consuming it
func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

// peekNext returns the token after the current one
func (p *Parser) peekNext() lexer.Token {
	if p.current+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+1]
}

// previous returns the previous token
func (p *Parser) previous() lexer.Token {
	if p.current > 0 {
		return p.tokens[p.current-1]
	}
	return p.tokens[0]
}

// advance consumes and returns the current token
func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// check checks if the current token is of the given type
func (p *Parser) check(tokenType lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tokenType
}

// match consumes the current token if it is of the given type
func (p *Parser) match(tokenType lexer.TokenType) bool {
	if p.check(tokenType) {
		p.advance()
		return true
	}
	return false
}

// expectSemicolon consumes a ';' or reports an error and recovers
func (p *Parser) expectSemicolon(construct string) bool {
	if p.match(lexer.TOKEN_SEMICOLON) {
		return true
	}
	p.errorAt(p.peek(), fmt.Sprintf("Expected ';' after %s", construct))
	p.skipToStatementEnd()
	return false
}

// skipToStatementEnd skips tokens up to and including the next ';', or
// stops (without consuming) at the start of the next top-level keyword.
func (p *Parser) skipToStatementEnd() {
	for !p.isAtEnd() {
		switch p.peek().Type {
		case lexer.TOKEN_SEMICOLON:
			p.advance()
			return
		case lexer.TOKEN_CREATE, lexer.TOKEN_IMPORT:
			return
		}
		p.advance()
	}
}

// skipStatement performs bracket-aware skipping: it tracks paren and
// angle-bracket depth so that recovery does not stop at a ';' inside a
// schema body or a ',' inside a generic type argument.
func (p *Parser) skipStatement() {
	parenDepth := 0
	angleDepth := 0

	for !p.isAtEnd() {
		switch p.peek().Type {
		case lexer.TOKEN_LPAREN:
			parenDepth++
		case lexer.TOKEN_RPAREN:
			if parenDepth > 0 {
				parenDepth--
			}
		case lexer.TOKEN_LESS:
			angleDepth++
		case lexer.TOKEN_GREATER:
			if angleDepth > 0 {
				angleDepth--
			}
		case lexer.TOKEN_SEMICOLON:
			if parenDepth == 0 && angleDepth == 0 {
				p.advance()
				return
			}
		case lexer.TOKEN_CREATE, lexer.TOKEN_IMPORT:
			if parenDepth == 0 && angleDepth == 0 {
				return
			}
		}
		p.advance()
	}
}

// errorAt records a diagnostic positioned at the given token
func (p *Parser) errorAt(tok lexer.Token, message string) {
	p.diags = append(p.diags, diag.New(p.file, tok.Line, tok.Column, message))
}

// errorNoPos records a diagnostic with no known location
func (p *Parser) errorNoPos(message string) {
	p.diags = append(p.diags, diag.New(p.file, 0, 0, message))
}
