package lexer

import "fmt"

// TokenType represents the type of token in the TGS schema language
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_WHITESPACE
	TOKEN_NEWLINE
	TOKEN_COMMENT

	// Keywords
	TOKEN_IMPORT
	TOKEN_FROM
	TOKEN_CREATE
	TOKEN_SCHEMA
	TOKEN_ENUM

	// Literals
	TOKEN_IDENTIFIER
	TOKEN_STRING_LITERAL
	TOKEN_PATH

	// Operators
	TOKEN_EQUAL     // =
	TOKEN_PLUS      // +
	TOKEN_SLASH     // /
	TOKEN_AMPERSAND // &
	TOKEN_COLON     // :
	TOKEN_QUESTION  // ?
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;
	TOKEN_LESS      // <
	TOKEN_GREATER   // >

	// Delimiters
	TOKEN_LBRACE // {
	TOKEN_RBRACE // }
	TOKEN_LPAREN // (
	TOKEN_RPAREN // )
)

// Token represents a single lexical token
type Token struct {
	Type   TokenType
	Lexeme string // Exact source text, including quotes for strings
	Value  string // Decoded value for string literals
	Line   int
	Column int
	File   string // Source file path
	Start  int    // Rune offset in source where token starts
	End    int    // Rune offset in source where token ends (exclusive)
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "EOF"
	case TOKEN_WHITESPACE:
		return "WHITESPACE"
	case TOKEN_NEWLINE:
		return "NEWLINE"
	case TOKEN_COMMENT:
		return "COMMENT"
	case TOKEN_IMPORT:
		return "IMPORT"
	case TOKEN_FROM:
		return "FROM"
	case TOKEN_CREATE:
		return "CREATE"
	case TOKEN_SCHEMA:
		return "SCHEMA"
	case TOKEN_ENUM:
		return "ENUM"
	case TOKEN_IDENTIFIER:
		return "IDENTIFIER"
	case TOKEN_STRING_LITERAL:
		return "STRING_LITERAL"
	case TOKEN_PATH:
		return "PATH"
	case TOKEN_EQUAL:
		return "EQUAL"
	case TOKEN_PLUS:
		return "PLUS"
	case TOKEN_SLASH:
		return "SLASH"
	case TOKEN_AMPERSAND:
		return "AMPERSAND"
	case TOKEN_COLON:
		return "COLON"
	case TOKEN_QUESTION:
		return "QUESTION"
	case TOKEN_COMMA:
		return "COMMA"
	case TOKEN_SEMICOLON:
		return "SEMICOLON"
	case TOKEN_LESS:
		return "LESS"
	case TOKEN_GREATER:
		return "GREATER"
	case TOKEN_LBRACE:
		return "LBRACE"
	case TOKEN_RBRACE:
		return "RBRACE"
	case TOKEN_LPAREN:
		return "LPAREN"
	case TOKEN_RPAREN:
		return "RPAREN"
	default:
		return "UNKNOWN"
	}
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%s(%s) [%d:%d]", t.Type, t.Lexeme, t.Line, t.Column)
}

// LexError represents a lexical analysis error
type LexError struct {
	Message string
	Line    int
	Column  int
	File    string
}

// Error implements the error interface
func (e LexError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}

// FilterSignificant returns the tokens the parser consumes: everything
// except whitespace, newlines and comments. The full stream is kept
// around for tooling that needs exact source reconstruction.
func FilterSignificant(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.Type {
		case TOKEN_WHITESPACE, TOKEN_NEWLINE, TOKEN_COMMENT:
			continue
		}
		out = append(out, tok)
	}
	return out
}
