package lexer

import (
	"strings"
	"unicode"
)

// Lexer tokenizes TGS schema source code.
//
// Whitespace, newlines and comments are emitted as tokens so that the
// token stream concatenates back to the original source exactly; callers
// feed the parser through FilterSignificant.
type Lexer struct {
	source      []rune // Source code as runes for Unicode support
	start       int    // Start position of current token
	current     int    // Current position in source
	line        int    // Current line number
	column      int    // Current column number
	startLine   int    // Line where current token started
	startColumn int    // Column where current token started
	file        string // Source file path
	tokens      []Token
	errors      []LexError
}

// New creates a new Lexer for the given source code
func New(source, file string) *Lexer {
	return &Lexer{
		source:      []rune(source),
		line:        1,
		column:      1,
		startLine:   1,
		startColumn: 1,
		file:        file,
		tokens:      make([]Token, 0, len(source)/8),
		errors:      make([]LexError, 0),
	}
}

// ScanTokens scans all tokens from the source and returns them with any
// errors. Lexical errors are fatal for the file being scanned: a caller
// must not hand a stream with errors to the parser.
func (l *Lexer) ScanTokens() ([]Token, []LexError) {
	for !l.isAtEnd() {
		l.start = l.current
		l.startLine = l.line
		l.startColumn = l.column
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_EOF,
		Lexeme: "",
		Line:   l.line,
		Column: l.column,
		File:   l.file,
		Start:  l.current,
		End:    l.current,
	})

	return l.tokens, l.errors
}

// scanToken scans a single token
func (l *Lexer) scanToken() {
	r := l.advance()

	switch r {
	case '{':
		l.addToken(TOKEN_LBRACE)
	case '}':
		l.addToken(TOKEN_RBRACE)
	case '(':
		l.addToken(TOKEN_LPAREN)
	case ')':
		l.addToken(TOKEN_RPAREN)
	case ',':
		l.addToken(TOKEN_COMMA)
	case ';':
		l.addToken(TOKEN_SEMICOLON)
	case ':':
		l.addToken(TOKEN_COLON)
	case '?':
		l.addToken(TOKEN_QUESTION)
	case '=':
		l.addToken(TOKEN_EQUAL)
	case '+':
		l.addToken(TOKEN_PLUS)
	case '&':
		l.addToken(TOKEN_AMPERSAND)
	case '<':
		l.addToken(TOKEN_LESS)
	case '>':
		l.addToken(TOKEN_GREATER)

	case '/':
		if l.match('/') {
			l.scanLineComment()
		} else if l.match('*') {
			l.scanBlockComment()
		} else {
			l.scanSlashOrPath()
		}

	case '"', '\'':
		l.scanString(r)

	case ' ', '\t', '\r':
		l.scanWhitespace()

	case '\n':
		l.addToken(TOKEN_NEWLINE)
		l.line++
		l.column = 1

	default:
		if l.isAlpha(r) {
			l.scanIdentifier()
		} else {
			l.addError("Unexpected character: " + string(r))
		}
	}
}

// scanWhitespace scans a run of horizontal whitespace into one token
func (l *Lexer) scanWhitespace() {
	for l.peek() == ' ' || l.peek() == '\t' || l.peek() == '\r' {
		l.advance()
	}
	l.addToken(TOKEN_WHITESPACE)
}

// scanLineComment scans a // comment up to (not including) the newline
func (l *Lexer) scanLineComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
	l.addToken(TOKEN_COMMENT)
}

// scanBlockComment scans a /* */ comment, tracking embedded newlines
func (l *Lexer) scanBlockComment() {
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			l.addToken(TOKEN_COMMENT)
			return
		}
		if l.peek() == '\n' {
			l.line++
			l.column = 0
		}
		l.advance()
	}
	l.addError("Unterminated block comment")
	l.addToken(TOKEN_COMMENT)
}

// scanSlashOrPath disambiguates a lone '/' from an absolute path literal
// such as /Customers/Requests. It tentatively scans forward over path
// characters; if the run ends at a path terminator the whole run becomes
// a single PATH token, otherwise it rewinds and emits a slash.
func (l *Lexer) scanSlashOrPath() {
	savedCurrent, savedLine, savedColumn := l.current, l.line, l.column

	segmentChars := 0
	for l.isPathChar(l.peek()) {
		if l.peek() != '/' {
			segmentChars++
		}
		l.advance()
	}

	if segmentChars > 0 && l.isPathTerminator(l.peek()) {
		l.addToken(TOKEN_PATH)
		return
	}

	l.current, l.line, l.column = savedCurrent, savedLine, savedColumn
	l.addToken(TOKEN_SLASH)
}

// scanString scans a string literal delimited by the given quote rune
func (l *Lexer) scanString(quote rune) {
	var builder strings.Builder

	for !l.isAtEnd() && l.peek() != quote {
		if l.peek() == '\n' {
			l.line++
			l.column = 0
		}
		builder.WriteRune(l.advance())
	}

	if l.isAtEnd() {
		l.addError("Unterminated string")
		return
	}

	// Consume closing quote
	l.advance()

	l.addValueToken(TOKEN_STRING_LITERAL, builder.String())
}

// scanIdentifier scans an identifier or keyword
func (l *Lexer) scanIdentifier() {
	for l.isAlphaNumeric(l.peek()) {
		l.advance()
	}

	// An identifier that continues as a path run is a relative path
	// literal, which the language forbids.
	if l.peek() == '/' && l.looksLikePathContinuation() {
		lexeme := string(l.source[l.start:l.current])
		for l.isPathChar(l.peek()) {
			l.advance()
		}
		l.addError("Relative path literal '" + string(l.source[l.start:l.current]) +
			"' is not allowed; paths must start with '/' (did you mean '/" + lexeme + "...'?)")
		l.addToken(TOKEN_PATH)
		return
	}

	lexeme := string(l.source[l.start:l.current])
	if tokenType, isKeyword := lookupKeyword(lexeme); isKeyword {
		l.addToken(tokenType)
		return
	}

	l.addToken(TOKEN_IDENTIFIER)
}

// looksLikePathContinuation reports whether the characters from the
// current position form a path run ending at a path terminator.
func (l *Lexer) looksLikePathContinuation() bool {
	i := l.current
	for i < len(l.source) && l.isPathChar(l.source[i]) {
		i++
	}
	var next rune
	if i < len(l.source) {
		next = l.source[i]
	}
	return i > l.current && l.isPathTerminator(next)
}

// Helper methods

// isAtEnd checks if we've reached the end of the source
func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// advance consumes and returns the current character
func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	r := l.source[l.current]
	l.current++
	l.column++
	return r
}

// match consumes the current character if it equals expected
func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	l.column++
	return true
}

// peek returns the current character without consuming it
func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

// peekNext returns the next character without consuming it
func (l *Lexer) peekNext() rune {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

// isAlpha checks if a rune can start an identifier
func (l *Lexer) isAlpha(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

// isAlphaNumeric checks if a rune can continue an identifier
func (l *Lexer) isAlphaNumeric(r rune) bool {
	return l.isAlpha(r) || (r >= '0' && r <= '9')
}

// isPathChar checks if a rune can appear inside a path literal
func (l *Lexer) isPathChar(r rune) bool {
	return l.isAlphaNumeric(r) || r == '/' || r == '-'
}

// isPathTerminator checks if a rune can legally end a path literal.
// A zero rune means end of input.
func (l *Lexer) isPathTerminator(r rune) bool {
	switch r {
	case ';', '>', ' ', '\t', '\r', '\n', 0:
		return true
	}
	return false
}

// addToken adds a token whose value is its lexeme
func (l *Lexer) addToken(tokenType TokenType) {
	l.addValueToken(tokenType, "")
}

// addValueToken adds a token carrying a decoded value
func (l *Lexer) addValueToken(tokenType TokenType, value string) {
	l.tokens = append(l.tokens, Token{
		Type:   tokenType,
		Lexeme: string(l.source[l.start:l.current]),
		Value:  value,
		Line:   l.startLine,
		Column: l.startColumn,
		File:   l.file,
		Start:  l.start,
		End:    l.current,
	})
}

// addError adds an error to the error list
func (l *Lexer) addError(message string) {
	l.errors = append(l.errors, LexError{
		Message: message,
		Line:    l.startLine,
		Column:  l.startColumn,
		File:    l.file,
	})
}
