package lexer

// keywords maps keyword strings to their token types for O(1) lookup
var keywords = map[string]TokenType{
	"import": TOKEN_IMPORT,
	"from":   TOKEN_FROM,
	"create": TOKEN_CREATE,
	"schema": TOKEN_SCHEMA,
	"enum":   TOKEN_ENUM,
}

// lookupKeyword returns the keyword token type for a lexeme, if any
func lookupKeyword(lexeme string) (TokenType, bool) {
	tokenType, ok := keywords[lexeme]
	return tokenType, ok
}
