package strings

import (
	"strings"
	"unicode"
)

// ToKebabCase converts CamelCase to kebab-case.
// Handles acronyms properly (HTTPRequest -> http-request), so an
// all-caps run does not get a hyphen before every letter.
func ToKebabCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				// Add hyphen before an uppercase letter if:
				// 1. Previous char is lowercase or a digit
				// 2. Next char is lowercase (end of an acronym run)
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					result.WriteRune('-')
				} else if i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
					result.WriteRune('-')
				}
			}
			result.WriteRune(unicode.ToLower(r))
		} else if r == '_' || r == ' ' {
			result.WriteRune('-')
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
