package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToSnakeCase converts PascalCase or camelCase to snake_case.
// Handles acronyms properly (e.g., "HTTPSHooks" -> "https_hooks")
func ToSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if i > 0 && unicode.IsUpper(r) {
			// No underscore inside an acronym, unless the next char starts a
			// new lowercase word
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if !prevUpper || nextLower {
				result.WriteRune('_')
			}
		}

		result.WriteRune(r)
	}

	return strings.ToLower(result.String())
}

// Capitalize upper-cases the first rune of s
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Decapitalize lower-cases the first rune of s
func Decapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// IsExported reports whether name starts with an upper-case letter
func IsExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// WithVisibility returns name with the first rune's case set so that it is
// exported exactly when exported is true.
func WithVisibility(name string, exported bool) string {
	if exported {
		return Capitalize(name)
	}
	return Decapitalize(name)
}
