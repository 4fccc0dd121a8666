package textscan

import (
	"strings"
	"unicode"
)

// CapitalizeToken capitalizes a single token: first character upper,
// remainder lower. Used by the word-level capitalize command.
func CapitalizeToken(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteRune(unicode.ToUpper(runes[0]))
	for _, r := range runes[1:] {
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// CapitalizeWords independently capitalizes every word-boundary-delimited
// token in s, leaving delimiters untouched. Used by the region-level
// capitalize command.
func CapitalizeWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		switch {
		case !IsWordChar(r):
			inWord = false
			b.WriteRune(r)
		case !inWord:
			inWord = true
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
