// Package textscan provides pure text classification and scanning
// functions used by the word, paragraph and case-transform commands.
//
// All functions operate on plain strings and linear character offsets so
// they can be tested without an editor. Word characters are alphanumerics
// plus underscore; anything fancier (Unicode word segmentation) is the
// host's concern.
package textscan

import "unicode"

// IsWordChar reports whether r is part of a word: a letter, a digit, or
// an underscore.
func IsWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsLineBreak reports whether r is a line-break character. CRLF pairs
// are handled by the scanning functions, which treat "\r\n" as a single
// break unit.
func IsLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}

// WordAt locates the word under or after the character offset off in
// text. If off is inside a word, that word is returned; otherwise the
// scan moves forward to the next word. Returns ok=false when no word
// exists at or after off.
//
// Offsets are rune offsets into text.
func WordAt(text string, off int) (start, end int, ok bool) {
	runes := []rune(text)
	n := len(runes)
	if off < 0 {
		off = 0
	}
	if off > n {
		off = n
	}

	i := off
	// Back up to the start of the word when the cursor sits inside or
	// immediately after one.
	if i < n && IsWordChar(runes[i]) || i > 0 && IsWordChar(runes[i-1]) {
		for i > 0 && IsWordChar(runes[i-1]) {
			i--
		}
	} else {
		// Scan forward to the next word.
		for i < n && !IsWordChar(runes[i]) {
			i++
		}
		if i == n {
			return 0, 0, false
		}
	}

	start = i
	end = start
	for end < n && IsWordChar(runes[end]) {
		end++
	}
	return start, end, true
}
