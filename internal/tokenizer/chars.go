// Package tokenizer provides the character source the delimited-text parser reads from.
//
// The parser works one character at a time with a small amount of lookahead, so this
// package wraps Shape's tokenizer.Stream in a peekable Iterator and defines the character
// classes (newlines, whitespace, control characters) the dialect rules refer to.
package tokenizer

// Control characters with a fixed meaning in every dialect.
const (
	DoubleQuote = '"'
	Backslash   = '\\'
	Octothorpe  = '#'
	Equal       = '='
)

// Newlines is the default record terminator class.
var Newlines = []rune{
	'\u000a',
	'\u000b',
	'\u000c',
	'\u000d',
	'\u0085',
	'\u2028',
	'\u2029',
}

// Whitespaces is the set of characters treated as surrounding whitespace of a field.
var Whitespaces = []rune{
	'\u0020',
	'\u0009',
	'\u00a0',
	'\u1680',
	'\u2000',
	'\u2001',
	'\u2002',
	'\u2003',
	'\u2004',
	'\u2005',
	'\u2006',
	'\u2007',
	'\u2008',
	'\u2009',
	'\u200a',
	'\u200b',
	'\u202f',
	'\u205f',
	'\u3000',
}

// IsNewline reports whether r belongs to the Newlines class.
func IsNewline(r rune) bool {
	switch r {
	case '\u000a', '\u000b', '\u000c', '\u000d', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// IsWhitespace reports whether r belongs to the Whitespaces class.
func IsWhitespace(r rune) bool {
	switch r {
	case '\u0020', '\u0009', '\u00a0', '\u1680', '\u202f', '\u205f', '\u3000':
		return true
	}
	return r >= '\u2000' && r <= '\u200b'
}
