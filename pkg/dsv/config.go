package dsv

import (
	"slices"

	"github.com/shapestone/shape-dsv/internal/tokenizer"
)

// Config describes a dialect and the callbacks that receive parse events.
//
// The zero value is usable: a zero Delimiter means ',', nil RecordTerminators means the
// newline class, and a zero Comment means '#'. A Config is copied when a Parser is
// created and is never modified during a parse.
type Config struct {
	// Delimiter separates fields. Default: ','
	Delimiter rune

	// RecordTerminators is the set of characters that end a record.
	// Default: the newline class (LF, VT, FF, CR, NEL, LS, PS). A CR immediately followed
	// by an LF counts as a single terminator when both are in the set.
	RecordTerminators []rune

	// Comment is the character introducing a comment line when RecognizeComments is set.
	// Default: '#'
	Comment rune

	// RecognizeBackslashAsEscape makes a backslash escape the following character.
	RecognizeBackslashAsEscape bool

	// SanitizeFields reports field and comment values with quoting and escapes removed.
	// When false the literal source text is reported.
	SanitizeFields bool

	// RecognizeComments treats lines starting with Comment as comments.
	RecognizeComments bool

	// TrimWhitespace removes whitespace surrounding field and comment values.
	TrimWhitespace bool

	// RecognizeLeadingEqualSign treats ="..." as a quoted field (Excel style).
	RecognizeLeadingEqualSign bool

	// OnBeginDocument is called once before any input is read.
	OnBeginDocument func() Disposition

	// OnEndDocument is called once after parsing stops, with the error that stopped it, if any.
	OnEndDocument func(progress Progress, err *ParseError)

	// OnBeginRecord is called before each record, including comment records.
	OnBeginRecord func(progress Progress) Disposition

	// OnEndRecord is called after each record that was parsed completely.
	OnEndRecord func(progress Progress) Disposition

	// OnReadField is called with the value of every field.
	OnReadField func(field string, progress Progress) Disposition

	// OnReadComment is called with the text of every comment.
	OnReadComment func(comment string, progress Progress) Disposition
}

// DefaultConfig returns the default comma-separated dialect with no callbacks.
func DefaultConfig() Config {
	return Config{
		Delimiter:         ',',
		RecordTerminators: slices.Clone(tokenizer.Newlines),
		Comment:           tokenizer.Octothorpe,
	}
}

// normalized fills in defaults for zero-valued dialect fields.
func (c Config) normalized() Config {
	if c.Delimiter == 0 {
		c.Delimiter = ','
	}
	if c.RecordTerminators == nil {
		c.RecordTerminators = tokenizer.Newlines
	}
	c.RecordTerminators = slices.Clone(c.RecordTerminators)
	if c.Comment == 0 {
		c.Comment = tokenizer.Octothorpe
	}
	return c
}

// Validate checks that no control character of the dialect plays two roles.
// It returns a *ParseError of kind ErrIllegalDelimiter when the delimiter is:
//   - '=' while RecognizeLeadingEqualSign is set
//   - '\' while RecognizeBackslashAsEscape is set
//   - the comment marker while RecognizeComments is set
//   - one of the record terminators
//   - the double quote
func (c Config) Validate() error {
	c = c.normalized()
	d := c.Delimiter

	if (d == tokenizer.Equal && c.RecognizeLeadingEqualSign) ||
		(d == tokenizer.Backslash && c.RecognizeBackslashAsEscape) ||
		(d == c.Comment && c.RecognizeComments) ||
		c.isTerminator(d) ||
		d == tokenizer.DoubleQuote {
		return newParseErrorAt(ErrIllegalDelimiter, d, Progress{Record: NoIndex, Field: NoIndex})
	}
	return nil
}

func (c *Config) isTerminator(r rune) bool {
	return slices.Contains(c.RecordTerminators, r)
}
