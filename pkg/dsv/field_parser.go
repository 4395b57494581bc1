package dsv

import (
	"strings"

	"github.com/shapestone/shape-dsv/internal/tokenizer"
)

// parseField parses one field and reports it through OnReadField.
//
// Grammar:
//
//	Field = [ Whitespace ] ( EscapedField | UnescapedField ) [ Whitespace ] ;
//
// The field ends at, without consuming, the next delimiter or record terminator.
func parseField(s *state) Disposition {
	r, ok := s.chars.Peek(0)
	if !ok || s.isFieldBoundary(r) {
		return s.readField("")
	}

	leading := parseWhitespace(s)

	var body string
	var err *ParseError
	if startsEscapedField(s) {
		body, err = parseEscapedField(s)
	} else {
		body, err = parseUnescapedField(s)
	}
	if err != nil {
		return Fail(err)
	}

	trailing := parseWhitespace(s)

	if s.cfg.TrimWhitespace {
		return s.readField(strings.TrimFunc(body, tokenizer.IsWhitespace))
	}
	return s.readField(leading + body + trailing)
}

// parseWhitespace consumes a run of whitespace that is not itself a delimiter or terminator.
func parseWhitespace(s *state) string {
	var ws strings.Builder
	for {
		r, ok := s.chars.Peek(0)
		if !ok || !tokenizer.IsWhitespace(r) || s.isFieldBoundary(r) {
			break
		}
		ws.WriteRune(r)
		s.chars.Next()
	}
	return ws.String()
}

func startsEscapedField(s *state) bool {
	r, ok := s.chars.Peek(0)
	if !ok {
		return false
	}
	if r == tokenizer.DoubleQuote {
		return true
	}
	if s.cfg.RecognizeLeadingEqualSign && r == tokenizer.Equal {
		next, ok := s.chars.Peek(1)
		return ok && next == tokenizer.DoubleQuote
	}
	return false
}

// parseUnescapedField reads up to the next delimiter or record terminator.
//
// Grammar:
//
//	UnescapedField = { Char | "\" AnyChar } ;
//
// The backslash form is only recognised with RecognizeBackslashAsEscape.
func parseUnescapedField(s *state) (string, *ParseError) {
	var raw, sanitized strings.Builder
	escaped := false

	for {
		r, ok := s.chars.Peek(0)
		if !ok {
			break
		}
		if escaped {
			escaped = false
		} else if r == tokenizer.Backslash && s.cfg.RecognizeBackslashAsEscape {
			escaped = true
			raw.WriteRune(r)
			s.chars.Next()
			continue
		} else if s.isFieldBoundary(r) {
			break
		}
		raw.WriteRune(r)
		sanitized.WriteRune(r)
		s.chars.Next()
	}

	if escaped {
		return "", newParseError(ErrIncompleteField, s.progress())
	}
	if s.cfg.SanitizeFields {
		return sanitized.String(), nil
	}
	return raw.String(), nil
}

// parseEscapedField reads a quoted field including its closing quote.
//
// Grammar:
//
//	EscapedField = [ "=" ] '"' { QuotedChar | '""' | "\" AnyChar } '"' ;
//
// The leading "=" is only recognised with RecognizeLeadingEqualSign, the backslash form
// only with RecognizeBackslashAsEscape.
func parseEscapedField(s *state) (string, *ParseError) {
	var raw, sanitized strings.Builder

	if r, ok := s.chars.Peek(0); ok && r == tokenizer.Equal && s.cfg.RecognizeLeadingEqualSign {
		s.chars.Next()
		raw.WriteRune(tokenizer.Equal)
	}

	if r, ok := s.chars.Next(); !ok || r != tokenizer.DoubleQuote {
		panic("dsv: escaped field does not start with a double quote")
	}
	raw.WriteRune(tokenizer.DoubleQuote)

	escaped := false
	for {
		r, ok := s.chars.Peek(0)
		if !ok {
			break
		}

		if escaped {
			escaped = false
		} else if r == tokenizer.Backslash && s.cfg.RecognizeBackslashAsEscape {
			escaped = true
			raw.WriteRune(r)
			s.chars.Next()
			continue
		} else if r == tokenizer.DoubleQuote {
			next, ok := s.chars.Peek(1)
			if !ok || next != tokenizer.DoubleQuote {
				// closing quote
				break
			}
			raw.WriteString(`""`)
			sanitized.WriteRune(tokenizer.DoubleQuote)
			s.chars.Next()
			s.chars.Next()
			continue
		}

		raw.WriteRune(r)
		sanitized.WriteRune(r)
		s.chars.Next()
	}

	if escaped {
		return "", newParseError(ErrIncompleteField, s.progress())
	}

	r, ok := s.chars.Peek(0)
	if !ok {
		return "", newParseError(ErrUnexpectedFieldTerminator, s.progress())
	}
	if r != tokenizer.DoubleQuote {
		return "", newParseErrorAt(ErrUnexpectedFieldTerminator, r, s.progress())
	}
	s.chars.Next()
	raw.WriteRune(tokenizer.DoubleQuote)

	if s.cfg.SanitizeFields {
		return sanitized.String(), nil
	}
	return raw.String(), nil
}
