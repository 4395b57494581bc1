package dsv

import (
	"strings"

	"github.com/shapestone/shape-dsv/internal/tokenizer"
)

// parseComment parses a comment line and reports it through OnReadComment.
//
// Grammar:
//
//	Comment = Marker { Char | "\" AnyChar } ;
//
// The comment ends at, without consuming, the next record terminator. The raw text keeps
// the marker; the sanitized text drops it and collapses backslash escapes.
func parseComment(s *state) Disposition {
	marker := s.cfg.Comment
	if r, ok := s.chars.Next(); !ok || r != marker {
		panic("dsv: comment does not start with the comment marker")
	}

	var raw, sanitized strings.Builder
	raw.WriteRune(marker)

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
		} else if s.isTerminator(r) {
			break
		}
		raw.WriteRune(r)
		sanitized.WriteRune(r)
		s.chars.Next()
	}

	progress := s.recordProgress()
	if escaped {
		return Fail(newParseError(ErrIncompleteField, progress))
	}

	text := raw.String()
	if s.cfg.SanitizeFields {
		text = sanitized.String()
	}
	if s.cfg.TrimWhitespace {
		text = strings.TrimFunc(text, isSpaceOrNewline)
	}
	return s.readComment(text, progress)
}

func isSpaceOrNewline(r rune) bool {
	return tokenizer.IsWhitespace(r) || tokenizer.IsNewline(r)
}
