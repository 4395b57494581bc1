package dsv

import "github.com/shapestone/shape-dsv/internal/tokenizer"

// state is the run-state of a single parse: where the parser is and what it reads from.
// The dialect and callbacks live in cfg and are never modified.
type state struct {
	cfg    *Config
	chars  *tokenizer.Iterator
	record int
	field  int
}

func newState(cfg *Config, chars *tokenizer.Iterator) *state {
	return &state{cfg: cfg, chars: chars}
}

// progress locates the current record and field.
func (s *state) progress() Progress {
	return s.progressAt(s.record, s.field)
}

// recordProgress locates the current record without a field.
func (s *state) recordProgress() Progress {
	return s.progressAt(s.record, NoIndex)
}

func (s *state) progressAt(record, field int) Progress {
	return Progress{
		Bytes:      s.chars.Bytes(),
		Characters: s.chars.Characters(),
		Record:     record,
		Field:      field,
	}
}

func (s *state) isDelimiter(r rune) bool {
	return r == s.cfg.Delimiter
}

func (s *state) isTerminator(r rune) bool {
	return s.cfg.isTerminator(r)
}

// isFieldBoundary reports whether r ends an unescaped field.
func (s *state) isFieldBoundary(r rune) bool {
	return s.isDelimiter(r) || s.isTerminator(r)
}

// consumeTerminator consumes the record terminator at the head of the input, if any.
// CR LF is consumed as one terminator.
func (s *state) consumeTerminator() {
	r, ok := s.chars.Peek(0)
	if !ok || !s.isTerminator(r) {
		return
	}
	s.chars.Next()
	if r == '\r' {
		if next, ok := s.chars.Peek(0); ok && next == '\n' && s.isTerminator(next) {
			s.chars.Next()
		}
	}
}

func (s *state) beginDocument() Disposition {
	if s.cfg.OnBeginDocument == nil {
		return Continue
	}
	return s.cfg.OnBeginDocument()
}

func (s *state) endDocument(progress Progress, err *ParseError) {
	if s.cfg.OnEndDocument != nil {
		s.cfg.OnEndDocument(progress, err)
	}
}

func (s *state) beginRecord() Disposition {
	if s.cfg.OnBeginRecord == nil {
		return Continue
	}
	return s.cfg.OnBeginRecord(s.recordProgress())
}

func (s *state) endRecord() Disposition {
	if s.cfg.OnEndRecord == nil {
		return Continue
	}
	return s.cfg.OnEndRecord(s.recordProgress())
}

func (s *state) readField(value string) Disposition {
	if s.cfg.OnReadField == nil {
		return Continue
	}
	return s.cfg.OnReadField(value, s.progress())
}

func (s *state) readComment(text string, progress Progress) Disposition {
	if s.cfg.OnReadComment == nil {
		return Continue
	}
	return s.cfg.OnReadComment(text, progress)
}
