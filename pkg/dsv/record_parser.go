package dsv

// parseRecord parses one record: either a comment line or a list of fields.
//
// Grammar:
//
//	Record = ( Comment | Field { Delimiter Field } ) [ Terminator ] ;
//
// The record is bracketed by OnBeginRecord and OnEndRecord. Any verdict other than
// Continue ends the record immediately; OnEndRecord only fires for complete records.
func parseRecord(s *state) Disposition {
	s.field = 0

	d := s.beginRecord()
	if !d.IsContinue() {
		return d
	}

	if s.startsComment() {
		d = parseComment(s)
		if d.IsContinue() {
			s.consumeTerminator()
		}
	} else {
		d = parseFields(s)
	}

	if !d.IsContinue() {
		return d
	}
	return s.endRecord()
}

func (s *state) startsComment() bool {
	if !s.cfg.RecognizeComments {
		return false
	}
	r, ok := s.chars.Peek(0)
	return ok && r == s.cfg.Comment
}

// parseFields parses delimiter-separated fields up to and including the record terminator.
func parseFields(s *state) Disposition {
	for {
		if d := parseField(s); !d.IsContinue() {
			return d
		}

		r, ok := s.chars.Peek(0)
		switch {
		case !ok:
			// end of input terminates the record
			return Continue
		case s.isDelimiter(r):
			s.chars.Next()
			s.field++
		case s.isTerminator(r):
			s.consumeTerminator()
			return Continue
		default:
			return Fail(newParseErrorAt(ErrUnexpectedDelimiter, r, s.progress()))
		}
	}
}
