package dsv

// parseDocument parses records until the input is exhausted or a callback stops it.
//
// Grammar:
//
//	Document = { Record } ;
//
// A trailing record terminator does not start an empty record; any character after it does.
func parseDocument(s *state) Disposition {
	d := s.beginDocument()

	for d.IsContinue() && !s.chars.Done() {
		d = parseRecord(s)

		if d.IsContinue() && !s.chars.Done() {
			s.record++
		}
	}

	s.endDocument(s.recordProgress(), d.Err())
	return d
}
