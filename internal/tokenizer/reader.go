package tokenizer

import (
	"bufio"
	"io"
)

// readerSource decodes characters from an io.Reader one rune at a time.
// A multi-byte character is never split across reads, and every character
// reports the number of source bytes it occupied.
type readerSource struct {
	r   *bufio.Reader
	err error
}

func newReaderSource(r io.Reader) *readerSource {
	return &readerSource{r: bufio.NewReader(r)}
}

func (s *readerSource) next() (rune, int, bool) {
	if s.err != nil {
		return 0, 0, false
	}
	r, size, err := s.r.ReadRune()
	if err != nil {
		s.err = err
		return 0, 0, false
	}
	return r, size, true
}

// Err returns the first read error other than io.EOF.
func (s *readerSource) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}
