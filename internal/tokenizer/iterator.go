package tokenizer

import (
	"io"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// char is a decoded character and the number of source bytes it occupied.
type char struct {
	r    rune
	size int
}

// Iterator is a peekable character source.
//
// Characters are pulled lazily from the underlying source. Peeked characters are held in a
// small buffer until they are consumed by Next; peeking never consumes.
//
// An Iterator is owned by a single parse and is not safe for concurrent use.
type Iterator struct {
	next    func() (rune, int, bool)
	reader  *readerSource
	pending []char
	count   uint64
	bytes   uint64
}

// NewIterator creates an Iterator over an existing Shape stream.
// The iterator reports zero bytes consumed.
func NewIterator(stream tokenizer.Stream) *Iterator {
	return &Iterator{
		next: func() (rune, int, bool) {
			r, ok := stream.NextChar()
			return r, 0, ok
		},
		pending: make([]char, 0, 4),
	}
}

// NewIteratorFromString creates an Iterator over an in-memory string.
func NewIteratorFromString(input string) *Iterator {
	return NewIterator(tokenizer.NewStream(input))
}

// NewIteratorFromReader creates an Iterator that decodes UTF-8 text from r.
// The returned iterator reports the number of bytes of r taken up by the
// characters consumed so far. Invalid bytes decode to utf8.RuneError.
func NewIteratorFromReader(r io.Reader) *Iterator {
	src := newReaderSource(r)
	return &Iterator{
		next:    src.next,
		reader:  src,
		pending: make([]char, 0, 4),
	}
}

// Next consumes and returns the next character.
// It returns false when the source is exhausted.
func (it *Iterator) Next() (rune, bool) {
	var c char
	if len(it.pending) > 0 {
		c = it.pending[0]
		it.pending = it.pending[1:]
	} else {
		r, size, ok := it.next()
		if !ok {
			return 0, false
		}
		c = char{r: r, size: size}
	}
	it.count++
	it.bytes += uint64(c.size)
	return c.r, true
}

// Peek returns the character offset positions ahead without consuming it.
// Offset 0 is the next unconsumed character. It returns false if the source is
// exhausted before reaching offset.
func (it *Iterator) Peek(offset int) (rune, bool) {
	if offset < 0 {
		panic("tokenizer: peek offset cannot be negative")
	}

	for len(it.pending) <= offset {
		r, size, ok := it.next()
		if !ok {
			return 0, false
		}
		it.pending = append(it.pending, char{r: r, size: size})
	}

	return it.pending[offset].r, true
}

// Done reports whether the source has no more characters.
func (it *Iterator) Done() bool {
	_, ok := it.Peek(0)
	return !ok
}

// Characters returns the number of characters consumed so far.
func (it *Iterator) Characters() uint64 {
	return it.count
}

// Bytes returns the number of source bytes taken up by the characters consumed
// so far, or zero if the source cannot report it.
func (it *Iterator) Bytes() uint64 {
	return it.bytes
}

// Err returns the read error that ended a reader source early, if any.
func (it *Iterator) Err() error {
	if it.reader == nil {
		return nil
	}
	return it.reader.Err()
}
