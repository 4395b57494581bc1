package dsv

import (
	"errors"
	"fmt"
)

// Error kinds. A *ParseError or *WriterError unwraps to one of these, so callers can
// test for them with errors.Is.
var (
	// ErrIllegalDelimiter indicates the delimiter collides with another control character
	// of the dialect.
	ErrIllegalDelimiter = errors.New("illegal delimiter")

	// ErrUnexpectedFieldTerminator indicates a quoted field was not closed where expected.
	ErrUnexpectedFieldTerminator = errors.New("unexpected field terminator")

	// ErrUnexpectedDelimiter indicates a field was followed by something other than a
	// delimiter or record terminator.
	ErrUnexpectedDelimiter = errors.New("unexpected delimiter")

	// ErrIncompleteField indicates the input ended in the middle of a backslash escape.
	ErrIncompleteField = errors.New("incomplete field")

	// ErrIllegalNumberOfFields indicates a record's field count differs from the header's.
	ErrIllegalNumberOfFields = errors.New("illegal number of fields")

	// ErrIllegalRecordTerminator indicates the record terminator collides with the
	// delimiter or an enabled marker character.
	ErrIllegalRecordTerminator = errors.New("illegal record terminator")

	// ErrInvalidRecord indicates a keyed write before any header record was written.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrMissingField indicates a keyed write lacks one of the header keys.
	ErrMissingField = errors.New("missing field")

	// ErrInvalidOutput indicates a Writer was created without an output sink.
	ErrInvalidOutput = errors.New("invalid output")

	// ErrWriterClosed indicates a write after Close.
	ErrWriterClosed = errors.New("writer is closed")
)

// ParseError is the terminal failure of a parse.
// It carries the error kind, the offending character when there is one, and the
// location of the failure.
type ParseError struct {
	// Kind is one of the Err* sentinel values.
	Kind error
	// Char is the offending character; only meaningful when HasChar is true.
	Char rune
	// HasChar reports whether Char is set.
	HasChar bool
	// Progress locates the failure.
	Progress Progress
}

func newParseError(kind error, progress Progress) *ParseError {
	return &ParseError{Kind: kind, Progress: progress}
}

func newParseErrorAt(kind error, char rune, progress Progress) *ParseError {
	return &ParseError{Kind: kind, Char: char, HasChar: true, Progress: progress}
}

// Error returns a formatted message with the failure location.
func (e *ParseError) Error() string {
	switch {
	case e.HasChar:
		return fmt.Sprintf("dsv: %v %q at %s", e.Kind, e.Char, e.Progress)
	case errors.Is(e.Kind, ErrUnexpectedFieldTerminator):
		return fmt.Sprintf("dsv: %v (end of input) at %s", e.Kind, e.Progress)
	default:
		return fmt.Sprintf("dsv: %v at %s", e.Kind, e.Progress)
	}
}

// Unwrap returns the error kind.
func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Character returns the offending character, if the error kind has one.
func (e *ParseError) Character() (rune, bool) {
	return e.Char, e.HasChar
}

// Matches reports whether two errors have the same kind and character and loosely
// matching progress (see Progress.Matches).
func (e *ParseError) Matches(other *ParseError) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Kind == other.Kind &&
		e.HasChar == other.HasChar &&
		e.Char == other.Char &&
		e.Progress.Matches(other.Progress)
}

// WriterError is returned by Writer construction and keyed writes.
type WriterError struct {
	// Kind is one of the Err* sentinel values.
	Kind error
	// Key is the missing header key for ErrMissingField.
	Key string
	// Suggestion is a supplied key that resembles Key, if any.
	Suggestion string
}

// Error returns the formatted error message.
func (e *WriterError) Error() string {
	switch {
	case e.Key == "":
		return fmt.Sprintf("dsv: %v", e.Kind)
	case e.Suggestion != "":
		return fmt.Sprintf("dsv: %v %q (did you mean %q?)", e.Kind, e.Key, e.Suggestion)
	default:
		return fmt.Sprintf("dsv: %v %q", e.Kind, e.Key)
	}
}

// Unwrap returns the error kind.
func (e *WriterError) Unwrap() error {
	return e.Kind
}
