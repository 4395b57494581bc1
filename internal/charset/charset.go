// Package charset converts between encoded bytes and the UTF-8 text the parser consumes.
package charset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned by Lookup for names with no supported encoding.
var ErrUnknownEncoding = errors.New("unknown text encoding")

// Lookup returns the encoding registered under an IANA name or alias.
// The empty name selects UTF-8.
func Lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	// ianaindex knows some names it has no implementation for
	if enc == nil {
		return nil, fmt.Errorf("%w: %q is not supported", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// NewReader returns a reader that decodes r from enc into UTF-8.
// A leading byte-order mark overrides enc and is removed from the output.
func NewReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == nil {
		enc = unicode.UTF8
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))
}

// NewWriter returns a writer that encodes UTF-8 text into enc before writing it to w.
// The caller must Close the returned writer to flush any partially encoded input.
// Encodings configured to use a byte-order mark emit it on the first write.
func NewWriter(w io.Writer, enc encoding.Encoding) io.WriteCloser {
	if enc == nil {
		enc = unicode.UTF8
	}
	return transform.NewWriter(w, enc.NewEncoder())
}
