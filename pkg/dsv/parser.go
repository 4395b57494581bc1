package dsv

import (
	"fmt"
	"io"
	"os"

	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-dsv/internal/charset"
	"github.com/shapestone/shape-dsv/internal/tokenizer"
)

// Parser drives the document, record, field and comment parsers over one input and
// reports what it finds through the callbacks of its Config.
//
// A Parser reads its input once; Parse must not be called more than once.
type Parser struct {
	cfg   Config
	chars *tokenizer.Iterator
}

// NewParser creates a Parser for an in-memory string.
func NewParser(input string, cfg Config) *Parser {
	return newParser(tokenizer.NewIteratorFromString(input), cfg)
}

// NewParserFromReader creates a Parser that streams UTF-8 text from r.
// Progress events report the number of bytes of r taken up by the characters
// consumed so far.
func NewParserFromReader(r io.Reader, cfg Config) *Parser {
	return newParser(tokenizer.NewIteratorFromReader(r), cfg)
}

// NewParserFromStream creates a Parser over a pre-configured Shape stream.
func NewParserFromStream(stream shapetokenizer.Stream, cfg Config) *Parser {
	return newParser(tokenizer.NewIterator(stream), cfg)
}

func newParser(chars *tokenizer.Iterator, cfg Config) *Parser {
	return &Parser{
		cfg:   cfg.normalized(),
		chars: chars,
	}
}

// Parse validates the dialect and parses the whole input.
//
// It returns nil when the input was parsed completely or a callback returned Cancel,
// and a *ParseError when the dialect is invalid, the input is malformed, or a callback
// failed. Dialect errors are reported before any input is read.
func (p *Parser) Parse() error {
	if err := p.cfg.Validate(); err != nil {
		return err
	}

	d := parseDocument(newState(&p.cfg, p.chars))
	if err := d.Err(); err != nil {
		return err
	}
	if err := p.chars.Err(); err != nil {
		return fmt.Errorf("dsv: read: %w", err)
	}
	return nil
}

// Parse parses an in-memory string.
//
// Example:
//
//	cfg := dsv.DefaultConfig()
//	cfg.OnReadField = func(field string, p dsv.Progress) dsv.Disposition {
//	    fmt.Println(p.Record, p.Field, field)
//	    return dsv.Continue
//	}
//	err := dsv.Parse("a,b\nc,d", cfg)
func Parse(input string, cfg Config) error {
	return NewParser(input, cfg).Parse()
}

// ParseReader parses UTF-8 text streamed from r.
func ParseReader(r io.Reader, cfg Config) error {
	return NewParserFromReader(r, cfg).Parse()
}

// ParseFile parses the file at path, decoding it from the named text encoding.
// The empty encoding name selects UTF-8. A byte-order mark at the start of the file
// overrides the named encoding and is not reported as content. Progress events count
// bytes of the decoded UTF-8 text.
func ParseFile(path, encodingName string, cfg Config) error {
	enc, err := charset.Lookup(encodingName)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("dsv: open: %w", err)
	}
	defer f.Close()

	return NewParserFromReader(charset.NewReader(f, enc), cfg).Parse()
}
