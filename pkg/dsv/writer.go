package dsv

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shapestone/shape-dsv/internal/charset"
	"github.com/shapestone/shape-dsv/internal/tokenizer"
	"golang.org/x/text/encoding"
)

const defaultBufferSize = 1024

// WriterConfig configures the dialect a Writer emits.
type WriterConfig struct {
	// Delimiter separates fields. Default: ','
	Delimiter rune

	// RecordTerminator ends every record. Default: '\n'
	RecordTerminator rune

	// Comment introduces comment lines. Default: '#'
	Comment rune

	// UseBackslashAsEscape declares that the output uses backslash escapes, so the
	// backslash may not be the delimiter or terminator.
	UseBackslashAsEscape bool

	// AllowComments enables WriteComment. When false comments are silently dropped.
	AllowComments bool

	// Encoding transcodes the output. Default: UTF-8
	Encoding encoding.Encoding
}

// DefaultWriterConfig returns the default writer configuration.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		Delimiter:        ',',
		RecordTerminator: '\n',
		Comment:          tokenizer.Octothorpe,
	}
}

func (c WriterConfig) normalized() WriterConfig {
	if c.Delimiter == 0 {
		c.Delimiter = ','
	}
	if c.RecordTerminator == 0 {
		c.RecordTerminator = '\n'
	}
	if c.Comment == 0 {
		c.Comment = tokenizer.Octothorpe
	}
	return c
}

// Validate checks that the delimiter, terminator and enabled markers are distinct.
func (c WriterConfig) Validate() error {
	c = c.normalized()

	if c.Delimiter == c.RecordTerminator {
		return &WriterError{Kind: ErrIllegalRecordTerminator}
	}
	if c.AllowComments && c.Delimiter == c.Comment {
		return &WriterError{Kind: ErrIllegalDelimiter}
	}
	if c.AllowComments && c.RecordTerminator == c.Comment {
		return &WriterError{Kind: ErrIllegalRecordTerminator}
	}
	if c.UseBackslashAsEscape && c.Delimiter == tokenizer.Backslash {
		return &WriterError{Kind: ErrIllegalDelimiter}
	}
	if c.UseBackslashAsEscape && c.RecordTerminator == tokenizer.Backslash {
		return &WriterError{Kind: ErrIllegalRecordTerminator}
	}
	return nil
}

// Writer serializes records, keyed records and comments.
//
// Field text is written verbatim: the Writer does not quote or escape. Use Quote or
// Render when values may contain the delimiter, a terminator or a quote.
//
// Output is buffered; Close flushes it. Like bufio.Writer, the first write error is
// remembered and returned by every later call.
type Writer struct {
	cfg     WriterConfig
	dst     *bufio.Writer
	encoder io.Closer
	sink    io.Writer

	field    int
	records  int
	keys     []string
	haveKeys bool

	closed bool
	err    error
}

// NewWriter creates a Writer emitting to w in the dialect described by cfg.
func NewWriter(w io.Writer, cfg WriterConfig) (*Writer, error) {
	if w == nil {
		return nil, &WriterError{Kind: ErrInvalidOutput}
	}
	cfg = cfg.normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	wr := &Writer{cfg: cfg, sink: w}
	out := w
	if cfg.Encoding != nil {
		enc := charset.NewWriter(w, cfg.Encoding)
		wr.encoder = enc
		out = enc
	}
	wr.dst = bufio.NewWriterSize(out, defaultBufferSize)
	return wr, nil
}

func (w *Writer) check() error {
	if w.closed {
		return &WriterError{Kind: ErrWriterClosed}
	}
	return w.err
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.dst.WriteString(s)
}

func (w *Writer) writeRune(r rune) {
	if w.err != nil {
		return
	}
	_, w.err = w.dst.WriteRune(r)
}

// WriteField appends a field to the current record, preceded by a delimiter unless it
// is the record's first field. Fields of the first record become the header keys.
func (w *Writer) WriteField(value string) error {
	if err := w.check(); err != nil {
		return err
	}
	if !w.haveKeys {
		w.keys = append(w.keys, value)
	}
	if w.field > 0 {
		w.writeRune(w.cfg.Delimiter)
	}
	w.writeString(value)
	w.field++
	return w.err
}

// FinishRecord terminates the current record.
func (w *Writer) FinishRecord() error {
	if err := w.check(); err != nil {
		return err
	}
	w.finishRecord()
	return w.err
}

func (w *Writer) finishRecord() {
	w.writeRune(w.cfg.RecordTerminator)
	if !w.haveKeys && w.field > 0 {
		w.haveKeys = true
	}
	w.field = 0
	w.records++
}

// finishRecordIfNecessary terminates a record left open by WriteField.
func (w *Writer) finishRecordIfNecessary() {
	if w.field > 0 {
		w.finishRecord()
	}
}

// WriteRecord writes a complete record.
func (w *Writer) WriteRecord(values ...string) error {
	if err := w.check(); err != nil {
		return err
	}
	w.finishRecordIfNecessary()
	for _, v := range values {
		if err := w.WriteField(v); err != nil {
			return err
		}
	}
	return w.FinishRecord()
}

// WriteFields writes a record whose values are looked up by the header keys
// established by the first record. It fails with ErrInvalidRecord if no header has been
// written and with ErrMissingField if fields lacks a key; nothing is written on failure.
func (w *Writer) WriteFields(fields map[string]string) error {
	if err := w.check(); err != nil {
		return err
	}
	if !w.haveKeys {
		return &WriterError{Kind: ErrInvalidRecord}
	}

	values := make([]string, len(w.keys))
	for i, key := range w.keys {
		v, ok := fields[key]
		if !ok {
			return &WriterError{Kind: ErrMissingField, Key: key, Suggestion: suggestKey(key, fields)}
		}
		values[i] = v
	}
	return w.WriteRecord(values...)
}

// suggestKey finds a supplied key that resembles the missing one.
func suggestKey(missing string, fields map[string]string) string {
	candidates := make([]string, 0, len(fields))
	for k := range fields {
		candidates = append(candidates, k)
	}
	ranks := fuzzy.RankFindFold(missing, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

// WriteComment writes text as one comment line per line of text.
// It does nothing unless AllowComments is set.
func (w *Writer) WriteComment(text string) error {
	if err := w.check(); err != nil {
		return err
	}
	if !w.cfg.AllowComments {
		return nil
	}

	w.finishRecordIfNecessary()
	for _, line := range strings.Split(text, string(w.cfg.RecordTerminator)) {
		w.writeRune(w.cfg.Comment)
		w.writeString(line)
		w.writeRune(w.cfg.RecordTerminator)
	}
	w.records++
	return w.err
}

// Flush writes any buffered output to the underlying sink.
func (w *Writer) Flush() error {
	if err := w.check(); err != nil {
		return err
	}
	w.err = w.dst.Flush()
	return w.err
}

// Close flushes buffered output and releases the sink: an encoding stage is closed, and
// so is the sink itself if it implements io.Closer. An open record is not terminated.
// Calling Close more than once is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	err := w.err
	if ferr := w.dst.Flush(); err == nil {
		err = ferr
	}
	if w.encoder != nil {
		if cerr := w.encoder.Close(); err == nil {
			err = cerr
		}
	}
	if c, ok := w.sink.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Records returns the number of records and comments written so far.
func (w *Writer) Records() int { return w.records }
