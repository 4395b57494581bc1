package dsv

import (
	"io"
	"slices"
	"strings"
)

// Field is one value of a record, optionally named by a header key.
type Field struct {
	Key    string
	HasKey bool
	Value  string
}

// NewField creates an unkeyed field.
func NewField(value string) Field {
	return Field{Value: value}
}

// NewKeyedField creates a field named by key.
func NewKeyedField(key, value string) Field {
	return Field{Key: key, HasKey: true, Value: value}
}

// Record is either a comment or an ordered list of fields.
type Record struct {
	fields    []Field
	comment   string
	isComment bool
	marker    rune
}

// NewRecord creates a record of unkeyed fields.
func NewRecord(values ...string) Record {
	fields := make([]Field, len(values))
	for i, v := range values {
		fields[i] = NewField(v)
	}
	return Record{fields: fields}
}

// NewRecordFromFields creates a record from fields, keyed or not.
func NewRecordFromFields(fields []Field) Record {
	return Record{fields: slices.Clone(fields)}
}

// NewComment creates a comment record.
func NewComment(text string) Record {
	return Record{comment: text, isComment: true}
}

// IsComment reports whether r is a comment.
func (r Record) IsComment() bool {
	return r.isComment
}

// Comment returns the comment text and true if r is a comment.
func (r Record) Comment() (string, bool) {
	return r.comment, r.isComment
}

// CommentText returns the text of a comment without the comment marker. A comment read
// without SanitizeFields keeps its marker in Comment; CommentText drops it.
func (r Record) CommentText() string {
	if r.marker == 0 {
		return r.comment
	}
	return strings.TrimPrefix(r.comment, string(r.marker))
}

// Fields returns the fields of r. Comments have no fields.
func (r Record) Fields() []Field {
	return r.fields
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.fields)
}

// Get returns the field at index.
func (r Record) Get(index int) (Field, bool) {
	if index < 0 || index >= len(r.fields) {
		return Field{}, false
	}
	return r.fields[index], true
}

// GetByKey returns the first field named key.
func (r Record) GetByKey(key string) (Field, bool) {
	for _, f := range r.fields {
		if f.HasKey && f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Values returns the field values in order.
func (r Record) Values() []string {
	values := make([]string, len(r.fields))
	for i, f := range r.fields {
		values[i] = f.Value
	}
	return values
}

// Document is an ordered list of records.
// All setter methods return *Document to enable method chaining.
type Document struct {
	keys    []string
	records []Record
}

// NewDocument creates a Document holding records.
func NewDocument(records ...Record) *Document {
	return &Document{records: slices.Clone(records)}
}

// AddRecord appends a record.
func (d *Document) AddRecord(r Record) *Document {
	d.records = append(d.records, r)
	return d
}

// SetKeys records the header keys the document's fields are named by.
func (d *Document) SetKeys(keys []string) *Document {
	d.keys = slices.Clone(keys)
	return d
}

// Keys returns the header keys, or nil if the document is not keyed.
func (d *Document) Keys() []string {
	return d.keys
}

// Records returns all records.
func (d *Document) Records() []Record {
	return d.records
}

// Len returns the number of records.
func (d *Document) Len() int {
	return len(d.records)
}

// GetRecord returns the record at index.
func (d *Document) GetRecord(index int) (Record, bool) {
	if index < 0 || index >= len(d.records) {
		return Record{}, false
	}
	return d.records[index], true
}

// WriteTo writes the document through w. A keyed document writes its keys first.
// Field text is written verbatim. Comments are written with CommentText, so the writer's
// marker is not doubled.
func (d *Document) WriteTo(w *Writer) error {
	if len(d.keys) > 0 {
		if err := w.WriteRecord(d.keys...); err != nil {
			return err
		}
	}
	for _, r := range d.records {
		var err error
		if r.IsComment() {
			err = w.WriteComment(r.CommentText())
		} else {
			err = w.WriteRecord(r.Values()...)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Components parses input into a Document.
//
// With useFirstRecordAsKeys the first non-comment record names the fields of every
// following record and is not itself part of the Document; a record with a different
// number of fields fails the parse with ErrIllegalNumberOfFields.
//
// The callbacks of cfg are replaced by the collector.
func Components(input string, cfg Config, useFirstRecordAsKeys bool) (*Document, error) {
	return collect(NewParser(input, cfg), useFirstRecordAsKeys)
}

// ComponentsReader is like Components but streams its input from r.
func ComponentsReader(r io.Reader, cfg Config, useFirstRecordAsKeys bool) (*Document, error) {
	return collect(NewParserFromReader(r, cfg), useFirstRecordAsKeys)
}

func collect(p *Parser, useFirstRecordAsKeys bool) (*Document, error) {
	doc := NewDocument()
	agg := newAggregator(useFirstRecordAsKeys, func(r Record) { doc.AddRecord(r) })
	agg.bind(&p.cfg)

	if err := p.Parse(); err != nil {
		return nil, err
	}
	if agg.haveKeys {
		doc.SetKeys(agg.keys)
	}
	return doc, nil
}

// aggregator turns parse events into records.
type aggregator struct {
	useKeys  bool
	keys     []string
	haveKeys bool
	emit     func(Record)
	marker   rune

	fields    []Field
	comment   string
	isComment bool
}

func newAggregator(useKeys bool, emit func(Record)) *aggregator {
	return &aggregator{useKeys: useKeys, emit: emit}
}

// bind installs the aggregator's callbacks on cfg.
func (a *aggregator) bind(cfg *Config) {
	cfg.OnBeginDocument = nil
	cfg.OnEndDocument = nil
	cfg.OnBeginRecord = a.beginRecord
	cfg.OnEndRecord = a.endRecord
	cfg.OnReadField = a.readField
	cfg.OnReadComment = a.readComment

	a.marker = 0
	if !cfg.SanitizeFields {
		a.marker = cfg.Comment
	}
}

func (a *aggregator) beginRecord(Progress) Disposition {
	a.fields = nil
	a.comment = ""
	a.isComment = false
	return Continue
}

func (a *aggregator) readField(value string, _ Progress) Disposition {
	if a.haveKeys && len(a.fields) < len(a.keys) {
		a.fields = append(a.fields, NewKeyedField(a.keys[len(a.fields)], value))
	} else {
		a.fields = append(a.fields, NewField(value))
	}
	return Continue
}

func (a *aggregator) readComment(text string, _ Progress) Disposition {
	a.comment = text
	a.isComment = true
	return Continue
}

func (a *aggregator) endRecord(progress Progress) Disposition {
	if a.isComment {
		a.emit(Record{comment: a.comment, isComment: true, marker: a.marker})
		return Continue
	}

	if !a.useKeys {
		a.emit(Record{fields: a.fields})
		return Continue
	}

	if !a.haveKeys {
		a.keys = make([]string, len(a.fields))
		for i, f := range a.fields {
			a.keys[i] = f.Value
		}
		a.haveKeys = true
		return Continue
	}

	if len(a.fields) != len(a.keys) {
		progress.Field = max(len(a.fields)-1, 0)
		return Fail(newParseError(ErrIllegalNumberOfFields, progress))
	}

	a.emit(Record{fields: a.fields})
	return Continue
}
