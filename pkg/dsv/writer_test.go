package dsv_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shapestone/shape-dsv/pkg/dsv"
	"golang.org/x/text/encoding/charmap"
)

func newTestWriter(t *testing.T, cfg dsv.WriterConfig) (*dsv.Writer, *strings.Builder) {
	t.Helper()
	var out strings.Builder
	w, err := dsv.NewWriter(&out, cfg)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	return w, &out
}

// TestWriterConfigValidate tests writer dialect validation.
func TestWriterConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  dsv.WriterConfig
		kind error
	}{
		{name: "default", cfg: dsv.DefaultWriterConfig()},
		{name: "zero value", cfg: dsv.WriterConfig{}},
		{name: "delimiter is terminator", cfg: dsv.WriterConfig{Delimiter: '\n'}, kind: dsv.ErrIllegalRecordTerminator},
		{name: "octothorpe delimiter without comments", cfg: dsv.WriterConfig{Delimiter: '#'}},
		{name: "octothorpe delimiter with comments", cfg: dsv.WriterConfig{Delimiter: '#', AllowComments: true}, kind: dsv.ErrIllegalDelimiter},
		{name: "octothorpe terminator with comments", cfg: dsv.WriterConfig{RecordTerminator: '#', AllowComments: true}, kind: dsv.ErrIllegalRecordTerminator},
		{name: "backslash delimiter with escapes", cfg: dsv.WriterConfig{Delimiter: '\\', UseBackslashAsEscape: true}, kind: dsv.ErrIllegalDelimiter},
		{name: "backslash terminator with escapes", cfg: dsv.WriterConfig{RecordTerminator: '\\', UseBackslashAsEscape: true}, kind: dsv.ErrIllegalRecordTerminator},
		{name: "backslash delimiter without escapes", cfg: dsv.WriterConfig{Delimiter: '\\'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.kind == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.kind) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.kind)
			}
			var werr *dsv.WriterError
			if !errors.As(err, &werr) {
				t.Errorf("Validate() error is %T, want *dsv.WriterError", err)
			}
			if _, err := dsv.NewWriter(&strings.Builder{}, tt.cfg); !errors.Is(err, tt.kind) {
				t.Errorf("NewWriter() error = %v, want %v", err, tt.kind)
			}
		})
	}
}

// TestNewWriterNilOutput tests that a Writer needs a sink.
func TestNewWriterNilOutput(t *testing.T) {
	if _, err := dsv.NewWriter(nil, dsv.DefaultWriterConfig()); !errors.Is(err, dsv.ErrInvalidOutput) {
		t.Errorf("NewWriter(nil) error = %v, want ErrInvalidOutput", err)
	}
}

// TestWriterFields tests incremental field writing.
func TestWriterFields(t *testing.T) {
	w, out := newTestWriter(t, dsv.WriterConfig{Delimiter: ';', RecordTerminator: '\r'})

	for _, f := range []string{"a", "b", "c"} {
		if err := w.WriteField(f); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.FinishRecord(); err != nil {
		t.Fatal(err)
	}
	// a record left open by WriteField is terminated by the next WriteRecord
	if err := w.WriteField("d"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteRecord("e", "f"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if want := "a;b;c\rd\re;f\r"; out.String() != want {
		t.Errorf("written = %q, want %q", out.String(), want)
	}
	if w.Records() != 3 {
		t.Errorf("Records() = %d, want 3", w.Records())
	}
}

// TestWriterKeyedFields tests writing records by header key.
func TestWriterKeyedFields(t *testing.T) {
	w, out := newTestWriter(t, dsv.DefaultWriterConfig())

	if err := w.WriteFields(map[string]string{"name": "Alice"}); !errors.Is(err, dsv.ErrInvalidRecord) {
		t.Fatalf("WriteFields() before header error = %v, want ErrInvalidRecord", err)
	}
	if err := w.WriteRecord("name", "age"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFields(map[string]string{"age": "30", "name": "Alice", "extra": "x"}); err != nil {
		t.Fatal(err)
	}

	err := w.WriteFields(map[string]string{"Name": "Bob", "age": "25"})
	if !errors.Is(err, dsv.ErrMissingField) {
		t.Fatalf("WriteFields() error = %v, want ErrMissingField", err)
	}
	var werr *dsv.WriterError
	if !errors.As(err, &werr) || werr.Key != "name" || werr.Suggestion != "Name" {
		t.Errorf("WriteFields() error = %#v, want key name with suggestion Name", err)
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	// the failed keyed write leaves no partial record behind
	if want := "name,age\nAlice,30\n"; out.String() != want {
		t.Errorf("written = %q, want %q", out.String(), want)
	}
}

// TestWriterComments tests comment output.
func TestWriterComments(t *testing.T) {
	tests := []struct {
		name string
		cfg  dsv.WriterConfig
		want string
	}{
		{name: "allowed", cfg: dsv.WriterConfig{AllowComments: true}, want: "a\n#one\n#two\nb\n"},
		{name: "custom marker", cfg: dsv.WriterConfig{AllowComments: true, Comment: ';'}, want: "a\n;one\n;two\nb\n"},
		{name: "not allowed", cfg: dsv.WriterConfig{}, want: "a\nb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, out := newTestWriter(t, tt.cfg)
			if err := w.WriteField("a"); err != nil {
				t.Fatal(err)
			}
			if err := w.WriteComment("one\ntwo"); err != nil {
				t.Fatal(err)
			}
			if err := w.WriteRecord("b"); err != nil {
				t.Fatal(err)
			}
			if err := w.Close(); err != nil {
				t.Fatal(err)
			}
			if out.String() != tt.want {
				t.Errorf("written = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

// TestWriterClose tests that writes fail after Close and that Close is idempotent.
func TestWriterClose(t *testing.T) {
	w, _ := newTestWriter(t, dsv.DefaultWriterConfig())
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	for name, write := range map[string]func() error{
		"WriteField":   func() error { return w.WriteField("a") },
		"WriteRecord":  func() error { return w.WriteRecord("a") },
		"WriteComment": func() error { return w.WriteComment("a") },
		"FinishRecord": w.FinishRecord,
		"Flush":        w.Flush,
	} {
		if err := write(); !errors.Is(err, dsv.ErrWriterClosed) {
			t.Errorf("%s after Close error = %v, want ErrWriterClosed", name, err)
		}
	}
}

type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

// TestWriterClosesSink tests that Close releases a closable sink.
func TestWriterClosesSink(t *testing.T) {
	sink := &closeRecorder{}
	w, err := dsv.NewWriter(sink, dsv.DefaultWriterConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteRecord("x"); err != nil {
		t.Fatal(err)
	}
	if sink.Len() != 0 {
		t.Error("output was not buffered")
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if !sink.closed {
		t.Error("sink was not closed")
	}
	if sink.String() != "x\n" {
		t.Errorf("written = %q", sink.String())
	}
}

// TestWriterEncoding tests transcoding output.
func TestWriterEncoding(t *testing.T) {
	var out bytes.Buffer
	w, err := dsv.NewWriter(&out, dsv.WriterConfig{Encoding: charmap.ISO8859_1})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteRecord("é", "ü"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if want := []byte("\xe9,\xfc\n"); !bytes.Equal(out.Bytes(), want) {
		t.Errorf("written = %q, want %q", out.Bytes(), want)
	}
}
