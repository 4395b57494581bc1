package dsv_test

import (
	"testing"

	"github.com/shapestone/shape-dsv/pkg/dsv"
)

func TestSnifferDetectDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		sample   string
		expected rune
	}{
		{name: "comma delimited", sample: "a,b,c\n1,2,3\n4,5,6", expected: ','},
		{name: "tab delimited", sample: "a\tb\tc\n1\t2\t3\n4\t5\t6", expected: '\t'},
		{name: "semicolon delimited", sample: "a;b;c\n1;2;3\n4;5;6", expected: ';'},
		{name: "pipe delimited", sample: "a|b|c\n1|2|3\n4|5|6", expected: '|'},
		{name: "colon delimited", sample: "a:b\n1:2", expected: ':'},
		{name: "empty sample defaults to comma", sample: "", expected: ','},
		{name: "single line comma", sample: "a,b,c", expected: ','},
		{name: "mixed but more commas", sample: "a,b,c\n1,2,3\n4;5;6", expected: ','},
		{name: "quoted commas ignored", sample: "\"a;b;c\";d\n1;2", expected: ';'},
		{name: "comment lines ignored", sample: "# a;b;c;d;e\na,b\n1,2", expected: ','},
		{name: "crlf lines", sample: "a;b\r\n1;2\r\n", expected: ';'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dsv.NewSniffer(tt.sample).DetectDelimiter()
			if got != tt.expected {
				t.Errorf("DetectDelimiter() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSnifferHasHeader(t *testing.T) {
	tests := []struct {
		name     string
		sample   string
		expected bool
	}{
		{name: "identifiers", sample: "name,age,email\nJohn,30,john@example.com", expected: true},
		{name: "title case", sample: "First Name;Last Name\nJohn;Smith", expected: true},
		{name: "camel case", sample: "firstName,lastName\nJohn,Smith", expected: true},
		{name: "quoted header", sample: "\"id\",\"total\"\n1,2.50", expected: true},
		{name: "numeric first line", sample: "1,2,3\n4,5,6", expected: false},
		{name: "dates and emails", sample: "2024-01-02,a@b.c\n2024-01-03,d@e.f", expected: false},
		{name: "single line", sample: "name,age", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dsv.NewSniffer(tt.sample).HasHeader()
			if got != tt.expected {
				t.Errorf("HasHeader() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSnifferConfig(t *testing.T) {
	s := dsv.NewSniffer("# exported\nid;name\n1;Alice\n")
	if !s.HasComments() {
		t.Error("HasComments() = false")
	}

	cfg := s.Config()
	if cfg.Delimiter != ';' || !cfg.RecognizeComments || !cfg.SanitizeFields {
		t.Errorf("Config() = %+v", cfg)
	}

	doc, err := dsv.Components("# exported\nid;name\n1;Alice\n", cfg, s.HasHeader())
	if err != nil {
		t.Fatalf("Components() error = %v", err)
	}
	if doc.Len() != 2 {
		t.Errorf("Len() = %d, want 2", doc.Len())
	}
	r, _ := doc.GetRecord(1)
	if f, ok := r.GetByKey("name"); !ok || f.Value != "Alice" {
		t.Errorf("GetByKey(name) = %+v, %v", f, ok)
	}
}
