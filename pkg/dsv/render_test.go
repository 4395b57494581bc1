package dsv_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-dsv/pkg/dsv"
)

// TestRender tests rendering parsed documents back to text.
func TestRender(t *testing.T) {
	sanitized := dsv.Config{SanitizeFields: true, RecognizeComments: true}

	tests := []struct {
		name  string
		input string
		cfg   dsv.WriterConfig
		want  string
	}{
		{name: "simple", input: "name,age\nAlice,30\nBob,25\n", want: "name,age\nAlice,30\nBob,25\n"},
		{name: "empty", input: "", want: ""},
		{name: "empty fields", input: "a,b,c\n1,,3\n,,\n", want: "a,b,c\n1,,3\n,,\n"},
		{name: "quoted delimiter", input: `a,"b,c"`, want: "a,\"b,c\"\n"},
		{name: "doubled quotes", input: `"say ""hi"""`, want: "\"say \"\"hi\"\"\"\n"},
		{name: "line break", input: "\"a\nb\",c", want: "\"a\nb\",c\n"},
		{name: "surrounding whitespace", input: `" a ",b`, want: "\" a \",b\n"},
		{name: "leading octothorpe", input: `"#a",b`, want: "\"#a\",b\n"},
		{name: "comment dropped", input: "#note\na", want: "a\n"},
		{name: "comment kept", input: "#note\na", cfg: dsv.WriterConfig{AllowComments: true}, want: "#note\na\n"},
		{name: "tab dialect", input: "a,b\tc", cfg: dsv.WriterConfig{Delimiter: '\t'}, want: "a\t\"b\tc\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := dsv.Components(tt.input, sanitized, false)
			if err != nil {
				t.Fatalf("Components() error = %v", err)
			}

			got, err := dsv.Render(doc.Node(), tt.cfg)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestRenderRoundTrip tests that rendered text parses back to the same document.
func TestRenderRoundTrip(t *testing.T) {
	cfg := dsv.Config{SanitizeFields: true}
	records := [][]string{
		{"plain", "with,comma", `with "quotes"`},
		{"multi\nline", " padded ", ""},
		{"#hash", "=eq", `back\slash`},
	}

	doc := dsv.NewDocument()
	for _, r := range records {
		doc.AddRecord(dsv.NewRecord(r...))
	}

	out, err := dsv.Render(doc.Node(), dsv.DefaultWriterConfig())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	parsed, err := dsv.Components(string(out), cfg, false)
	if err != nil {
		t.Fatalf("Components(%q) error = %v", out, err)
	}
	var got [][]string
	for _, r := range parsed.Records() {
		got = append(got, r.Values())
	}
	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// TestDocumentNode tests the AST shape of a document.
func TestDocumentNode(t *testing.T) {
	doc, err := dsv.Components("k1,k2\n#c\nv1,v2", dsv.Config{RecognizeComments: true}, true)
	if err != nil {
		t.Fatal(err)
	}

	arr, ok := doc.Node().(*ast.ArrayDataNode)
	if !ok {
		t.Fatalf("Node() is %T, want *ast.ArrayDataNode", doc.Node())
	}
	elements := arr.Elements()
	if len(elements) != 3 {
		t.Fatalf("len(Elements()) = %d, want 3", len(elements))
	}
	if _, ok := elements[0].(*ast.ArrayDataNode); !ok {
		t.Errorf("header is %T, want *ast.ArrayDataNode", elements[0])
	}
	if lit, ok := elements[1].(*ast.LiteralNode); !ok || lit.Value() != "#c" {
		t.Errorf("comment = %#v", elements[1])
	}

	back, err := dsv.DocumentFromNode(arr)
	if err != nil {
		t.Fatalf("DocumentFromNode() error = %v", err)
	}
	want := []row{fields("k1", "k2"), comment("#c"), fields("v1", "v2")}
	if diff := cmp.Diff(want, snapshot(back)); diff != "" {
		t.Errorf("DocumentFromNode() mismatch (-want +got):\n%s", diff)
	}
}

// TestDocumentFromNodeErrors tests rejection of nodes that are not documents.
func TestDocumentFromNodeErrors(t *testing.T) {
	pos := ast.ZeroPosition()
	tests := []struct {
		name string
		node ast.SchemaNode
	}{
		{name: "literal", node: ast.NewLiteralNode("x", pos)},
		{
			name: "nested array in record",
			node: ast.NewArrayDataNode([]ast.SchemaNode{
				ast.NewArrayDataNode([]ast.SchemaNode{ast.NewArrayDataNode(nil, pos)}, pos),
			}, pos),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := dsv.DocumentFromNode(tt.node); err == nil {
				t.Error("DocumentFromNode() succeeded")
			}
		})
	}

	doc, err := dsv.DocumentFromNode(nil)
	if err != nil || doc.Len() != 0 {
		t.Errorf("DocumentFromNode(nil) = %v, %v", doc, err)
	}
}

// TestQuote tests field quoting.
func TestQuote(t *testing.T) {
	semicolon := dsv.WriterConfig{Delimiter: ';'}
	pipes := dsv.WriterConfig{Delimiter: '|', RecordTerminator: ';'}
	bang := dsv.WriterConfig{Comment: '!'}

	tests := []struct {
		value string
		cfg   dsv.WriterConfig
		want  string
	}{
		{"plain", dsv.WriterConfig{}, "plain"},
		{"", dsv.WriterConfig{}, ""},
		{"a,b", dsv.WriterConfig{}, `"a,b"`},
		{"a,b", semicolon, "a,b"},
		{"a;b", semicolon, `"a;b"`},
		{"a;b", pipes, `"a;b"`},
		{"a|b", pipes, `"a|b"`},
		{`a"b`, dsv.WriterConfig{}, `"a""b"`},
		{"a\r\nb", dsv.WriterConfig{}, "\"a\r\nb\""},
		{" a", dsv.WriterConfig{}, `" a"`},
		{"a\t", dsv.WriterConfig{}, "\"a\t\""},
		{"#a", dsv.WriterConfig{}, `"#a"`},
		{"a#", dsv.WriterConfig{}, "a#"},
		{"!a", bang, `"!a"`},
	}

	for _, tt := range tests {
		if got := dsv.Quote(tt.value, tt.cfg); got != tt.want {
			t.Errorf("Quote(%q, %+v) = %q, want %q", tt.value, tt.cfg, got, tt.want)
		}
	}
}

// TestRenderCustomTerminator tests that values containing a non-newline record terminator
// survive a render and re-parse in that dialect.
func TestRenderCustomTerminator(t *testing.T) {
	records := [][]string{{"a;b", "c"}, {"d", "e|f"}}
	doc := dsv.NewDocument()
	for _, r := range records {
		doc.AddRecord(dsv.NewRecord(r...))
	}

	out, err := dsv.Render(doc.Node(), dsv.WriterConfig{Delimiter: '|', RecordTerminator: ';'})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := `"a;b"|c;d|"e|f";`; string(out) != want {
		t.Errorf("Render() = %q, want %q", out, want)
	}

	parsed, err := dsv.Components(string(out), dsv.Config{Delimiter: '|', RecordTerminators: []rune{';'}, SanitizeFields: true}, false)
	if err != nil {
		t.Fatalf("Components(%q) error = %v", out, err)
	}
	var got [][]string
	for _, r := range parsed.Records() {
		got = append(got, r.Values())
	}
	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
