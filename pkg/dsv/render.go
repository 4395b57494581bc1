package dsv

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-dsv/internal/tokenizer"
)

// Node converts the document to a Shape AST.
//
// The result is an *ast.ArrayDataNode with one element per record:
//   - *ast.ArrayDataNode of *ast.LiteralNode values for a record of fields
//   - *ast.LiteralNode holding the text of a comment
//
// A keyed document is preceded by a record holding its keys, so the header survives a
// round trip through DocumentFromNode and Render.
func (d *Document) Node() ast.SchemaNode {
	pos := ast.ZeroPosition()

	elements := make([]ast.SchemaNode, 0, len(d.records)+1)
	if len(d.keys) > 0 {
		elements = append(elements, valuesNode(d.keys))
	}
	for _, r := range d.records {
		if text, ok := r.Comment(); ok {
			elements = append(elements, ast.NewLiteralNode(text, pos))
			continue
		}
		elements = append(elements, valuesNode(r.Values()))
	}
	return ast.NewArrayDataNode(elements, pos)
}

func valuesNode(values []string) *ast.ArrayDataNode {
	pos := ast.ZeroPosition()
	fields := make([]ast.SchemaNode, len(values))
	for i, v := range values {
		fields[i] = ast.NewLiteralNode(v, pos)
	}
	return ast.NewArrayDataNode(fields, pos)
}

// DocumentFromNode converts a Shape AST back to an unkeyed Document.
//
// Accepted shapes are those produced by Document.Node: an array whose elements are
// arrays of literals (records) or literals (comments).
func DocumentFromNode(node ast.SchemaNode) (*Document, error) {
	doc := NewDocument()
	if node == nil {
		return doc, nil
	}

	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("unsupported node type for document: %T", node)
	}

	for i, elem := range arr.Elements() {
		switch n := elem.(type) {
		case *ast.ArrayDataNode:
			values, err := literalValues(n)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			doc.AddRecord(NewRecord(values...))
		case *ast.LiteralNode:
			doc.AddRecord(NewComment(literalString(n)))
		default:
			return nil, fmt.Errorf("record %d: unexpected element type: %T", i, elem)
		}
	}
	return doc, nil
}

func literalValues(arr *ast.ArrayDataNode) ([]string, error) {
	elements := arr.Elements()
	values := make([]string, len(elements))
	for i, elem := range elements {
		lit, ok := elem.(*ast.LiteralNode)
		if !ok {
			return nil, fmt.Errorf("field %d: unexpected element type: %T", i, elem)
		}
		values[i] = literalString(lit)
	}
	return values, nil
}

// literalString returns the value of a literal as field text.
func literalString(node *ast.LiteralNode) string {
	switch v := node.Value().(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Render converts an AST node to delimited text in the dialect of cfg.
//
// The node should have the shape produced by Document.Node. Rendering handles:
//   - Quoting of fields containing the delimiter, the record terminator, quotes or line breaks
//   - Escaping of quotes by doubling
//   - Preservation of empty fields
//   - One record terminator after every record
//
// Comments are written only when cfg.AllowComments is set.
//
// Example:
//
//	doc, _ := dsv.Components("name,age\nAlice,30\n", dsv.DefaultConfig(), false)
//	out, _ := dsv.Render(doc.Node(), dsv.DefaultWriterConfig())
//	// out: name,age\nAlice,30\n
func Render(node ast.SchemaNode, cfg WriterConfig) ([]byte, error) {
	doc, err := DocumentFromNode(node)
	if err != nil {
		return nil, err
	}

	cfg = cfg.normalized()
	var buf bytes.Buffer
	w, err := NewWriter(&buf, cfg)
	if err != nil {
		return nil, err
	}

	for _, r := range doc.Records() {
		if text, ok := r.Comment(); ok {
			err = w.WriteComment(text)
		} else {
			err = w.WriteRecord(quoteAll(r.Values(), cfg)...)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func quoteAll(values []string, cfg WriterConfig) []string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = Quote(v, cfg)
	}
	return quoted
}

// Quote returns value as a field of the dialect of cfg that parses back to value with
// SanitizeFields set and backslash escapes off. A value is enclosed in double quotes,
// with embedded quotes doubled, when it contains the delimiter, the record terminator,
// a double quote or a line break, starts with the comment marker, or has leading or
// trailing whitespace. Other values are returned unchanged.
func Quote(value string, cfg WriterConfig) string {
	cfg = cfg.normalized()
	if !needsQuoting(value, cfg) {
		return value
	}

	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteRune(tokenizer.DoubleQuote)
	for _, ch := range value {
		if ch == tokenizer.DoubleQuote {
			b.WriteString(`""`)
		} else {
			b.WriteRune(ch)
		}
	}
	b.WriteRune(tokenizer.DoubleQuote)
	return b.String()
}

func needsQuoting(value string, cfg WriterConfig) bool {
	if value == "" {
		return false
	}
	for _, ch := range value {
		switch {
		case ch == cfg.Delimiter, ch == cfg.RecordTerminator, ch == tokenizer.DoubleQuote:
			return true
		case tokenizer.IsNewline(ch):
			return true
		}
	}
	first, _ := utf8.DecodeRuneInString(value)
	last, _ := utf8.DecodeLastRuneInString(value)
	return first == cfg.Comment || tokenizer.IsWhitespace(first) || tokenizer.IsWhitespace(last)
}
