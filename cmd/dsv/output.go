package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/shapestone/shape-dsv/pkg/dsv"
)

// documentOut is the serialized form of a parsed document.
type documentOut struct {
	Keys    []string    `json:"keys,omitempty" cbor:"keys,omitempty"`
	Records []recordOut `json:"records" cbor:"records"`
}

// recordOut holds either a comment or the fields of a record.
type recordOut struct {
	Comment *string           `json:"comment,omitempty" cbor:"comment,omitempty"`
	Fields  []string          `json:"fields,omitempty" cbor:"fields,omitempty"`
	Keyed   map[string]string `json:"keyed,omitempty" cbor:"keyed,omitempty"`
}

func newDocumentOut(doc *dsv.Document) documentOut {
	out := documentOut{
		Keys:    doc.Keys(),
		Records: make([]recordOut, 0, doc.Len()),
	}
	for _, r := range doc.Records() {
		if text, ok := r.Comment(); ok {
			out.Records = append(out.Records, recordOut{Comment: &text})
			continue
		}

		rec := recordOut{Fields: r.Values()}
		for _, f := range r.Fields() {
			if !f.HasKey {
				continue
			}
			if rec.Keyed == nil {
				rec.Keyed = make(map[string]string, r.Len())
			}
			rec.Keyed[f.Key] = f.Value
		}
		out.Records = append(out.Records, rec)
	}
	return out
}

// writeDocument serializes doc to w as JSON or canonical CBOR.
func writeDocument(w io.Writer, doc *dsv.Document, format string) error {
	out := newDocumentOut(doc)

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "cbor":
		em, err := cbor.CanonicalEncOptions().EncMode()
		if err != nil {
			return fmt.Errorf("cbor: %w", err)
		}
		data, err := em.Marshal(out)
		if err != nil {
			return fmt.Errorf("cbor: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want json or cbor)", format)
	}
}
