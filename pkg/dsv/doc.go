// Package dsv parses and writes delimiter-separated text (CSV, TSV and similar dialects).
//
// The parser is a character-level state machine that consumes its input incrementally
// and reports what it recognises through callbacks. Each callback returns a Disposition
// that either lets parsing continue, cancels it, or fails it with an error. Nothing is
// buffered beyond the field being read, so errors and cancellation take effect without
// reading the rest of the document.
//
// # Dialects
//
// A Config selects the delimiter, the record terminators and how quoting, backslash
// escapes, comments, surrounding whitespace and Excel-style ="..." fields are treated:
//
//	cfg := dsv.DefaultConfig()
//	cfg.Delimiter = '\t'
//	cfg.RecognizeComments = true
//	cfg.SanitizeFields = true
//
// By default fields are reported as they appear in the source, quotes and escapes
// included. SanitizeFields reports the value the syntax denotes instead.
//
// # Push parsing
//
//	cfg.OnReadField = func(field string, p dsv.Progress) dsv.Disposition {
//	    if field == "STOP" {
//	        return dsv.Cancel
//	    }
//	    fmt.Printf("record %d field %d: %s\n", p.Record, p.Field, field)
//	    return dsv.Continue
//	}
//	if err := dsv.Parse(input, cfg); err != nil {
//	    var perr *dsv.ParseError
//	    if errors.As(err, &perr) {
//	        fmt.Println("failed at", perr.Progress)
//	    }
//	}
//
// # Collecting records
//
// Components collects the events into a Document, optionally keying fields by the first
// record. Scanner pulls records one at a time from a stream.
//
//	doc, err := dsv.Components("name,age\nAlice,30", dsv.DefaultConfig(), true)
//	rec, _ := doc.GetRecord(0)
//	age, _ := rec.GetByKey("age")
//
// # Writing
//
// Writer emits records, keyed records and comments in a dialect. Field text is written
// verbatim; Render quotes fields that need it.
//
// # Thread Safety
//
// A Parser, Scanner or Writer must be used by one goroutine at a time. Independent
// parsers share no state and may run concurrently.
package dsv
