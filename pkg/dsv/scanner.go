package dsv

import (
	"fmt"
	"io"

	"github.com/shapestone/shape-dsv/internal/tokenizer"
)

// Scanner provides a streaming interface for reading records one at a time.
// Each call to Scan parses just enough input for the next record, so memory use does
// not grow with the size of the input.
//
// Example usage:
//
//	file, _ := os.Open("data.csv")
//	defer file.Close()
//
//	scanner := dsv.NewScanner(file, dsv.DefaultConfig()).SetHasHeaders(true)
//	for scanner.Scan() {
//	    record := scanner.Record()
//	    name, _ := record.GetByKey("name")
//	    fmt.Println(name.Value)
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
//
// The callbacks of the Config passed to NewScanner are replaced by the scanner.
type Scanner struct {
	cfg        Config
	chars      *tokenizer.Iterator
	state      *state
	agg        *aggregator
	hasHeaders bool

	pending []Record
	record  Record
	err     error
	started bool
	done    bool
}

// NewScanner creates a Scanner that reads UTF-8 text from r.
// By default the scanner assumes no headers. Use SetHasHeaders(true) to key fields
// by the first record.
func NewScanner(r io.Reader, cfg Config) *Scanner {
	return &Scanner{
		cfg:   cfg.normalized(),
		chars: tokenizer.NewIteratorFromReader(r),
	}
}

// SetHasHeaders sets whether the first non-comment record names the fields.
// It has no effect once scanning has started.
// Returns the Scanner for method chaining.
func (s *Scanner) SetHasHeaders(hasHeaders bool) *Scanner {
	if !s.started {
		s.hasHeaders = hasHeaders
	}
	return s
}

// Scan advances to the next record, which is then available through Record.
// It returns false at the end of the input, on error, or if the input was cancelled.
// After Scan returns false, Err returns the error, if any.
func (s *Scanner) Scan() bool {
	if !s.started {
		s.start()
	}

	for len(s.pending) == 0 {
		if s.done {
			return false
		}
		s.step()
	}

	s.record = s.pending[0]
	s.pending = s.pending[1:]
	return true
}

func (s *Scanner) start() {
	s.started = true
	s.agg = newAggregator(s.hasHeaders, func(r Record) { s.pending = append(s.pending, r) })
	s.agg.bind(&s.cfg)

	if err := s.cfg.Validate(); err != nil {
		s.err = err
		s.done = true
		return
	}
	s.state = newState(&s.cfg, s.chars)
}

// step parses one record, the same way the document parser's loop does.
func (s *Scanner) step() {
	if s.chars.Done() {
		if err := s.chars.Err(); err != nil {
			s.err = fmt.Errorf("dsv: read: %w", err)
		}
		s.done = true
		return
	}

	d := parseRecord(s.state)
	if d.IsContinue() && !s.chars.Done() {
		s.state.record++
	}

	if err := d.Err(); err != nil {
		s.err = err
		s.done = true
	}
}

// Record returns the current record.
// This should only be called after Scan returns true.
func (s *Scanner) Record() Record {
	return s.record
}

// Headers returns the header keys once the header record has been read, or nil.
func (s *Scanner) Headers() []string {
	if s.agg == nil || !s.agg.haveKeys {
		return nil
	}
	return s.agg.keys
}

// Err returns the error, if any, that stopped the scanner.
func (s *Scanner) Err() error {
	return s.err
}

// Progress returns the position of the scanner in its input.
func (s *Scanner) Progress() Progress {
	if s.state == nil {
		return Progress{Record: NoIndex, Field: NoIndex}
	}
	return s.state.recordProgress()
}
