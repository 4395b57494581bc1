package dsv

import (
	"strings"
	"unicode"

	"github.com/coregx/coregex"
	"github.com/shapestone/shape-dsv/internal/tokenizer"
)

// candidateDelimiters are checked in order; earlier ones win ties.
var candidateDelimiters = []rune{',', '\t', ';', '|', ':'}

var (
	headerPatterns = mustCompileAll(
		`^[a-zA-Z_][a-zA-Z0-9_]*$`,     // snake_case or identifier
		`^[a-zA-Z]+[A-Z][a-zA-Z]*$`,    // camelCase
		`^[A-Z][a-z]+( [A-Z][a-z]+)*$`, // Title Case
		`^[a-z]+( [a-z]+)*$`,           // lower case words
	)
	dataPatterns = mustCompileAll(
		`^-?[0-9]+(\.[0-9]+)?$`,
		`^[0-9]{4}-[0-9]{2}-[0-9]{2}`,
		`^[0-9]{2}/[0-9]{2}/[0-9]{4}$`,
		`@`,
	)
)

func mustCompileAll(patterns ...string) []*coregex.Regexp {
	compiled := make([]*coregex.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := coregex.Compile(p)
		if err != nil {
			panic(err)
		}
		compiled[i] = re
	}
	return compiled
}

func matchesAny(patterns []*coregex.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// Sniffer guesses the dialect of a sample of delimited text.
type Sniffer struct {
	lines       []string
	hasComments bool

	delimiter rune
	hasHeader bool
	analyzed  bool
}

// NewSniffer creates a Sniffer for a sample of the input.
// For best results, provide at least 2-3 lines of data.
func NewSniffer(sample string) *Sniffer {
	s := &Sniffer{}
	for _, line := range strings.FieldsFunc(sample, tokenizer.IsNewline) {
		if strings.HasPrefix(line, string(tokenizer.Octothorpe)) {
			s.hasComments = true
			continue
		}
		if strings.TrimFunc(line, tokenizer.IsWhitespace) == "" {
			continue
		}
		s.lines = append(s.lines, line)
	}
	return s
}

func (s *Sniffer) analyze() {
	if s.analyzed {
		return
	}
	s.delimiter = s.detectDelimiter()
	s.hasHeader = s.detectHeader()
	s.analyzed = true
}

// DetectDelimiter returns the most likely field delimiter, ',' when undecided.
func (s *Sniffer) DetectDelimiter() rune {
	s.analyze()
	return s.delimiter
}

// HasHeader reports whether the first data line looks like a header.
func (s *Sniffer) HasHeader() bool {
	s.analyze()
	return s.hasHeader
}

// HasComments reports whether any line of the sample starts with '#'.
func (s *Sniffer) HasComments() bool {
	return s.hasComments
}

// Config proposes a parser configuration for the sample.
func (s *Sniffer) Config() Config {
	cfg := DefaultConfig()
	cfg.Delimiter = s.DetectDelimiter()
	cfg.RecognizeComments = s.hasComments
	cfg.SanitizeFields = true
	return cfg
}

// detectDelimiter scores each candidate by how often and how consistently it occurs
// outside quotes.
func (s *Sniffer) detectDelimiter() rune {
	best := ','
	bestScore := 0

	for _, delim := range candidateDelimiters {
		counts := make([]int, len(s.lines))
		for i, line := range s.lines {
			counts[i] = countDelimiter(line, delim)
		}
		if len(counts) == 0 || counts[0] == 0 {
			continue
		}

		score := counts[0]
		consistent := true
		for _, c := range counts[1:] {
			if c != counts[0] {
				consistent = false
				break
			}
		}
		if consistent {
			score *= 10
		}

		if score > bestScore {
			best = delim
			bestScore = score
		}
	}
	return best
}

// countDelimiter counts occurrences of delim outside double quotes.
func countDelimiter(line string, delim rune) int {
	count := 0
	inQuotes := false
	for _, ch := range line {
		if ch == tokenizer.DoubleQuote {
			inQuotes = !inQuotes
		} else if ch == delim && !inQuotes {
			count++
		}
	}
	return count
}

// detectHeader compares the first line against the shape of header names and data.
func (s *Sniffer) detectHeader() bool {
	if len(s.lines) < 2 {
		return false
	}

	headerScore, dataScore := 0, 0
	for _, field := range splitByDelimiter(s.lines[0], s.delimiter) {
		field = strings.Trim(strings.TrimFunc(field, tokenizer.IsWhitespace), `"`)
		if field == "" {
			continue
		}
		if isLikelyData(field) {
			dataScore++
		} else if matchesAny(headerPatterns, field) {
			headerScore++
		}
	}
	return headerScore > dataScore
}

func isLikelyData(s string) bool {
	if matchesAny(dataPatterns, s) {
		return true
	}
	return strings.IndexFunc(s, unicode.IsLetter) < 0
}

// splitByDelimiter splits a line on delim, ignoring delimiters inside double quotes.
func splitByDelimiter(line string, delim rune) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == tokenizer.DoubleQuote:
			inQuotes = !inQuotes
			current.WriteRune(ch)
		case ch == delim && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	return append(fields, current.String())
}
