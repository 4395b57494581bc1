package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/shapestone/shape-dsv/internal/charset"
	"github.com/shapestone/shape-dsv/pkg/dsv"
	"github.com/spf13/cobra"
)

// dialectFlags describes the input dialect shared by all commands.
type dialectFlags struct {
	delimiter    string
	comment      string
	comments     bool
	backslash    bool
	sanitize     bool
	trim         bool
	leadingEqual bool
	encoding     string
	header       bool
}

func (d *dialectFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&d.delimiter, "delimiter", "d", ",", `field delimiter: a character or one of comma, tab, semicolon, pipe, space`)
	f.StringVar(&d.comment, "comment", "#", "comment marker")
	f.BoolVarP(&d.comments, "comments", "c", false, "recognize comment lines")
	f.BoolVar(&d.backslash, "backslash", false, "treat backslash as an escape character")
	f.BoolVar(&d.sanitize, "sanitize", true, "remove quotes and escapes from values")
	f.BoolVar(&d.trim, "trim", false, "trim whitespace around values")
	f.BoolVar(&d.leadingEqual, "leading-equal", false, `accept ="..." quoted fields`)
	f.StringVarP(&d.encoding, "encoding", "e", "", "input text encoding (IANA name, default UTF-8)")
	f.BoolVarP(&d.header, "header", "H", false, "use the first record as field names")
}

// config builds the parser configuration described by the flags.
func (d *dialectFlags) config() (dsv.Config, error) {
	delim, err := parseRune("delimiter", d.delimiter)
	if err != nil {
		return dsv.Config{}, err
	}
	marker, err := parseRune("comment", d.comment)
	if err != nil {
		return dsv.Config{}, err
	}

	cfg := dsv.DefaultConfig()
	cfg.Delimiter = delim
	cfg.Comment = marker
	cfg.RecognizeComments = d.comments
	cfg.RecognizeBackslashAsEscape = d.backslash
	cfg.SanitizeFields = d.sanitize
	cfg.TrimWhitespace = d.trim
	cfg.RecognizeLeadingEqualSign = d.leadingEqual

	if err := cfg.Validate(); err != nil {
		return dsv.Config{}, err
	}
	log.Debugf("dialect: delimiter %q, comments %t, backslash %t, sanitize %t, trim %t",
		cfg.Delimiter, cfg.RecognizeComments, cfg.RecognizeBackslashAsEscape, cfg.SanitizeFields, cfg.TrimWhitespace)
	return cfg, nil
}

var namedRunes = map[string]rune{
	"comma":     ',',
	"tab":       '\t',
	"semicolon": ';',
	"pipe":      '|',
	"space":     ' ',
	"colon":     ':',
	`\t`:        '\t',
	"lf":        '\n',
	`\n`:        '\n',
	"cr":        '\r',
	`\r`:        '\r',
}

// parseRune reads a single-character flag value.
func parseRune(flag, value string) (rune, error) {
	if r, ok := namedRunes[strings.ToLower(value)]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("--%s must be a single character, got %q", flag, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}

// runeName is the inverse of parseRune for display.
func runeName(r rune) string {
	switch r {
	case ',':
		return "comma"
	case '\t':
		return "tab"
	case ';':
		return "semicolon"
	case '|':
		return "pipe"
	case ' ':
		return "space"
	case ':':
		return "colon"
	default:
		return string(r)
	}
}

// openInput opens the named file, or standard input for "" and "-", decoding it from
// the named text encoding.
func openInput(cmd *cobra.Command, args []string, encodingName string) (io.Reader, string, func() error, error) {
	enc, err := charset.Lookup(encodingName)
	if err != nil {
		return nil, "", nil, err
	}

	if len(args) == 0 || args[0] == "-" {
		return charset.NewReader(cmd.InOrStdin(), enc), "<stdin>", func() error { return nil }, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", nil, fmt.Errorf("open input: %w", err)
	}
	return charset.NewReader(f, enc), args[0], f.Close, nil
}

// readDocument parses the input named by args.
func readDocument(cmd *cobra.Command, args []string, d *dialectFlags) (*dsv.Document, error) {
	cfg, err := d.config()
	if err != nil {
		return nil, err
	}

	r, name, closeFunc, err := openInput(cmd, args, d.encoding)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeFunc() }()

	doc, err := dsv.ComponentsReader(r, cfg, d.header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	log.Infof("%s: %d records", name, doc.Len())
	return doc, nil
}
