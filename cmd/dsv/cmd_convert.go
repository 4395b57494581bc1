package main

import (
	"fmt"

	"github.com/shapestone/shape-dsv/internal/charset"
	"github.com/shapestone/shape-dsv/pkg/dsv"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var (
		dialect       dialectFlags
		outDelimiter  string
		outTerminator string
		outComments   bool
		outEncoding   string
	)

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Rewrite a file in another dialect",
		Long: `Parse a file in the input dialect and write it in the output dialect.

Values are re-quoted for the output delimiter. Comments are kept only with
--out-comments. For example, to turn a CSV file into TSV:

  dsv convert --out-delimiter tab data.csv > data.tsv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// re-quoting needs the unquoted values
			dialect.sanitize = true

			wcfg := dsv.DefaultWriterConfig()
			var err error
			if wcfg.Delimiter, err = parseRune("out-delimiter", outDelimiter); err != nil {
				return err
			}
			if wcfg.RecordTerminator, err = parseRune("out-terminator", outTerminator); err != nil {
				return err
			}
			wcfg.AllowComments = outComments
			if outEncoding != "" {
				if wcfg.Encoding, err = charset.Lookup(outEncoding); err != nil {
					return err
				}
			}

			doc, err := readDocument(cmd, args, &dialect)
			if err != nil {
				return err
			}

			data, err := dsv.Render(doc.Node(), wcfg)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	dialect.register(cmd)
	cmd.Flags().StringVar(&outDelimiter, "out-delimiter", ",", "output field delimiter")
	cmd.Flags().StringVar(&outTerminator, "out-terminator", "lf", "output record terminator: lf, cr or a character")
	cmd.Flags().BoolVar(&outComments, "out-comments", false, "write comments")
	cmd.Flags().StringVar(&outEncoding, "out-encoding", "", "output text encoding (IANA name, default UTF-8)")

	return cmd
}
