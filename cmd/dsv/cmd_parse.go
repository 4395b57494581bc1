package main

import (
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var (
		dialect dialectFlags
		format  string
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the records of a file as JSON or CBOR",
		Long: `Parse a delimiter-separated file and print its records.

With --header the first record names the fields and every record must have the
same number of fields. Output is indented JSON by default; --format cbor emits
canonical CBOR.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args, &dialect)
			if err != nil {
				return err
			}
			return writeDocument(cmd.OutOrStdout(), doc, format)
		},
	}

	dialect.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or cbor")

	return cmd
}
