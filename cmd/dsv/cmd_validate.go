package main

import (
	"fmt"

	"github.com/shapestone/shape-dsv/pkg/dsv"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var dialect dialectFlags

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a file is well formed",
		Long: `Parse a file without keeping its records and report the first error with its
location. With --header every record must have as many fields as the header.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := dialect.config()
			if err != nil {
				return err
			}

			r, name, closeFunc, err := openInput(cmd, args, dialect.encoding)
			if err != nil {
				return err
			}
			defer func() { _ = closeFunc() }()

			records, comments := 0, 0
			s := dsv.NewScanner(r, cfg).SetHasHeaders(dialect.header)
			for s.Scan() {
				if s.Record().IsComment() {
					comments++
				} else {
					records++
				}
			}
			if err := s.Err(); err != nil {
				log.Errorf("%s: %s", name, err)
				return fmt.Errorf("%s: %w", name, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d records, %d comments\n", name, records, comments)
			return nil
		},
	}

	dialect.register(cmd)

	return cmd
}
