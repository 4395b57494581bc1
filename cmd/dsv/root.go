package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("dsv")

func newRootCmd() *cobra.Command {
	var verbose int

	rootCmd := &cobra.Command{
		Use:   "dsv",
		Short: "Parse, validate and convert delimiter-separated text",
		Long: `dsv reads CSV, TSV and other delimiter-separated text.

Every command takes a file argument; "-" or no argument reads standard input.
The input dialect is described with the shared flags (--delimiter, --comments, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newSniffCmd())

	return rootCmd
}
