package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shapestone/shape-dsv/pkg/dsv"
	"github.com/spf13/cobra"
)

const sniffSampleSize = 64 * 1024

type dialectOut struct {
	Delimiter string `json:"delimiter"`
	Header    bool   `json:"header"`
	Comments  bool   `json:"comments"`
}

func newSniffCmd() *cobra.Command {
	var (
		encoding string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "sniff [file]",
		Short: "Guess the dialect of a file",
		Long: `Read the start of a file and guess its delimiter, whether its first line is a
header, and whether it contains # comments. The result can be passed back as flags
to the other commands.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, name, closeFunc, err := openInput(cmd, args, encoding)
			if err != nil {
				return err
			}
			defer func() { _ = closeFunc() }()

			sample, err := io.ReadAll(io.LimitReader(r, sniffSampleSize))
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}

			s := dsv.NewSniffer(string(sample))
			out := dialectOut{
				Delimiter: runeName(s.DetectDelimiter()),
				Header:    s.HasHeader(),
				Comments:  s.HasComments(),
			}
			log.Infof("%s: sniffed %d bytes", name, len(sample))

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "delimiter: %s\nheader: %t\ncomments: %t\n", out.Delimiter, out.Header, out.Comments)
			return nil
		},
	}

	cmd.Flags().StringVarP(&encoding, "encoding", "e", "", "input text encoding (IANA name, default UTF-8)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the dialect as JSON")

	return cmd
}
