package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/erminia/erminia/parser"
	"github.com/dhamidi/erminia/format"
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	var outputFormat string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and dump the syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			if !cmd.Flags().Changed("format") {
				outputFormat = opts.cfg.Output.Format
			}
			if !cmd.Flags().Changed("positions") {
				includePositions = opts.cfg.Output.Positions
			}

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			node, err := parser.ParseProgram(bytes.NewReader(data), parser.WithFile(filename)).Finish()
			if err != nil {
				return fmt.Errorf("%s: %w", filename, err)
			}

			var encOpts []format.Option
			if includePositions {
				encOpts = append(encOpts, format.WithPositions())
			}
			enc, err := format.NewEncoder(outputFormat, cmd.OutOrStdout(), encOpts...)
			if err != nil {
				return err
			}
			if err := enc.Encode(node); err != nil {
				return fmt.Errorf("encode %s: %w", outputFormat, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, yaml)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include source spans in output")

	return cmd
}
