package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/erminia/erminia/lexer"
	"github.com/dhamidi/erminia/format"
)

func newLexCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	var skipComments bool

	cmd := &cobra.Command{
		Use:   "lex <file>",
		Short: "Print the tokens of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var lexOpts []lexer.Option
			if skipComments {
				lexOpts = append(lexOpts, lexer.SkipComments())
			}

			lx, err := lexer.ReadFile(args[0], lexOpts...)
			if err != nil {
				return err
			}
			tokens, err := lx.Tokenize()
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			if asJSON || opts.cfg.Output.Format == "json" {
				return format.WriteTokensJSON(cmd.OutOrStdout(), tokens)
			}
			return format.WriteTokens(cmd.OutOrStdout(), tokens)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print tokens as JSON")
	cmd.Flags().BoolVar(&skipComments, "skip-comments", false, "drop (* ... *) comments")

	return cmd
}
