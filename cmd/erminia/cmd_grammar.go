package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/erminia/erminia/grammar"
)

func newGrammarCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "grammar [files...]",
		Short: "Print the EBNF grammar of the language",
		Long: `Print the EBNF grammar of the language.

With --check the grammar is verified instead: every production must be
defined and reachable from Program. Files given as arguments are then
recognized against the grammar, independently of the parser.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !check {
				if len(args) > 0 {
					return fmt.Errorf("files are only accepted with --check")
				}
				_, err := io.WriteString(out, grammar.Source())
				return err
			}

			if err := grammar.Check(); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}
			names, err := grammar.Productions()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "grammar ok: %d productions reachable from %s\n", len(names), grammar.Start)

			failed := 0
			for _, file := range args {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read source file: %w", err)
				}
				if err := grammar.Recognize(string(data)); err != nil {
					fmt.Fprintf(out, "%s: %v\n", file, err)
					failed++
					continue
				}
				fmt.Fprintf(out, "%s: ok\n", file)
			}
			if failed > 0 {
				return fmt.Errorf("%d file(s) not in the language", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "verify the grammar instead of printing it")

	return cmd
}

// printErrors prints each entry of an ebnf error list on its own line.
func printErrors(w io.Writer, err error) {
	if inner := errors.Unwrap(err); inner != nil {
		err = inner
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
		return
	}
	fmt.Fprintln(w, err)
}
