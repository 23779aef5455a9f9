package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dhamidi/erminia/erminia/ast"
	"github.com/dhamidi/erminia/erminia/lexer"
	"github.com/dhamidi/erminia/erminia/parser"
	"github.com/dhamidi/erminia/erminia/token"
	"github.com/dhamidi/erminia/format"
)

const continuationPrompt = ".. "

type lineReader interface {
	ReadLine() (string, error)
	SetPrompt(prompt string)
}

type scannerLines struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

func (s *scannerLines) SetPrompt(prompt string) {
	s.prompt = prompt
}

func (s *scannerLines) ReadLine() (string, error) {
	fmt.Fprint(s.out, s.prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

type repl struct {
	prompt     string
	showTokens bool
	showTree   bool
	positions  bool
	errColor   *color.Color
}

func newREPLCmd(opts *rootOptions) *cobra.Command {
	r := &repl{errColor: color.New(color.FgRed)}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read definitions interactively and print their tokens and syntax tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("prompt") {
				r.prompt = opts.cfg.REPL.Prompt
			}
			if !flags.Changed("tokens") {
				r.showTokens = opts.cfg.REPL.ShowTokens
			}
			if !flags.Changed("tree") {
				r.showTree = opts.cfg.REPL.ShowTree
			}
			if !flags.Changed("positions") {
				r.positions = opts.cfg.Output.Positions
			}

			if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				return r.runTerminal(f)
			}
			lines := &scannerLines{scanner: bufio.NewScanner(cmd.InOrStdin()), out: cmd.OutOrStdout()}
			return r.run(lines, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&r.prompt, "prompt", "-> ", "input prompt")
	cmd.Flags().BoolVar(&r.showTokens, "tokens", true, "print the token stream")
	cmd.Flags().BoolVar(&r.showTree, "tree", true, "print the syntax tree")
	cmd.Flags().BoolVar(&r.positions, "positions", false, "include source spans in the tree")

	return cmd
}

func (r *repl) runTerminal(f *os.File) error {
	fd := int(f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw terminal: %w", err)
	}
	defer term.Restore(fd, state)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{f, os.Stdout}, r.prompt)
	return r.run(t, t)
}

// run reads lines until the buffered input forms a complete definition,
// then evaluates it. End of input evaluates whatever is left.
func (r *repl) run(lines lineReader, out io.Writer) error {
	var buf strings.Builder
	for {
		if buf.Len() == 0 {
			lines.SetPrompt(r.prompt)
		} else {
			lines.SetPrompt(continuationPrompt)
		}

		line, err := lines.ReadLine()
		if err == io.EOF {
			if strings.TrimSpace(buf.String()) != "" {
				r.eval(out, buf.String())
			}
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}
		if buf.Len() == 0 && strings.TrimSpace(line) == "" {
			continue
		}

		buf.WriteString(line)
		buf.WriteByte('\n')
		src := buf.String()
		if !entryFor(src)(strings.NewReader(src)).IsComplete() {
			continue
		}
		r.eval(out, src)
		buf.Reset()
	}
}

// entryFor picks the production to parse src with: a whole program when it
// starts with "def", a single statement otherwise.
func entryFor(src string) func(io.Reader, ...parser.Option) *parser.Parser {
	lx := lexer.New(src, lexer.SkipComments())
	if err := lx.Advance(); err == nil && lx.Peek().Kind == token.TokenProblemDef {
		return parser.ParseProgram
	}
	return parser.ParseStatement
}

func (r *repl) eval(out io.Writer, src string) {
	if r.showTokens {
		tokens, err := lexer.New(src, lexer.SkipComments()).Tokenize()
		if err != nil {
			r.errColor.Fprintf(out, "error: %v\n", err)
			return
		}
		fmt.Fprintln(out, "TOKENS")
		format.WriteTokens(out, tokens)
	}

	node, err := entryFor(src)(strings.NewReader(src), parser.WithFile("<repl>")).Finish()
	if err != nil {
		r.errColor.Fprintf(out, "error: %v\n", err)
		return
	}
	if err := ast.Check(node); err != nil {
		r.errColor.Fprintf(out, "error: %v\n", err)
		return
	}

	if r.showTree {
		fmt.Fprintln(out, "PROGRAM")
		var printOpts []ast.PrintOption
		if r.positions {
			printOpts = append(printOpts, ast.WithPositions())
		}
		ast.Fprint(out, node, printOpts...)
	}
}
