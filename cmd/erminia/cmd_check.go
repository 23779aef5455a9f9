package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dhamidi/erminia/erminia/codebase"
)

type diagnosticStyles struct {
	location *color.Color
	message  *color.Color
	ok       *color.Color
}

func newDiagnosticStyles() *diagnosticStyles {
	return &diagnosticStyles{
		location: color.New(color.Bold),
		message:  color.New(color.FgRed),
		ok:       color.New(color.FgGreen),
	}
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse and check source files, printing diagnostics",
		Long: `Parse and check source files or directories of .erm files.

With --watch a single directory is polled and diagnostics are printed
whenever a file changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			if watch {
				if len(args) != 1 {
					return fmt.Errorf("--watch takes a single directory")
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				return runWatch(ctx, cmd.OutOrStdout(), args[0], interval)
			}
			return runCheck(cmd.OutOrStdout(), args)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep checking as files change")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "polling interval for --watch")

	return cmd
}

func runCheck(out io.Writer, paths []string) error {
	styles := newDiagnosticStyles()
	failed := 0

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		var c *codebase.Codebase
		if info.IsDir() {
			c = codebase.New(path)
			if err := c.ScanAll(); err != nil {
				return fmt.Errorf("scan %s: %w", path, err)
			}
		} else {
			c = codebase.New(".")
			if err := c.ScanFile(path); err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
		}

		for _, file := range c.Paths() {
			if printDiagnostics(out, styles, file, c.Diagnostics(file)) {
				failed++
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) with errors", failed)
	}
	return nil
}

func runWatch(ctx context.Context, out io.Writer, dir string, interval time.Duration) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	styles := newDiagnosticStyles()
	c := codebase.New(dir)
	w := codebase.NewFileWatcher(c, interval, func(path string, f *codebase.FileInfo) {
		if f == nil {
			fmt.Fprintf(out, "%s: removed\n", path)
			return
		}
		if !printDiagnostics(out, styles, path, c.Diagnostics(path)) {
			fmt.Fprintf(out, "%s: %s\n", styles.location.Sprint(path), styles.ok.Sprint("ok"))
		}
	})

	w.Start()
	defer w.Stop()

	<-ctx.Done()
	return nil
}

// printDiagnostics reports whether any diagnostic was printed.
func printDiagnostics(out io.Writer, styles *diagnosticStyles, path string, diags []codebase.Diagnostic) bool {
	for _, d := range diags {
		loc := fmt.Sprintf("%s:%d:%d", path, d.Span.Start.Line, d.Span.Start.Column)
		fmt.Fprintf(out, "%s: %s\n", styles.location.Sprint(loc), styles.message.Sprint(d.Message))
	}
	return len(diags) > 0
}
