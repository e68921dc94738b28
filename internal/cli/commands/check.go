package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/devjournal/pkg/inspect"
	"github.com/ccollicutt/devjournal/pkg/parser"
	"github.com/ccollicutt/devjournal/pkg/store"
)

// CheckOptions holds command-line options for the check command.
type CheckOptions struct {
	Days   int
	All    bool
	Output string
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check reflection files for problems",
		Long: `Check recent reflection files for content discovery would skip or guess at.

Reports:
  - Invalid timestamps (the whole file is skipped by discovery)
  - Zone abbreviations missing from the timezone table (fallback parse)
  - Lines that look like headers but do not match the header format
  - Text before the first header

Exit codes:
  0 - No problems found
  1 - Problems found
  2 - Configuration or runtime error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Days, "days", 7, "Number of days to check, ending today")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Check every reflection file in the journal")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	ctx := commandContext(cmd)

	if opts.Output != "text" && opts.Output != "json" {
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	inspector := inspect.New(rt.store, rt.cfg.Location())

	var result *inspect.Result
	if opts.All {
		paths, err := parser.ExpandGlobs([]string{rt.store.Pattern(store.KindReflections)})
		if err != nil {
			return err
		}
		result, err = inspector.CheckPaths(ctx, paths)
		if err != nil {
			return err
		}
	} else {
		result, err = inspector.CheckDays(ctx, time.Now(), opts.Days)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if opts.Output == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("formatting output: %w", err)
		}
	} else {
		printCheck(out, result)
	}

	if result.Problems() > 0 {
		ExitCode = 1
	}
	return nil
}

func printCheck(w io.Writer, result *inspect.Result) {
	for _, f := range result.Files {
		status := "ok"
		if len(f.Problems) > 0 {
			status = fmt.Sprintf("%d problem(s)", len(f.Problems))
		}
		fmt.Fprintf(w, "%s: %d reflection(s), %s\n", f.Path, f.Headers, status)

		for _, p := range f.Problems {
			if p.Line > 0 {
				fmt.Fprintf(w, "  [%s] line %d: %s\n", p.Severity, p.Line, p.Message)
			} else {
				fmt.Fprintf(w, "  [%s] %s\n", p.Severity, p.Message)
			}
		}
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d file(s), %d reflection(s), %d problem(s)\n",
		len(result.Files), result.Headers(), result.Problems())
}
