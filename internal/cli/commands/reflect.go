package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/devjournal/pkg/journal"
)

// ReflectOptions holds command-line options for the reflect command.
type ReflectOptions struct {
	At string
}

// NewReflectCommand creates the reflect command.
func NewReflectCommand() *cobra.Command {
	opts := &ReflectOptions{}

	cmd := &cobra.Command{
		Use:   "reflect [text...]",
		Short: "Write a reflection",
		Long: `Append a timestamped reflection to today's reflection file.

The text is taken from the arguments, or from stdin when there are none.
The next recorded entry includes every reflection written since the
previous commit.

Example:
  devjournal reflect "the offset bug only shows up after DST"
  git diff | devjournal reflect`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReflect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", "Reflection time (default now)")

	return cmd
}

func runReflect(cmd *cobra.Command, args []string, opts *ReflectOptions) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	at := time.Now()
	if opts.At != "" {
		if at, err = parseTime(opts.At, rt.cfg.Location()); err != nil {
			return err
		}
	}

	body := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading reflection from stdin: %w", err)
		}
		body = string(data)
	}

	svc := journal.New(rt.store, rt.cfg.Lookback,
		journal.WithLocation(rt.cfg.Location()),
		journal.WithLogger(rt.logger))

	path, err := svc.AddReflection(commandContext(cmd), at, body)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Reflection saved to %s\n", path)
	return nil
}
