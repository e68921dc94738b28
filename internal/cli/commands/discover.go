package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/devjournal/pkg/discovery"
	"github.com/ccollicutt/devjournal/pkg/output"
)

// DiscoverOptions holds command-line options for the discover command.
type DiscoverOptions struct {
	At       string
	Since    string
	Lookback time.Duration
	Output   string
	Quiet    bool
}

// NewDiscoverCommand creates the discover command.
func NewDiscoverCommand() *cobra.Command {
	opts := &DiscoverOptions{}

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List the reflections in a time window",
		Long: `List the reflections a journal entry recorded at --at would include.

The window ends at --at (default now) and starts at --since, or --lookback
before the end when --since is not given. Both ends are inclusive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscover(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", "Window end (default now)")
	cmd.Flags().StringVar(&opts.Since, "since", "", "Window start (default end minus lookback)")
	cmd.Flags().DurationVar(&opts.Lookback, "lookback", 0, "Window length when --since is not set (default from config)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	return cmd
}

func runDiscover(cmd *cobra.Command, opts *DiscoverOptions) error {
	ctx := commandContext(cmd)

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{
		Verbose: rt.verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	loc := rt.cfg.Location()
	end := time.Now()
	if opts.At != "" {
		if end, err = parseTime(opts.At, loc); err != nil {
			return err
		}
	}

	var previous *time.Time
	if opts.Since != "" {
		since, err := parseTime(opts.Since, loc)
		if err != nil {
			return err
		}
		previous = &since
	}

	lookback := opts.Lookback
	if lookback <= 0 {
		lookback = rt.cfg.Lookback
	}

	w, err := discovery.WindowFor(end, previous, lookback)
	if err != nil {
		return fmt.Errorf("invalid window: %w", err)
	}

	engine := discovery.New(rt.store,
		discovery.WithLogger(rt.logger),
		discovery.WithLocation(loc),
		discovery.WithLookback(lookback))

	reflections, err := engine.DiscoverWindow(ctx, w)
	if err != nil {
		return err
	}

	report := output.NewReport(w, reflections, output.Metadata{
		JournalDir:  rt.cfg.JournalDir,
		Location:    loc.String(),
		GeneratedAt: time.Now().UTC(),
	})

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	return nil
}
