package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ccollicutt/devjournal/internal/cli/plugins"
	"github.com/ccollicutt/devjournal/pkg/config"
	"github.com/ccollicutt/devjournal/pkg/gitlog"
	"github.com/ccollicutt/devjournal/pkg/journal"
	"github.com/ccollicutt/devjournal/pkg/output"
	"github.com/ccollicutt/devjournal/pkg/webhook"
)

// RecordOptions holds command-line options for the record command.
type RecordOptions struct {
	Repo      string
	Rev       string
	Lookback  time.Duration
	DryRun    bool
	NoNarrate bool

	// Narrative sections; flags override the narrative plugin.
	Summary   string
	Dialogue  string
	Decisions string
	Details   string

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewRecordCommand creates the record command.
func NewRecordCommand() *cobra.Command {
	opts := &RecordOptions{}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a journal entry for a commit",
		Long: `Record a journal entry for a git commit.

The entry is appended to the daily journal file of the commit's date and
includes every reflection written between the parent commit and this one
(or within --lookback for a root commit).

Narrative sections come from the devjournal-narrate plugin when it is
installed; --summary, --dialogue, --decisions and --details override it.
Without a plugin the summary defaults to the commit message.

Exit codes:
  0 - Entry recorded
  2 - Configuration, repository or write error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Repo, "repo", ".", "Path inside the git repository")
	cmd.Flags().StringVar(&opts.Rev, "rev", "HEAD", "Commit to record")
	cmd.Flags().DurationVar(&opts.Lookback, "lookback", 0, "Reflection window for commits without a parent (default from config)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the entry without writing it")
	cmd.Flags().BoolVar(&opts.NoNarrate, "no-narrate", false, "Do not run the narrative plugin")

	cmd.Flags().StringVar(&opts.Summary, "summary", "", "Summary section")
	cmd.Flags().StringVar(&opts.Dialogue, "dialogue", "", "Dialogue section")
	cmd.Flags().StringVar(&opts.Decisions, "decisions", "", "Technical Decisions section")
	cmd.Flags().StringVar(&opts.Details, "details", "", "Commit Details section")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerAlways), "When to fire webhook (always|on_reflections|never)")

	return cmd
}

func runRecord(cmd *cobra.Command, opts *RecordOptions) error {
	ctx := commandContext(cmd)

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	repo, err := gitlog.Open(opts.Repo)
	if err != nil {
		return err
	}
	commit, err := repo.Commit(opts.Rev)
	if err != nil {
		return err
	}

	narrative := buildNarrative(ctx, rt, commit, opts)

	lookback := opts.Lookback
	if lookback <= 0 {
		lookback = rt.cfg.Lookback
	}

	svc := journal.New(rt.store, lookback,
		journal.WithLocation(rt.cfg.Location()),
		journal.WithLogger(rt.logger),
		journal.WithDryRun(opts.DryRun))

	result, err := svc.Record(ctx, journal.Event{
		Time:     commit.Time,
		Previous: commit.ParentTime,
		ID:       commit.ShortHash,
		Label:    commit.Subject,
	}, narrative)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.DryRun {
		fmt.Fprint(out, result.Text)
		return nil
	}

	fmt.Fprintf(out, "Recorded %s in %s (%d reflection(s))\n", commit.ShortHash, result.Path, len(result.Reflections))

	hooks := collectWebhooks(rt.cfg, opts)
	if len(hooks) > 0 {
		webhook.NewClient().Notify(ctx, hooks, &webhook.Payload{
			Path:        result.Path,
			Entry:       result.Text,
			Commit:      commit,
			Reflections: result.Reflections,
		}, rt.logger)
	}

	return nil
}

// buildNarrative asks the narrative plugin for the entry prose and layers the
// command-line sections on top. Plugin failures are logged and ignored.
func buildNarrative(ctx context.Context, rt *runtime, commit *gitlog.Commit, opts *RecordOptions) output.Narrative {
	var n output.Narrative

	if !opts.NoNarrate {
		if path, err := plugins.FindPlugin(rt.cfg.Narrative.Plugin); err == nil {
			generated, err := plugins.Narrate(ctx, path, commit)
			if err != nil {
				rt.logger.Warn("narrative plugin failed", zap.String("plugin", path), zap.Error(err))
			} else {
				n = generated
			}
		} else {
			rt.logger.Debug("no narrative plugin", zap.String("plugin", plugins.Prefix+rt.cfg.Narrative.Plugin))
		}
	}

	override := func(dst *string, flag string) {
		if strings.TrimSpace(flag) != "" {
			*dst = flag
		}
	}
	override(&n.Summary, opts.Summary)
	override(&n.Dialogue, opts.Dialogue)
	override(&n.TechnicalDecisions, opts.Decisions)
	override(&n.Details, opts.Details)

	if strings.TrimSpace(n.Summary) == "" {
		n.Summary = commit.Message
	}
	if strings.TrimSpace(n.Details) == "" {
		n.Details = commit.Details()
	}
	return n
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *RecordOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerAlways
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}
