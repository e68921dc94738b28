package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ccollicutt/devjournal/internal/logging"
	"github.com/ccollicutt/devjournal/pkg/config"
	"github.com/ccollicutt/devjournal/pkg/store"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// Names of the persistent flags defined on the root command.
const (
	FlagConfig  = "config"
	FlagVerbose = "verbose"
)

// runtime is the configuration, logger and journal store a command runs with.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *store.FileStore
	verbose bool
}

// setup resolves the configuration named by --config (or the defaults) and
// builds the logger. Commands created outside a root command run without the
// persistent flags and use the defaults.
func setup(cmd *cobra.Command) (*runtime, error) {
	ctx := commandContext(cmd)

	configPath, _ := cmd.Flags().GetString(FlagConfig)
	verbose, _ := cmd.Flags().GetBool(FlagVerbose)

	cfg, err := config.Resolve(ctx, configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Level:  level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	return &runtime{
		cfg:     cfg,
		logger:  logger,
		store:   store.New(cfg.JournalDir),
		verbose: verbose,
	}, nil
}

func (r *runtime) close() {
	_ = logging.Sync(r.logger)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// timeLayouts are the accepted forms of --at and --since. Forms without an
// offset are read in the configured timezone.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseTime parses a command-line time in loc.
func parseTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use RFC 3339, e.g. 2024-06-01T09:00:00-04:00)", value)
}
