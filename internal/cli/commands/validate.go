package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/devjournal/internal/cli/plugins"
	"github.com/ccollicutt/devjournal/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a devjournal configuration file without recording anything.

Checks:
  - YAML syntax
  - Timezone name
  - Logging level and format
  - Webhook URLs and triggers
  - Narrative plugin availability (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(commandContext(cmd), configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Journal:   %s\n", cfg.JournalDir)
	fmt.Fprintf(out, "  Timezone:  %s\n", cfg.Location())
	fmt.Fprintf(out, "  Lookback:  %s\n", cfg.Lookback)
	fmt.Fprintf(out, "  Webhooks:  %d\n", len(cfg.Webhooks))

	for i, wh := range cfg.Webhooks {
		name := wh.Name
		if name == "" {
			name = wh.URL
		}
		fmt.Fprintf(out, "    %d. %s [%s]\n", i+1, name, wh.Trigger)
	}

	if path, err := plugins.FindPlugin(cfg.Narrative.Plugin); err == nil {
		fmt.Fprintf(out, "\nNarrative plugin: %s\n", path)
	} else {
		fmt.Fprintf(out, "\nWarning: narrative plugin %s%s not found; entries will use command-line text\n",
			plugins.Prefix, cfg.Narrative.Plugin)
	}

	return nil
}
