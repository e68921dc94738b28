package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultJournalDir      = "journal"
	DefaultTimezone        = "Local"
	DefaultLookback        = 24 * time.Hour
	DefaultNarrativePlugin = "narrate"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
	DefaultWebhookTimeout  = 10 * time.Second
)

// Environment variable names.
const (
	EnvJournalDir = "DEVJOURNAL_DIR"
	EnvTimezone   = "DEVJOURNAL_TIMEZONE"
	EnvLogLevel   = "DEVJOURNAL_LOG_LEVEL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		JournalDir: DefaultJournalDir,
		Timezone:   DefaultTimezone,
		Lookback:   DefaultLookback,
		Narrative: NarrativeConfig{
			Plugin: DefaultNarrativePlugin,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if dir := os.Getenv(EnvJournalDir); dir != "" {
		c.JournalDir = dir
	}
	if tz := os.Getenv(EnvTimezone); tz != "" {
		c.Timezone = tz
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
}
