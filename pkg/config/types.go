// Package config provides configuration loading and validation for devjournal.
package config

import (
	"time"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// JournalDir is the root directory of entry and reflection files.
	JournalDir string `yaml:"journal_dir"`

	// Timezone is the IANA zone calendar days are computed in, or "Local".
	Timezone string `yaml:"timezone"`

	// Lookback is the discovery window used when an event has no predecessor.
	Lookback time.Duration `yaml:"lookback"`

	Narrative NarrativeConfig `yaml:"narrative"`
	Logging   LoggingConfig   `yaml:"logging"`
	Webhooks  []WebhookConfig `yaml:"webhooks,omitempty"`

	// location is the loaded Timezone (populated during validation).
	location *time.Location
}

// Location returns the loaded timezone, or time.Local before validation.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// NarrativeConfig selects the plugin that writes entry prose.
type NarrativeConfig struct {
	// Plugin is the plugin command name; devjournal-<plugin> is executed.
	Plugin string `yaml:"plugin"`
}

// LoggingConfig controls diagnostic output on stderr.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerAlways fires after every saved entry (default).
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerOnReflections fires only when the entry has reflections.
	WebhookTriggerOnReflections WebhookTrigger = "on_reflections"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint that receives saved entries.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "always" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
