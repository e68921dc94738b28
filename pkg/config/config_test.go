package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks the override variables for the duration of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvJournalDir, "")
	t.Setenv(EnvTimezone, "")
	t.Setenv(EnvLogLevel, "")
}

func TestLoad_ValidConfig(t *testing.T) {
	clearEnv(t)
	content := `
journal_dir: /home/ada/journal
timezone: America/New_York
lookback: 36h
narrative:
  plugin: summarize
logging:
  level: debug
  format: json
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.JournalDir != "/home/ada/journal" {
		t.Errorf("JournalDir = %q, want %q", cfg.JournalDir, "/home/ada/journal")
	}
	if cfg.Lookback != 36*time.Hour {
		t.Errorf("Lookback = %v, want 36h", cfg.Lookback)
	}
	if cfg.Narrative.Plugin != "summarize" {
		t.Errorf("Narrative.Plugin = %q, want %q", cfg.Narrative.Plugin, "summarize")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want debug/json", cfg.Logging)
	}
	if cfg.Location().String() != "America/New_York" {
		t.Errorf("Location() = %v, want America/New_York", cfg.Location())
	}
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := writeTempFile(t, "config.yaml", "timezone: UTC\n")

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.JournalDir != DefaultJournalDir {
		t.Errorf("JournalDir = %q, want %q", cfg.JournalDir, DefaultJournalDir)
	}
	if cfg.Lookback != DefaultLookback {
		t.Errorf("Lookback = %v, want %v", cfg.Lookback, DefaultLookback)
	}
	if cfg.Location() != time.UTC {
		t.Errorf("Location() = %v, want UTC", cfg.Location())
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	content := `invalid: yaml: content: [`
	path := writeTempFile(t, "invalid.yaml", content)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestResolve_NoPathUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.JournalDir != DefaultJournalDir {
		t.Errorf("JournalDir = %q, want %q", cfg.JournalDir, DefaultJournalDir)
	}
	if cfg.Location() != time.Local {
		t.Errorf("Location() = %v, want Local", cfg.Location())
	}
}

func TestResolve_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvJournalDir, "/tmp/journal")
	t.Setenv(EnvTimezone, "Asia/Tokyo")
	t.Setenv(EnvLogLevel, "WARN")

	path := writeTempFile(t, "config.yaml", "journal_dir: ignored\ntimezone: UTC\n")
	cfg, err := Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.JournalDir != "/tmp/journal" {
		t.Errorf("JournalDir = %q, want %q", cfg.JournalDir, "/tmp/journal")
	}
	if cfg.Location().String() != "Asia/Tokyo" {
		t.Errorf("Location() = %v, want Asia/Tokyo", cfg.Location())
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.JournalDir != DefaultJournalDir {
		t.Errorf("JournalDir = %q, want %q", cfg.JournalDir, DefaultJournalDir)
	}
	if cfg.Timezone != DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, DefaultTimezone)
	}
	if cfg.Lookback != 24*time.Hour {
		t.Errorf("Lookback = %v, want 24h", cfg.Lookback)
	}
	if cfg.Narrative.Plugin != "narrate" {
		t.Errorf("Narrative.Plugin = %q, want %q", cfg.Narrative.Plugin, "narrate")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty journal dir", func(c *Config) { c.JournalDir = " " }, "journal_dir"},
		{"unknown timezone", func(c *Config) { c.Timezone = "Mars/Olympus_Mons" }, "timezone"},
		{"negative lookback", func(c *Config) { c.Lookback = -time.Hour }, "lookback"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_FillsZeroValues(t *testing.T) {
	cfg := &Config{JournalDir: "j"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Lookback != DefaultLookback {
		t.Errorf("Lookback = %v, want %v", cfg.Lookback, DefaultLookback)
	}
	if cfg.Narrative.Plugin != DefaultNarrativePlugin {
		t.Errorf("Narrative.Plugin = %q, want %q", cfg.Narrative.Plugin, DefaultNarrativePlugin)
	}
	if cfg.Logging.Level != DefaultLogLevel || cfg.Logging.Format != DefaultLogFormat {
		t.Errorf("Logging = %+v, want defaults", cfg.Logging)
	}
}

func TestValidate_Webhook_Valid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Webhooks = []WebhookConfig{{Name: "slack", URL: "https://hooks.example.com/journal"}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Webhooks[0].Trigger != WebhookTriggerAlways {
		t.Errorf("Trigger = %v, want %v", cfg.Webhooks[0].Trigger, WebhookTriggerAlways)
	}
	if cfg.Webhooks[0].Timeout != DefaultWebhookTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Webhooks[0].Timeout, DefaultWebhookTimeout)
	}
}

func TestValidate_Webhook_Errors(t *testing.T) {
	tests := []struct {
		name    string
		webhook WebhookConfig
	}{
		{"missing url", WebhookConfig{}},
		{"bad scheme", WebhookConfig{URL: "ftp://example.com/hook"}},
		{"no host", WebhookConfig{URL: "https:///hook"}},
		{"bad trigger", WebhookConfig{URL: "https://example.com", Trigger: "on_issues"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Webhooks = []WebhookConfig{tt.webhook}
			if err := Validate(cfg); err == nil {
				t.Error("Validate() expected error")
			}
		})
	}
}

func TestValidate_Webhook_AllTriggers(t *testing.T) {
	for _, trigger := range []WebhookTrigger{WebhookTriggerAlways, WebhookTriggerOnReflections, WebhookTriggerNever} {
		cfg := DefaultConfig()
		cfg.Webhooks = []WebhookConfig{{URL: "http://localhost:8080/hook", Trigger: trigger}}
		if err := Validate(cfg); err != nil {
			t.Errorf("Validate() trigger %q error = %v", trigger, err)
		}
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("TEST_WEBHOOK_TOKEN", "secret-value")

	tests := []struct {
		input string
		want  string
	}{
		{"${TEST_WEBHOOK_TOKEN}", "secret-value"},
		{"$TEST_WEBHOOK_TOKEN", "secret-value"},
		{"plain-value", "plain-value"},
		{"", ""},
		{"${NONEXISTENT_VAR}", ""},
	}

	for _, tt := range tests {
		got := expandEnvVar(tt.input)
		if got != tt.want {
			t.Errorf("expandEnvVar(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoad_WithWebhooks(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOURNAL_HOOK_TOKEN", "s3cret")
	content := `
webhooks:
  - name: team-feed
    url: "https://example.com/webhook"
    token: "${JOURNAL_HOOK_TOKEN}"
    trigger: on_reflections
    timeout: 30s
  - url: "https://backup.example.com/webhook"
`
	path := writeTempFile(t, "config-with-webhooks.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Webhooks) != 2 {
		t.Fatalf("Webhooks = %d, want 2", len(cfg.Webhooks))
	}
	if cfg.Webhooks[0].Token != "s3cret" {
		t.Errorf("Webhook[0].Token = %q, want expanded token", cfg.Webhooks[0].Token)
	}
	if cfg.Webhooks[0].Trigger != WebhookTriggerOnReflections {
		t.Errorf("Webhook[0].Trigger = %v, want %v", cfg.Webhooks[0].Trigger, WebhookTriggerOnReflections)
	}
	if cfg.Webhooks[0].Timeout != 30*time.Second {
		t.Errorf("Webhook[0].Timeout = %v, want 30s", cfg.Webhooks[0].Timeout)
	}
	if cfg.Webhooks[1].Trigger != WebhookTriggerAlways {
		t.Errorf("Webhook[1].Trigger = %v, want %v", cfg.Webhooks[1].Trigger, WebhookTriggerAlways)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}
