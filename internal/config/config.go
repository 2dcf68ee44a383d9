package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults for the escalation poller and the resolve learning step.
const (
	DefaultPollIntervalSeconds = 5
	DefaultPollDeadlineSeconds = 180
)

// Config represents the flat salondesk configuration
type Config struct {
	Version             string `json:"version"`
	PollIntervalSeconds int    `json:"poll_interval_seconds,omitempty"` // Agent poll cadence
	PollDeadlineSeconds int    `json:"poll_deadline_seconds,omitempty"` // Pending requests time out after this
	LearnOnResolve      *bool  `json:"learn_on_resolve,omitempty"`      // nil means true
}

// LoadConfig reads .salondesk/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".salondesk", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	deskDir := filepath.Join(dir, ".salondesk")
	if err := os.MkdirAll(deskDir, 0755); err != nil {
		return fmt.Errorf("failed to create .salondesk dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(deskDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// PollInterval returns the configured poll cadence, falling back to the
// default when unset.
func (c *Config) PollInterval() time.Duration {
	if c == nil || c.PollIntervalSeconds <= 0 {
		return DefaultPollIntervalSeconds * time.Second
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// PollDeadline returns the configured escalation deadline, falling back to
// the default when unset.
func (c *Config) PollDeadline() time.Duration {
	if c == nil || c.PollDeadlineSeconds <= 0 {
		return DefaultPollDeadlineSeconds * time.Second
	}
	return time.Duration(c.PollDeadlineSeconds) * time.Second
}

// ShouldLearnOnResolve reports whether resolves feed the knowledge base
// when the supervisor does not say either way. Defaults to learning.
func (c *Config) ShouldLearnOnResolve() bool {
	if c == nil || c.LearnOnResolve == nil {
		return true
	}
	return *c.LearnOnResolve
}
