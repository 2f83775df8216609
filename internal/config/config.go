// Package config loads the YAML configuration file of the graphy CLI.
package config

import (
	"fmt"
	"time"

	"github.com/hanpama/graphy/internal/client"
)

type Config struct {
	Endpoint  string            `yaml:"endpoint"`
	Headers   map[string]string `yaml:"headers,omitempty"`
	Timeout   time.Duration     `yaml:"timeout,omitempty"`
	UserAgent string            `yaml:"user_agent,omitempty"`
	Settings  SettingsConfig    `yaml:"settings,omitempty"`
	Log       LogConfig         `yaml:"log,omitempty"`
	OTel      OTelConfig        `yaml:"otel,omitempty"`
}

type SettingsConfig struct {
	MaxRecursionDepth      *int   `yaml:"max_recursion_depth,omitempty"`
	ResponseKey            string `yaml:"response_key,omitempty"`
	ReturnRawResponse      bool   `yaml:"return_raw_response,omitempty"`
	DisableSelectionLookup bool   `yaml:"disable_selection_lookup,omitempty"`
	CheckSyntax            bool   `yaml:"check_syntax,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"` // text or json
}

type OTelConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"` // OTLP gRPC collector; empty disables tracing
	Service  string `yaml:"service,omitempty"`
}

// Default returns a configuration with defaults applied and no endpoint.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "graphy"
	}
	if c.Settings.MaxRecursionDepth == nil {
		depth := client.DefaultSettings().MaxRecursionDepth
		c.Settings.MaxRecursionDepth = &depth
	}
	if c.Settings.ResponseKey == "" {
		c.Settings.ResponseKey = client.DefaultSettings().ResponseKey
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.OTel.Service == "" {
		c.OTel.Service = "graphy"
	}
}

func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if d := c.Settings.MaxRecursionDepth; d != nil && *d < 0 {
		return fmt.Errorf("settings.max_recursion_depth must not be negative")
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// ClientSettings converts the settings section for client.WithSettings.
func (c *Config) ClientSettings() client.Settings {
	s := client.DefaultSettings()
	if c.Settings.MaxRecursionDepth != nil {
		s.MaxRecursionDepth = *c.Settings.MaxRecursionDepth
	}
	if c.Settings.ResponseKey != "" {
		s.ResponseKey = c.Settings.ResponseKey
	}
	s.ReturnRawResponse = c.Settings.ReturnRawResponse
	s.DisableSelectionLookup = c.Settings.DisableSelectionLookup
	s.CheckSyntax = c.Settings.CheckSyntax
	return s
}
