package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var envPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

// ExpandEnvStrict expands ${VAR} references and errors if any env var is missing.
func ExpandEnvStrict(input string) (string, error) {
	matches := envPattern.FindAllStringSubmatchIndex(input, -1)
	if len(matches) == 0 {
		return input, nil
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(input[last:m[0]])
		name := input[m[2]:m[3]]
		val, ok := os.LookupEnv(name)
		if !ok {
			return "", fmt.Errorf("missing env var %s", name)
		}
		b.WriteString(val)
		last = m[1]
	}
	b.WriteString(input[last:])
	return b.String(), nil
}

// ExpandEnv expands ${VAR} references in the endpoint, header values, user
// agent and OTLP endpoint.
func (c *Config) ExpandEnv() error {
	var err error
	if c.Endpoint, err = ExpandEnvStrict(c.Endpoint); err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	for k, v := range c.Headers {
		if c.Headers[k], err = ExpandEnvStrict(v); err != nil {
			return fmt.Errorf("headers.%s: %w", k, err)
		}
	}
	if c.UserAgent, err = ExpandEnvStrict(c.UserAgent); err != nil {
		return fmt.Errorf("user_agent: %w", err)
	}
	if c.OTel.Endpoint, err = ExpandEnvStrict(c.OTel.Endpoint); err != nil {
		return fmt.Errorf("otel.endpoint: %w", err)
	}
	return nil
}
