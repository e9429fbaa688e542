// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every variable the portfolio service reads.
const EnvPrefix = "PORTFOLIO_"

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseEnvWithPrefix loads configuration whose env tags are relative to prefix.
//
// The prefix is normalized to upper case with a trailing underscore so callers
// can pass "github" or "PORTFOLIO_GITHUB_" interchangeably.
func ParseEnvWithPrefix(target any, prefix string) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: normalizePrefix(prefix)}); err != nil {
		return fmt.Errorf("parse env %s: %w", strings.TrimSuffix(normalizePrefix(prefix), "_"), err)
	}
	return nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		return EnvPrefix
	}
	if !strings.HasPrefix(prefix, EnvPrefix) {
		prefix = EnvPrefix + prefix
	}
	if !strings.HasSuffix(prefix, "_") {
		prefix += "_"
	}
	return prefix
}
