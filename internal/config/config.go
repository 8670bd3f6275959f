// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

// Package config loads the CLI configuration with the standard viper
// precedence: flags over environment over file over defaults.
package config

import (
	"strings"

	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
	"github.com/spf13/viper"
)

// Config is the top-level keyfob configuration.
type Config struct {
	// Service is the namespace prefixing every credential key.
	Service string `mapstructure:"service"`

	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("service", "keyfob")
	v.SetDefault("verbose", false)
}

// SetupEnv binds KEYFOB_-prefixed environment variables on v.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix("KEYFOB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, keyfoberr.Errorf(keyfoberr.CodeConfigValidateInvalidValue, "unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for logical errors.
func (c *Config) Validate() error {
	if c.Service == "" {
		return keyfoberr.New(keyfoberr.CodeConfigValidateInvalidValue, "config: service must not be empty")
	}
	// The slash separates service namespace from credential key in backend
	// targets; allowing it in the namespace would let identities collide.
	if strings.Contains(c.Service, "/") {
		return keyfoberr.Errorf(keyfoberr.CodeConfigValidateInvalidValue,
			"config: service must not contain '/', got %q", c.Service)
	}
	return nil
}
