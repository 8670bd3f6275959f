// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

package config_test

import (
	"testing"

	"github.com/keyfob-dev/keyfob/internal/config"
	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "keyfob", cfg.Service)
	assert.False(t, cfg.Verbose)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("KEYFOB_SERVICE", "acme-app")

	v := viper.New()
	config.SetDefaults(v)
	config.SetupEnv(v)

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "acme-app", cfg.Service)
}

func TestValidateRejectsEmptyService(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("service", "")

	_, err := config.Load(v)
	require.Error(t, err)
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeConfigValidateInvalidValue))
}

func TestValidateRejectsSlashInService(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("service", "acme/app")

	_, err := config.Load(v)
	require.Error(t, err)
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeConfigValidateInvalidValue))
}

func TestDefaultConfigMatchesDefaults(t *testing.T) {
	// The shipped default file must agree with the programmatic defaults.
	var fromFile struct {
		Service string `yaml:"service"`
		Verbose bool   `yaml:"verbose"`
	}
	require.NoError(t, yaml.Unmarshal(config.DefaultConfigYAML, &fromFile))

	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, cfg.Service, fromFile.Service)
	assert.Equal(t, cfg.Verbose, fromFile.Verbose)
}
