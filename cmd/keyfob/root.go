// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/keyfob-dev/keyfob/internal/config"
	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd creates the root keyfob command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "keyfob",
		Short:         "Keyfob — credentials in the platform-native secure store",
		Long:          "Keyfob stores, retrieves, and deletes named credentials through whichever secure store is native to this platform: Credential Manager, Keychain, secret-service, or the kernel keyring.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initViper(cmd); err != nil {
				return err
			}
			setupLogging(viper.GetBool("verbose"))
			return nil
		},
	}

	// Global flags — these map to viper keys via initViper.
	root.PersistentFlags().StringP("config", "c", "", "path to config file")
	root.PersistentFlags().StringP("service", "s", "", "service namespace for credential keys")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	// Register subcommands
	root.AddCommand(
		newSetCmd(),
		newGetCmd(),
		newDeleteCmd(),
		newExistsCmd(),
		newListCmd(),
		newDoctorCmd(),
		newPluginCmd(),
		newVersionCmd(),
	)

	return root
}

// initViper sets up the global Viper with defaults, env bindings, flag
// bindings, and optional config file so the standard precedence
// (flag > env > file > defaults) is handled uniformly.
func initViper(cmd *cobra.Command) error {
	v := viper.GetViper()

	config.SetDefaults(v)
	config.SetupEnv(v)

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return keyfoberr.Errorf(keyfoberr.CodeConfigLoadReadFailure, "reading config file: %w", err)
		}
	} else {
		// Auto-discover keyfob.yaml from standard locations.
		// Note: SetConfigType is intentionally omitted. When set, Viper
		// falls back to trying the bare config name without extension,
		// which collides with the ./keyfob binary in the project root.
		v.SetConfigName("keyfob")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/keyfob")
		v.AddConfigPath("/etc/keyfob")
		// No config file is fine — defaults and env vars still apply.
		// Parse or permission errors must surface.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return keyfoberr.Errorf(keyfoberr.CodeConfigLoadReadFailure, "reading config: %w", err)
			}
			// No config found anywhere — bootstrap a default to ~/.config/keyfob/.
			if path := config.BootstrapConfig(); path != "" {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return keyfoberr.Errorf(keyfoberr.CodeConfigLoadReadFailure, "reading bootstrapped config: %w", err)
				}
			}
		}
	}

	// Bind persistent flags to viper keys.
	if err := v.BindPFlag("service", cmd.Root().PersistentFlags().Lookup("service")); err != nil {
		return keyfoberr.Errorf(keyfoberr.CodeCLISetupFailure, "binding service flag: %w", err)
	}
	if err := v.BindPFlag("verbose", cmd.Root().PersistentFlags().Lookup("verbose")); err != nil {
		return keyfoberr.Errorf(keyfoberr.CodeCLISetupFailure, "binding verbose flag: %w", err)
	}

	return nil
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
