// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

package main

import (
	"github.com/keyfob-dev/keyfob/internal/host/goplugin"
	"github.com/spf13/cobra"
)

func newPluginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugin",
		Short: "Run keyfob as a host-application plugin",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the keyring over the go-plugin protocol",
		Long:  "Block serving credential operations to a parent host process. The host calls InitializeService before any credential operation; this command is not meant for interactive use.",
		RunE:  runPluginServe,
	})

	return cmd
}

func runPluginServe(_ *cobra.Command, _ []string) error {
	// Service initialization is the host's call to make, over the wire.
	kr, err := keyringFactory()
	if err != nil {
		return err
	}

	goplugin.Serve(kr)
	return nil
}
