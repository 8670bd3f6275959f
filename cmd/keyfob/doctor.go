// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/keyfob-dev/keyfob/internal/backend"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// availabilityProbeKey is never written; probing its existence detects a
// locked or unreachable store without side effects.
const availabilityProbeKey = "__keyfob_availability_probe__"

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run diagnostics",
		Long:  "Check which credential backend this platform selects and whether it is reachable.",
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	checks := []struct {
		name string
		fn   func() string
	}{
		{"Binary", checkBinary},
		{"Config", checkConfig},
		{"Mock Override", checkMockOverride},
		{"Backend", checkBackend},
		{"Store Access", checkStoreAccess},
	}

	for _, c := range checks {
		if _, err := fmt.Fprintf(w, "%-16s %s\n", c.name+":", c.fn()); err != nil {
			return err
		}
	}

	return nil
}

func checkBinary() string {
	return fmt.Sprintf("keyfob %s (%s/%s, Go %s)", version, runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func checkConfig() string {
	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		return "defaults (no config file)"
	}
	return cfgFile
}

func checkMockOverride() string {
	if _, ok := os.LookupEnv(backend.EnvUseMock); ok {
		return fmt.Sprintf("active (%s is set)", backend.EnvUseMock)
	}
	return "inactive"
}

func checkBackend() string {
	store, err := backend.Select(backend.Options{})
	if err != nil {
		return fmt.Sprintf("error: %s", err)
	}
	return store.Name()
}

// checkStoreAccess probes a key that is never written. A NotFound-free
// probe proves the store answers; anything else surfaces locked keychains
// or an unreachable secret-service daemon.
func checkStoreAccess() string {
	store, err := backend.Select(backend.Options{})
	if err != nil {
		return fmt.Sprintf("error: %s", err)
	}

	service := viper.GetString("service")
	if _, err := store.Exists(service, availabilityProbeKey); err != nil {
		return fmt.Sprintf("error: %s", err)
	}
	return "ok"
}
