// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/keyfob-dev/keyfob/internal/backend"
	"github.com/keyfob-dev/keyfob/internal/config"
	"github.com/keyfob-dev/keyfob/internal/host"
	"github.com/keyfob-dev/keyfob/internal/keyring"
	"github.com/keyfob-dev/keyfob/pkg/credential"
	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// keyringFactory builds the process keyring. It is a package-level variable
// so tests can substitute one sharing state across command invocations.
var keyringFactory = func() (*keyring.Keyring, error) {
	return host.Init(backend.NewHandle(), host.Binding{})
}

// openKeyring initializes the keyring with the configured service namespace.
func openKeyring() (*keyring.Keyring, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	kr, err := keyringFactory()
	if err != nil {
		return nil, err
	}

	if err := kr.InitializeService(cfg.Service); err != nil {
		return nil, err
	}
	return kr, nil
}

func typeFlag(cmd *cobra.Command) (credential.Type, error) {
	raw, _ := cmd.Flags().GetString("type")
	return credential.ParseType(raw)
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <username>",
		Short: "Store a credential",
		Long:  "Store a credential under the configured service namespace. The value is read from stdin, or prompted without echo on a terminal.",
		Args:  cobra.ExactArgs(1),
		RunE:  runSet,
	}
	cmd.Flags().StringP("type", "t", string(credential.TypePassword), "credential type (password, token, certificate-key)")
	return cmd
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <username>",
		Short: "Print a stored credential to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  runGet,
	}
	cmd.Flags().StringP("type", "t", string(credential.TypePassword), "credential type (password, token, certificate-key)")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a stored credential",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
	cmd.Flags().StringP("type", "t", string(credential.TypePassword), "credential type (password, token, certificate-key)")
	return cmd
}

func newExistsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exists <username>",
		Short: "Report whether a credential is stored",
		Args:  cobra.ExactArgs(1),
		RunE:  runExists,
	}
	cmd.Flags().StringP("type", "t", string(credential.TypePassword), "credential type (password, token, certificate-key)")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored credential keys",
		Long:  "List the credential keys stored under the configured service namespace. Not every backend supports enumeration.",
		RunE:  runList,
	}
}

func runSet(cmd *cobra.Command, args []string) error {
	username := args[0]
	ctype, err := typeFlag(cmd)
	if err != nil {
		return err
	}

	value, err := readSecret(cmd)
	if err != nil {
		return err
	}

	kr, err := openKeyring()
	if err != nil {
		return err
	}

	if err := kr.Set(username, ctype, value); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored credential: %s/%s\n", username, ctype)
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	ctype, err := typeFlag(cmd)
	if err != nil {
		return err
	}

	kr, err := openKeyring()
	if err != nil {
		return err
	}

	value, err := kr.Get(args[0], ctype)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(value)
	return err
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctype, err := typeFlag(cmd)
	if err != nil {
		return err
	}

	kr, err := openKeyring()
	if err != nil {
		return err
	}

	if err := kr.Delete(args[0], ctype); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted credential: %s/%s\n", args[0], ctype)
	return nil
}

func runExists(cmd *cobra.Command, args []string) error {
	ctype, err := typeFlag(cmd)
	if err != nil {
		return err
	}

	kr, err := openKeyring()
	if err != nil {
		return err
	}

	present, err := kr.Exists(args[0], ctype)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), present)
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	kr, err := openKeyring()
	if err != nil {
		return err
	}

	keys, err := kr.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(keys) == 0 {
		_, _ = fmt.Fprintln(out, "No credentials stored.")
		return nil
	}

	for _, k := range keys {
		_, _ = fmt.Fprintln(out, k)
	}
	return nil
}

// readSecret reads the credential value: prompted without echo on a
// terminal, otherwise read from stdin with a single trailing newline
// stripped so `echo secret | keyfob set` behaves as expected.
func readSecret(cmd *cobra.Command) (credential.Value, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Value: ")
		value, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return nil, keyfoberr.Errorf(keyfoberr.CodeCLIInputInvalid, "reading value: %w", err)
		}
		return credential.Value(value), nil
	}

	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, keyfoberr.Errorf(keyfoberr.CodeCLIInputInvalid, "reading value from stdin: %w", err)
	}

	trimmed := strings.TrimSuffix(string(raw), "\n")
	trimmed = strings.TrimSuffix(trimmed, "\r")
	if trimmed == "" {
		return nil, keyfoberr.New(keyfoberr.CodeCLIInputInvalid, "credential value must not be empty")
	}
	return credential.Value(trimmed), nil
}
