// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

//go:build android || ios

package host

import (
	"log/slog"

	"github.com/keyfob-dev/keyfob/internal/backend"
	"github.com/keyfob-dev/keyfob/internal/keyring"
	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
)

// Init constructs the mobile backend from the host's native store handle,
// installs it, and registers the keyring with the host's plugin-binding
// mechanism so the application side can route calls into it.
func Init(handle *backend.Handle, b Binding) (*keyring.Keyring, error) {
	if b.Register == nil {
		return nil, keyfoberr.New(keyfoberr.CodeHostBindingFailure,
			"mobile host binding: Register hook must be provided")
	}

	store, err := backend.Select(backend.Options{Native: b.Native})
	if err != nil {
		return nil, err
	}

	if err := handle.Install(store); err != nil {
		return nil, err
	}
	slog.Debug("credential backend installed", "backend", store.Name())

	kr := keyring.New(handle)
	if err := b.Register(kr); err != nil {
		return nil, keyfoberr.Wrap(err, keyfoberr.CodeHostBindingFailure, "registering keyring with host")
	}
	return kr, nil
}
