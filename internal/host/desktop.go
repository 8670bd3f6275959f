// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

//go:build !android && !ios

package host

import (
	"log/slog"

	"github.com/keyfob-dev/keyfob/internal/backend"
	"github.com/keyfob-dev/keyfob/internal/keyring"
	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
)

// Init selects and installs the desktop backend, then returns the keyring
// facade. A selection or installation failure is fatal to initialization;
// the host must not offer credential operations afterwards.
func Init(handle *backend.Handle, b Binding) (*keyring.Keyring, error) {
	store, err := backend.Select(backend.Options{})
	if err != nil {
		return nil, err
	}

	if err := handle.Install(store); err != nil {
		return nil, err
	}
	slog.Debug("credential backend installed", "backend", store.Name())

	kr := keyring.New(handle)
	if b.Register != nil {
		if err := b.Register(kr); err != nil {
			return nil, keyfoberr.Wrap(err, keyfoberr.CodeHostBindingFailure, "registering keyring with host")
		}
	}
	return kr, nil
}
