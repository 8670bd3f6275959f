// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

// Package host binds the keyring to the embedding application. Exactly one
// Init call belongs in host startup: it runs backend selection once,
// installs the result into the handle, and hands back the facade the host
// routes credential calls through. Desktop and mobile targets get separate
// adapter implementations behind build tags; the facade itself never knows
// which one ran.
package host

import (
	"github.com/keyfob-dev/keyfob/internal/backend"
	"github.com/keyfob-dev/keyfob/internal/keyring"
)

// Binding carries what the host hands over at startup. On desktop both
// fields are optional. On mobile, Native is the host's Keystore/keychain
// implementation (required) and Register is the host's plugin-binding hook
// that makes the keyring reachable from its side of the boundary (required).
type Binding struct {
	Native   backend.NativeStore
	Register func(*keyring.Keyring) error
}
