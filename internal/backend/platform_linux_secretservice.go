// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

//go:build linux && !android && !keyutils

package backend

// The default Linux backend talks to the freedesktop secret-service daemon
// (GNOME Keyring, KWallet) over D-Bus. Building with -tags keyutils swaps
// in the kernel-keyring backend instead; the tag pair keeps the two
// mutually exclusive at compile time.
func newPlatformStore(_ Options) (Store, error) {
	return newKeyringStore("secret-service"), nil
}
