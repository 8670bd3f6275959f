// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

//go:build ios

package backend

// The iOS protected keychain is only reachable through the Security
// framework, so the Swift side of the host binding supplies the store.
func newPlatformStore(opts Options) (Store, error) {
	return newNativeAdapter("protected-keychain", opts.Native)
}
