// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

//go:build darwin && !ios

package backend

func newPlatformStore(_ Options) (Store, error) {
	return newKeyringStore("keychain"), nil
}
