// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

//go:build android

package backend

// Android has no process-accessible keyring; secrets go through the host
// application's Keystore-backed NativeStore, which the mobile host binding
// must supply.
func newPlatformStore(opts Options) (Store, error) {
	return newNativeAdapter("android-keystore", opts.Native)
}
