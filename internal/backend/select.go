// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

package backend

import (
	"log/slog"
	"os"
)

// EnvUseMock selects the in-memory mock backend when present in the
// environment, bypassing all platform branches. The name is a stable
// external contract; deterministic test deployments depend on it.
const EnvUseMock = "KEYRING_USE_MOCK"

// Options carries platform-specific construction inputs. Native is only
// consulted on mobile targets, where the host application must hand over
// its secure-store implementation.
type Options struct {
	Native NativeStore
}

// Select chooses exactly one backend for this process:
//
//  1. EnvUseMock present → in-memory mock, regardless of platform.
//  2. Otherwise the compile-time target decides: Credential Manager on
//     Windows, Keychain on macOS, secret-service or kernel keyring on Linux
//     (keyutils build tag), the host-provided native store on Android/iOS.
//
// Construction failures surface as backend.platform.failure errors carrying
// the underlying diagnostic; there is no fallback to another backend.
// Select has no process-wide effect — installing the result into a Handle
// is the host binding's job.
func Select(opts Options) (Store, error) {
	if _, ok := os.LookupEnv(EnvUseMock); ok {
		slog.Debug("mock credential backend selected", "env", EnvUseMock)
		return NewMemoryStore(), nil
	}

	return newPlatformStore(opts)
}
