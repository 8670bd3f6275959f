// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

package backend

import (
	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
)

// nativeAdapter bridges a host-provided NativeStore to the Store contract,
// translating the binding-friendly in-band absence signalling back into the
// coded error taxonomy. It backs the Android and iOS selections but is kept
// portable so the translation logic is testable everywhere.
type nativeAdapter struct {
	name   string
	native NativeStore
}

// newNativeAdapter wraps the host's native store. It fails when the host
// binding did not supply one; there is nothing to fall back to on mobile.
func newNativeAdapter(name string, native NativeStore) (*nativeAdapter, error) {
	if native == nil {
		return nil, keyfoberr.Errorf(keyfoberr.CodeBackendPlatformFailure,
			"%s store: host binding supplied no native store handle", name)
	}
	return &nativeAdapter{name: name, native: native}, nil
}

func (a *nativeAdapter) Name() string {
	return a.name
}

func (a *nativeAdapter) Put(namespace, key string, value []byte) error {
	if err := a.native.Put(namespace, key, value); err != nil {
		return keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"%s store: writing %s/%s", a.name, namespace, key)
	}
	return nil
}

func (a *nativeAdapter) Get(namespace, key string) ([]byte, error) {
	value, err := a.native.Get(namespace, key)
	if err != nil {
		return nil, keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"%s store: reading %s/%s", a.name, namespace, key)
	}
	if value == nil {
		return nil, keyfoberr.Errorf(keyfoberr.CodeCredentialNotFound,
			"%s store: no entry for %s/%s", a.name, namespace, key)
	}
	return value, nil
}

func (a *nativeAdapter) Delete(namespace, key string) error {
	removed, err := a.native.Delete(namespace, key)
	if err != nil {
		return keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"%s store: deleting %s/%s", a.name, namespace, key)
	}
	if !removed {
		return keyfoberr.Errorf(keyfoberr.CodeCredentialNotFound,
			"%s store: no entry for %s/%s", a.name, namespace, key)
	}
	return nil
}

func (a *nativeAdapter) Exists(namespace, key string) (bool, error) {
	present, err := a.native.Exists(namespace, key)
	if err != nil {
		return false, keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"%s store: probing %s/%s", a.name, namespace, key)
	}
	return present, nil
}
