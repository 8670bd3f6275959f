// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

package backend

import (
	"encoding/base64"
	"errors"

	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
	"github.com/zalando/go-keyring"
)

// keyringStore adapts zalando/go-keyring to the Store contract. It backs
// the macOS Keychain and Linux secret-service selections; the library also
// compiles (with a mock) everywhere else, which keeps this file portable
// and testable on any platform.
//
// go-keyring stores string values. Payloads are base64-encoded so arbitrary
// bytes round-trip exactly; the Windows credential APIs in particular
// mangle raw non-UTF-16 data (NUL insertion between characters).
type keyringStore struct {
	name string
}

func newKeyringStore(name string) *keyringStore {
	return &keyringStore{name: name}
}

func (s *keyringStore) Name() string {
	return s.name
}

func (s *keyringStore) Put(namespace, key string, value []byte) error {
	encoded := base64.StdEncoding.EncodeToString(value)
	if err := keyring.Set(namespace, key, encoded); err != nil {
		return keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"%s store: writing %s/%s", s.name, namespace, key)
	}
	return nil
}

func (s *keyringStore) Get(namespace, key string) ([]byte, error) {
	encoded, err := keyring.Get(namespace, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, keyfoberr.Errorf(keyfoberr.CodeCredentialNotFound,
				"%s store: no entry for %s/%s", s.name, namespace, key)
		}
		return nil, keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"%s store: reading %s/%s", s.name, namespace, key)
	}

	value, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"%s store: malformed entry %s/%s", s.name, namespace, key)
	}
	return value, nil
}

func (s *keyringStore) Delete(namespace, key string) error {
	if err := keyring.Delete(namespace, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return keyfoberr.Errorf(keyfoberr.CodeCredentialNotFound,
				"%s store: no entry for %s/%s", s.name, namespace, key)
		}
		return keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"%s store: deleting %s/%s", s.name, namespace, key)
	}
	return nil
}

func (s *keyringStore) Exists(namespace, key string) (bool, error) {
	_, err := keyring.Get(namespace, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return false, nil
		}
		return false, keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"%s store: probing %s/%s", s.name, namespace, key)
	}
	return true, nil
}
