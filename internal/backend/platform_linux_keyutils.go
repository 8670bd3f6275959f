// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

//go:build linux && !android && keyutils

package backend

import (
	"errors"

	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
	"golang.org/x/sys/unix"
)

func newPlatformStore(_ Options) (Store, error) {
	return &keyutilsStore{ring: unix.KEY_SPEC_USER_KEYRING}, nil
}

// keyutilsStore persists entries as "user" keys in the kernel per-user
// keyring. Useful on headless systems with no secret-service daemon.
// Entries do not survive reboot; the kernel keyring is memory-backed.
type keyutilsStore struct {
	ring int
}

func (s *keyutilsStore) Name() string {
	return "kernel-keyring"
}

func (s *keyutilsStore) description(namespace, key string) string {
	return namespace + "/" + key
}

func (s *keyutilsStore) search(namespace, key string) (int, error) {
	id, err := unix.KeyctlSearch(s.ring, "user", s.description(namespace, key), 0)
	if err != nil {
		if errors.Is(err, unix.ENOKEY) {
			return 0, keyfoberr.Errorf(keyfoberr.CodeCredentialNotFound,
				"kernel-keyring store: no entry for %s/%s", namespace, key)
		}
		return 0, keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"kernel-keyring store: searching %s/%s", namespace, key)
	}
	return id, nil
}

func (s *keyutilsStore) Put(namespace, key string, value []byte) error {
	// add_key replaces the payload when a key with the same description
	// already exists in the ring, giving overwrite semantics for free.
	if _, err := unix.AddKey("user", s.description(namespace, key), value, s.ring); err != nil {
		return keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"kernel-keyring store: writing %s/%s", namespace, key)
	}
	return nil
}

func (s *keyutilsStore) Get(namespace, key string) ([]byte, error) {
	id, err := s.search(namespace, key)
	if err != nil {
		return nil, err
	}

	size, err := unix.KeyctlBuffer(unix.KEYCTL_READ, id, nil, 0)
	if err != nil {
		return nil, keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"kernel-keyring store: sizing %s/%s", namespace, key)
	}

	value := make([]byte, size)
	if _, err := unix.KeyctlBuffer(unix.KEYCTL_READ, id, value, 0); err != nil {
		return nil, keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"kernel-keyring store: reading %s/%s", namespace, key)
	}
	return value, nil
}

func (s *keyutilsStore) Delete(namespace, key string) error {
	id, err := s.search(namespace, key)
	if err != nil {
		return err
	}

	if _, err := unix.KeyctlInt(unix.KEYCTL_UNLINK, id, s.ring, 0, 0); err != nil {
		return keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"kernel-keyring store: deleting %s/%s", namespace, key)
	}
	return nil
}

func (s *keyutilsStore) Exists(namespace, key string) (bool, error) {
	_, err := s.search(namespace, key)
	if err != nil {
		if keyfoberr.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
