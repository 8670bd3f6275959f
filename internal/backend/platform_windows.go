// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

//go:build windows

package backend

import (
	"errors"
	"slices"
	"strings"

	"github.com/danieljoos/wincred"
	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
	"golang.org/x/sys/windows"
)

func newPlatformStore(_ Options) (Store, error) {
	return &wincredStore{}, nil
}

// wincredStore persists entries as generic credentials in the Windows
// Credential Manager. Blobs are stored as raw bytes; no string encoding is
// needed. The Credential Manager supports enumeration, so this backend also
// implements Lister.
type wincredStore struct{}

func (s *wincredStore) Name() string {
	return "credential-manager"
}

func (s *wincredStore) target(namespace, key string) string {
	return namespace + "/" + key
}

func (s *wincredStore) Put(namespace, key string, value []byte) error {
	cred := wincred.NewGenericCredential(s.target(namespace, key))
	cred.CredentialBlob = slices.Clone(value)
	cred.Persist = wincred.PersistLocalMachine

	if err := cred.Write(); err != nil {
		return keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"credential-manager store: writing %s/%s", namespace, key)
	}
	return nil
}

func (s *wincredStore) Get(namespace, key string) ([]byte, error) {
	cred, err := wincred.GetGenericCredential(s.target(namespace, key))
	if err != nil {
		if errors.Is(err, windows.ERROR_NOT_FOUND) {
			return nil, keyfoberr.Errorf(keyfoberr.CodeCredentialNotFound,
				"credential-manager store: no entry for %s/%s", namespace, key)
		}
		return nil, keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"credential-manager store: reading %s/%s", namespace, key)
	}
	return slices.Clone(cred.CredentialBlob), nil
}

func (s *wincredStore) Delete(namespace, key string) error {
	cred, err := wincred.GetGenericCredential(s.target(namespace, key))
	if err != nil {
		if errors.Is(err, windows.ERROR_NOT_FOUND) {
			return keyfoberr.Errorf(keyfoberr.CodeCredentialNotFound,
				"credential-manager store: no entry for %s/%s", namespace, key)
		}
		return keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"credential-manager store: deleting %s/%s", namespace, key)
	}

	if err := cred.Delete(); err != nil {
		return keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"credential-manager store: deleting %s/%s", namespace, key)
	}
	return nil
}

func (s *wincredStore) Exists(namespace, key string) (bool, error) {
	_, err := wincred.GetGenericCredential(s.target(namespace, key))
	if err != nil {
		if errors.Is(err, windows.ERROR_NOT_FOUND) {
			return false, nil
		}
		return false, keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"credential-manager store: probing %s/%s", namespace, key)
	}
	return true, nil
}

// List enumerates generic credentials whose target carries the namespace
// prefix and returns their keys, sorted.
func (s *wincredStore) List(namespace string) ([]string, error) {
	creds, err := wincred.List()
	if err != nil {
		return nil, keyfoberr.Wrapf(err, keyfoberr.CodeBackendPlatformFailure,
			"credential-manager store: listing %s", namespace)
	}

	prefix := namespace + "/"
	var keys []string
	for _, cred := range creds {
		if strings.HasPrefix(cred.TargetName, prefix) {
			keys = append(keys, strings.TrimPrefix(cred.TargetName, prefix))
		}
	}
	slices.Sort(keys)
	return keys, nil
}
