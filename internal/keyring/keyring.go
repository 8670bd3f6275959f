// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

// Package keyring exposes the uniform credential CRUD surface over whatever
// backend the host binding installed. Every operation is a single
// synchronous delegation to the active backend; there is no retry, caching,
// or reordering here.
package keyring

import (
	"sync"

	"github.com/keyfob-dev/keyfob/internal/backend"
	"github.com/keyfob-dev/keyfob/pkg/credential"
	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
)

// Keyring is the credential service facade. It reads the active backend
// from an install-once Handle rather than ambient global state, so tests
// and embedders wire their own.
//
// Concurrent Set/Delete on the same identity is a race the caller must
// serialize; the backend decides which write wins.
type Keyring struct {
	handle *backend.Handle

	mu      sync.RWMutex
	service string
}

// New returns a Keyring reading its backend from handle. InitializeService
// must be called before any credential operation.
func New(handle *backend.Handle) *Keyring {
	return &Keyring{handle: handle}
}

// InitializeService sets the service namespace that scopes every subsequent
// operation. Calling it again replaces the namespace; calling CRUD before
// it fails with keyring.service.uninitialized.
func (k *Keyring) InitializeService(serviceName string) error {
	if serviceName == "" {
		return keyfoberr.New(keyfoberr.CodeCredentialInvalidInput, "initialize service: name must not be empty")
	}

	k.mu.Lock()
	k.service = serviceName
	k.mu.Unlock()
	return nil
}

// Service returns the current service namespace, empty if uninitialized.
func (k *Keyring) Service() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.service
}

// Set writes value under (service, username, credentialType), creating or
// overwriting the entry.
func (k *Keyring) Set(username string, credentialType credential.Type, value credential.Value) error {
	store, id, err := k.resolve(username, credentialType)
	if err != nil {
		return err
	}
	return store.Put(id.Service, id.Key(), value)
}

// Get returns the value stored for (service, username, credentialType), or
// a credential.not_found coded error.
func (k *Keyring) Get(username string, credentialType credential.Type) (credential.Value, error) {
	store, id, err := k.resolve(username, credentialType)
	if err != nil {
		return nil, err
	}

	value, err := store.Get(id.Service, id.Key())
	if err != nil {
		return nil, err
	}
	return credential.Value(value), nil
}

// Delete removes the stored value, failing with credential.not_found when
// nothing was stored. Removal is all-or-nothing at the backend.
func (k *Keyring) Delete(username string, credentialType credential.Type) error {
	store, id, err := k.resolve(username, credentialType)
	if err != nil {
		return err
	}
	return store.Delete(id.Service, id.Key())
}

// Exists reports whether a value is stored, without surfacing absence as an
// error and without creating entries.
func (k *Keyring) Exists(username string, credentialType credential.Type) (bool, error) {
	store, id, err := k.resolve(username, credentialType)
	if err != nil {
		return false, err
	}
	return store.Exists(id.Service, id.Key())
}

// List returns the keys stored under the service namespace when the active
// backend supports enumeration, and backend.list.unsupported otherwise.
func (k *Keyring) List() ([]string, error) {
	store, err := k.handle.Active()
	if err != nil {
		return nil, err
	}

	service, err := k.requireService()
	if err != nil {
		return nil, err
	}

	lister, ok := store.(backend.Lister)
	if !ok {
		return nil, keyfoberr.Errorf(keyfoberr.CodeBackendListUnsupported,
			"%s backend does not support enumeration", store.Name())
	}
	return lister.List(service)
}

// BackendName names the active backend, mainly for diagnostics.
func (k *Keyring) BackendName() (string, error) {
	store, err := k.handle.Active()
	if err != nil {
		return "", err
	}
	return store.Name(), nil
}

func (k *Keyring) resolve(username string, credentialType credential.Type) (backend.Store, credential.Identity, error) {
	store, err := k.handle.Active()
	if err != nil {
		return nil, credential.Identity{}, err
	}

	service, err := k.requireService()
	if err != nil {
		return nil, credential.Identity{}, err
	}

	id := credential.Identity{Service: service, Username: username, Type: credentialType}
	if err := id.Validate(); err != nil {
		return nil, credential.Identity{}, err
	}
	return store, id, nil
}

func (k *Keyring) requireService() (string, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if k.service == "" {
		return "", keyfoberr.New(keyfoberr.CodeServiceUninitialized,
			"keyring: InitializeService must be called before credential operations")
	}
	return k.service, nil
}
