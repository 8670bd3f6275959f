// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

package backend

import (
	"sync/atomic"

	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
)

// Handle is the install-once container for the active backend. The host
// binding installs exactly one Store during startup; every credential
// operation afterwards reads it through Active. The atomic pointer makes a
// fully-constructed store visible to all goroutines once Install returns.
type Handle struct {
	store atomic.Pointer[Store]
}

// NewHandle returns an empty Handle with no backend installed.
func NewHandle() *Handle {
	return &Handle{}
}

// Install sets the active backend. It fails with backend.install.conflict
// if a backend was already installed; re-selecting a backend mid-process is
// a programming error, not something to resolve silently.
func (h *Handle) Install(s Store) error {
	if s == nil {
		return keyfoberr.New(keyfoberr.CodeCredentialInvalidInput, "backend handle: store must not be nil")
	}

	if !h.store.CompareAndSwap(nil, &s) {
		installed, _ := h.Active()
		return keyfoberr.Errorf(keyfoberr.CodeBackendInstallConflict,
			"backend handle: %s backend already installed", installed.Name())
	}

	return nil
}

// Active returns the installed backend, or a backend.uninitialized error if
// Install has not completed yet.
func (h *Handle) Active() (Store, error) {
	p := h.store.Load()
	if p == nil {
		return nil, keyfoberr.New(keyfoberr.CodeBackendUninitialized,
			"backend handle: no backend installed; host binding Init must run first")
	}
	return *p, nil
}
