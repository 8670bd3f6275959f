// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

package backend

import (
	"slices"
	"sync"

	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
)

// MemoryStore is the volatile mock backend. Entries live for the process
// lifetime only and never touch a platform store, which makes tests
// deterministic on any machine.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]map[string][]byte)}
}

func (m *MemoryStore) Name() string {
	return "mock"
}

func (m *MemoryStore) Put(namespace, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.entries[namespace]
	if !ok {
		ns = make(map[string][]byte)
		m.entries[namespace] = ns
	}
	ns[key] = slices.Clone(value)
	return nil
}

func (m *MemoryStore) Get(namespace, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[namespace][key]
	if !ok {
		return nil, keyfoberr.Errorf(keyfoberr.CodeCredentialNotFound,
			"mock store: no entry for %s/%s", namespace, key)
	}
	return slices.Clone(value), nil
}

func (m *MemoryStore) Delete(namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[namespace][key]; !ok {
		return keyfoberr.Errorf(keyfoberr.CodeCredentialNotFound,
			"mock store: no entry for %s/%s", namespace, key)
	}
	delete(m.entries[namespace], key)
	return nil
}

func (m *MemoryStore) Exists(namespace, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[namespace][key]
	return ok, nil
}

// List returns the keys stored under namespace, sorted.
func (m *MemoryStore) List(namespace string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.entries[namespace]))
	for k := range m.entries[namespace] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}
