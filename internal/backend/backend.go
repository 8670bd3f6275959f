// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

// Package backend defines the capability contract every secure-storage
// backend satisfies, the per-platform selection that picks exactly one of
// them, and the install-once handle the rest of the process reads it from.
package backend

// Store is the minimal contract a concrete secure-storage backend must
// satisfy. Entries are addressed by a (namespace, key) pair; the namespace
// is the service name set via InitializeService and the key encodes the
// username and credential type.
//
// Calls may block on IPC or OS-level prompts (secret-service round-trips,
// keychain unlock dialogs). Callers on latency-sensitive goroutines must
// schedule them off that path themselves.
type Store interface {
	// Name returns the backend identifier (e.g. "keychain", "wincred", "mock").
	Name() string

	// Put persists value under (namespace, key), overwriting any existing entry.
	Put(namespace, key string, value []byte) error

	// Get returns the value stored under (namespace, key).
	// Returns a credential.not_found coded error if no entry exists.
	Get(namespace, key string) ([]byte, error)

	// Delete removes the entry under (namespace, key).
	// Returns a credential.not_found coded error if no entry exists.
	Delete(namespace, key string) error

	// Exists reports whether an entry is stored under (namespace, key).
	// It never creates or mutates entries.
	Exists(namespace, key string) (bool, error)
}

// Lister is an optional capability for backends that can enumerate the keys
// stored in a namespace. The Windows Credential Manager and the in-memory
// mock support it; the string-based keyring backends do not.
type Lister interface {
	Store

	// List returns the keys stored under namespace, sorted.
	List(namespace string) ([]string, error)
}

// NativeStore is the secure-storage surface a mobile host application
// provides when keyfob is embedded via a binding generator. The Kotlin
// implementation backs it with the Android Keystore, the Swift one with the
// protected iOS keychain. Signatures stay binding-friendly: byte slices,
// scalars, and a trailing error.
type NativeStore interface {
	// Put persists value, overwriting any existing entry.
	Put(namespace, key string, value []byte) error

	// Get returns the stored value, or (nil, nil) when no entry exists.
	// Absence is signalled in-band because sentinel errors do not cross
	// the binding boundary.
	Get(namespace, key string) ([]byte, error)

	// Delete removes the entry and reports whether one existed.
	Delete(namespace, key string) (bool, error)

	// Exists reports whether an entry is stored, without side effects.
	Exists(namespace, key string) (bool, error)
}
