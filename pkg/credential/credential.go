// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

// Package credential holds the value types that address and carry a stored
// secret. None of them persist anything themselves; persistence belongs to
// the active backend.
package credential

import (
	"strings"

	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
)

// Type discriminates the logical kind of secret stored under a username.
type Type string

const (
	TypePassword       Type = "password"
	TypeToken          Type = "token"
	TypeCertificateKey Type = "certificate-key"
)

// Valid reports whether t is a recognized credential type.
func (t Type) Valid() bool {
	switch t {
	case TypePassword, TypeToken, TypeCertificateKey:
		return true
	default:
		return false
	}
}

// ParseType parses a case-insensitive string into a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(s))
	if !t.Valid() {
		return "", keyfoberr.Errorf(keyfoberr.CodeCredentialInvalidInput,
			"invalid credential type: %q", s)
	}
	return t, nil
}

// Value is the opaque secret payload. It round-trips byte-for-byte through
// the backend; its internal structure is the caller's business.
type Value []byte

// Identity addresses exactly one stored secret: the service namespace set
// via InitializeService plus the per-call username and type.
type Identity struct {
	Service  string
	Username string
	Type     Type
}

// Key returns the backend key for the identity within its service
// namespace. The slash separator keeps entries readable in native store
// inspectors (Keychain Access, cmdkey, seahorse).
func (id Identity) Key() string {
	return id.Username + "/" + string(id.Type)
}

// Validate checks that the identity can address a backend entry.
func (id Identity) Validate() error {
	if id.Service == "" {
		return keyfoberr.New(keyfoberr.CodeCredentialInvalidInput, "credential identity: service must not be empty")
	}
	if id.Username == "" {
		return keyfoberr.New(keyfoberr.CodeCredentialInvalidInput, "credential identity: username must not be empty")
	}
	if !id.Type.Valid() {
		return keyfoberr.Errorf(keyfoberr.CodeCredentialInvalidInput, "credential identity: invalid type %q", string(id.Type))
	}
	return nil
}
