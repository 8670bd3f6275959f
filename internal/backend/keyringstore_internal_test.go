// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

package backend

import (
	"testing"

	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func init() {
	// Route go-keyring through its in-memory mock so tests never touch the
	// real OS keyring.
	keyring.MockInit()
}

func TestKeyringStoreRoundTripBinary(t *testing.T) {
	s := newKeyringStore("keychain")

	// NUL and high bytes must survive the string-backed store.
	secret := []byte{0x00, 0x01, 0xfe, 0xff, 's', '3', 'c', 'r', '3', 't', 0x00}
	require.NoError(t, s.Put("acme-app", "alice/password", secret))

	got, err := s.Get("acme-app", "alice/password")
	require.NoError(t, err)
	assert.Equal(t, secret, got)
}

func TestKeyringStoreGetAbsent(t *testing.T) {
	s := newKeyringStore("keychain")

	_, err := s.Get("acme-app", "nobody/token")
	require.Error(t, err)
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeCredentialNotFound))
}

func TestKeyringStoreOverwrite(t *testing.T) {
	s := newKeyringStore("keychain")

	require.NoError(t, s.Put("acme-app", "alice/token", []byte("first")))
	require.NoError(t, s.Put("acme-app", "alice/token", []byte("second")))

	got, err := s.Get("acme-app", "alice/token")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestKeyringStoreDelete(t *testing.T) {
	s := newKeyringStore("keychain")

	require.NoError(t, s.Put("acme-app", "alice/certificate-key", []byte("pem")))
	require.NoError(t, s.Delete("acme-app", "alice/certificate-key"))

	_, err := s.Get("acme-app", "alice/certificate-key")
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeCredentialNotFound))

	err = s.Delete("acme-app", "alice/certificate-key")
	require.Error(t, err)
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeCredentialNotFound))
}

func TestKeyringStoreExists(t *testing.T) {
	s := newKeyringStore("secret-service")

	present, err := s.Exists("acme-app", "alice/password-probe")
	require.NoError(t, err)
	assert.False(t, present)

	require.NoError(t, s.Put("acme-app", "alice/password-probe", []byte("v")))

	present, err = s.Exists("acme-app", "alice/password-probe")
	require.NoError(t, err)
	assert.True(t, present)
}

func TestKeyringStoreMalformedEntry(t *testing.T) {
	s := newKeyringStore("keychain")

	// An entry written outside keyfob is not valid base64.
	require.NoError(t, keyring.Set("acme-app", "alice/mangled", "%%not-base64%%"))

	_, err := s.Get("acme-app", "alice/mangled")
	require.Error(t, err)
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeBackendPlatformFailure))
}
