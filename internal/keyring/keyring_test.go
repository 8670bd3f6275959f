// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

package keyring_test

import (
	"testing"

	"github.com/keyfob-dev/keyfob/internal/backend"
	"github.com/keyfob-dev/keyfob/internal/keyring"
	"github.com/keyfob-dev/keyfob/pkg/credential"
	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeyring(t *testing.T) *keyring.Keyring {
	t.Helper()

	h := backend.NewHandle()
	require.NoError(t, h.Install(backend.NewMemoryStore()))

	kr := keyring.New(h)
	require.NoError(t, kr.InitializeService("acme-app"))
	return kr
}

func TestKeyringScenario(t *testing.T) {
	kr := newTestKeyring(t)

	require.NoError(t, kr.Set("alice", credential.TypePassword, credential.Value("s3cr3t")))

	got, err := kr.Get("alice", credential.TypePassword)
	require.NoError(t, err)
	assert.Equal(t, credential.Value("s3cr3t"), got)

	present, err := kr.Exists("alice", credential.TypePassword)
	require.NoError(t, err)
	assert.True(t, present)

	require.NoError(t, kr.Delete("alice", credential.TypePassword))

	_, err = kr.Get("alice", credential.TypePassword)
	require.Error(t, err)
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeCredentialNotFound))
}

func TestKeyringRoundTripBytes(t *testing.T) {
	kr := newTestKeyring(t)

	secret := credential.Value{0x00, 0xff, 0x10, 's', 0x00}
	require.NoError(t, kr.Set("alice", credential.TypeCertificateKey, secret))

	got, err := kr.Get("alice", credential.TypeCertificateKey)
	require.NoError(t, err)
	assert.Equal(t, secret, got)
}

func TestKeyringOverwrite(t *testing.T) {
	kr := newTestKeyring(t)

	require.NoError(t, kr.Set("alice", credential.TypeToken, credential.Value("first")))
	require.NoError(t, kr.Set("alice", credential.TypeToken, credential.Value("second")))

	got, err := kr.Get("alice", credential.TypeToken)
	require.NoError(t, err)
	assert.Equal(t, credential.Value("second"), got)
}

func TestKeyringTypesAreDistinctIdentities(t *testing.T) {
	kr := newTestKeyring(t)

	require.NoError(t, kr.Set("alice", credential.TypePassword, credential.Value("pw")))
	require.NoError(t, kr.Set("alice", credential.TypeToken, credential.Value("tok")))

	pw, err := kr.Get("alice", credential.TypePassword)
	require.NoError(t, err)
	tok, err := kr.Get("alice", credential.TypeToken)
	require.NoError(t, err)
	assert.Equal(t, credential.Value("pw"), pw)
	assert.Equal(t, credential.Value("tok"), tok)

	require.NoError(t, kr.Delete("alice", credential.TypePassword))
	present, err := kr.Exists("alice", credential.TypeToken)
	require.NoError(t, err)
	assert.True(t, present)
}

func TestKeyringAbsenceBeforeWrite(t *testing.T) {
	kr := newTestKeyring(t)

	_, err := kr.Get("nobody", credential.TypePassword)
	require.Error(t, err)
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeCredentialNotFound))

	present, err := kr.Exists("nobody", credential.TypePassword)
	require.NoError(t, err)
	assert.False(t, present)
}

func TestKeyringExistsIsIdempotent(t *testing.T) {
	kr := newTestKeyring(t)
	require.NoError(t, kr.Set("alice", credential.TypePassword, credential.Value("stable")))

	for range 5 {
		present, err := kr.Exists("alice", credential.TypePassword)
		require.NoError(t, err)
		assert.True(t, present)
	}

	got, err := kr.Get("alice", credential.TypePassword)
	require.NoError(t, err)
	assert.Equal(t, credential.Value("stable"), got)
}

func TestKeyringCRUDBeforeInitializeService(t *testing.T) {
	h := backend.NewHandle()
	require.NoError(t, h.Install(backend.NewMemoryStore()))
	kr := keyring.New(h)

	err := kr.Set("alice", credential.TypePassword, credential.Value("v"))
	require.Error(t, err)
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeServiceUninitialized))

	_, err = kr.Get("alice", credential.TypePassword)
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeServiceUninitialized))

	_, err = kr.Exists("alice", credential.TypePassword)
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeServiceUninitialized))

	err = kr.Delete("alice", credential.TypePassword)
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeServiceUninitialized))
}

func TestKeyringCRUDBeforeBackendInstall(t *testing.T) {
	kr := keyring.New(backend.NewHandle())
	require.NoError(t, kr.InitializeService("acme-app"))

	err := kr.Set("alice", credential.TypePassword, credential.Value("v"))
	require.Error(t, err)
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeBackendUninitialized))
}

func TestKeyringInitializeServiceEmpty(t *testing.T) {
	kr := keyring.New(backend.NewHandle())

	err := kr.InitializeService("")
	require.Error(t, err)
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeCredentialInvalidInput))
}

func TestKeyringInvalidIdentityInputs(t *testing.T) {
	kr := newTestKeyring(t)

	err := kr.Set("", credential.TypePassword, credential.Value("v"))
	require.Error(t, err)
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeCredentialInvalidInput))

	_, err = kr.Get("alice", credential.Type("pin"))
	require.Error(t, err)
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeCredentialInvalidInput))
}

func TestKeyringServiceNamespacesAreIsolated(t *testing.T) {
	h := backend.NewHandle()
	require.NoError(t, h.Install(backend.NewMemoryStore()))

	kr := keyring.New(h)
	require.NoError(t, kr.InitializeService("app-one"))
	require.NoError(t, kr.Set("alice", credential.TypePassword, credential.Value("one")))

	// Re-initialization replaces the namespace for subsequent calls.
	require.NoError(t, kr.InitializeService("app-two"))
	present, err := kr.Exists("alice", credential.TypePassword)
	require.NoError(t, err)
	assert.False(t, present)
}

func TestKeyringList(t *testing.T) {
	kr := newTestKeyring(t)

	require.NoError(t, kr.Set("alice", credential.TypePassword, credential.Value("v")))
	require.NoError(t, kr.Set("bob", credential.TypeToken, credential.Value("v")))

	keys, err := kr.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alice/password", "bob/token"}, keys)
}

func TestKeyringListUnsupportedBackend(t *testing.T) {
	h := backend.NewHandle()
	require.NoError(t, h.Install(nonListingStore{backend.NewMemoryStore()}))

	kr := keyring.New(h)
	require.NoError(t, kr.InitializeService("acme-app"))

	_, err := kr.List()
	require.Error(t, err)
	assert.True(t, keyfoberr.HasCode(err, keyfoberr.CodeBackendListUnsupported))
}

func TestKeyringBackendName(t *testing.T) {
	kr := newTestKeyring(t)

	name, err := kr.BackendName()
	require.NoError(t, err)
	assert.Equal(t, "mock", name)
}

// nonListingStore hides the MemoryStore's List method.
type nonListingStore struct {
	inner backend.Store
}

func (s nonListingStore) Name() string { return s.inner.Name() }
func (s nonListingStore) Put(namespace, key string, value []byte) error {
	return s.inner.Put(namespace, key, value)
}
func (s nonListingStore) Get(namespace, key string) ([]byte, error) {
	return s.inner.Get(namespace, key)
}
func (s nonListingStore) Delete(namespace, key string) error {
	return s.inner.Delete(namespace, key)
}
func (s nonListingStore) Exists(namespace, key string) (bool, error) {
	return s.inner.Exists(namespace, key)
}
