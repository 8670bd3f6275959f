// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

package backend_test

import (
	"os"
	"testing"

	"github.com/keyfob-dev/keyfob/internal/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMockViaEnv(t *testing.T) {
	t.Setenv(backend.EnvUseMock, "1")

	store, err := backend.Select(backend.Options{})
	require.NoError(t, err)
	assert.Equal(t, "mock", store.Name())
	assert.IsType(t, &backend.MemoryStore{}, store)
}

func TestSelectMockEnvEmptyValueStillCounts(t *testing.T) {
	// Presence triggers mock selection; the value is irrelevant.
	t.Setenv(backend.EnvUseMock, "")

	store, err := backend.Select(backend.Options{})
	require.NoError(t, err)
	assert.Equal(t, "mock", store.Name())
}

func TestSelectPlatformWithoutEnv(t *testing.T) {
	// Cannot unset with t.Setenv, so only run when the variable is absent.
	// Platform selection must never hand back the mock.
	if _, ok := os.LookupEnv(backend.EnvUseMock); ok {
		t.Skipf("%s set in this environment", backend.EnvUseMock)
	}

	store, err := backend.Select(backend.Options{})
	if err != nil {
		t.Skipf("no platform backend here: %v", err)
	}
	assert.NotEqual(t, "mock", store.Name())
}

func TestSelectReturnsFreshMockEachCall(t *testing.T) {
	// Selection has no process-wide effect; only Handle.Install does.
	t.Setenv(backend.EnvUseMock, "1")

	a, err := backend.Select(backend.Options{})
	require.NoError(t, err)
	b, err := backend.Select(backend.Options{})
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}
