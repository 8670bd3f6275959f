// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyfob Contributors

//go:build !windows && !darwin && !linux

package backend

import (
	"runtime"

	keyfoberr "github.com/keyfob-dev/keyfob/pkg/errors"
)

func newPlatformStore(_ Options) (Store, error) {
	return nil, keyfoberr.Errorf(keyfoberr.CodeBackendPlatformFailure,
		"no credential backend for %s/%s", runtime.GOOS, runtime.GOARCH)
}
