// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Luiza Romeira

package config

import "errors"

var (
	// ErrNoServerAddress is returned when no HTTP listen address was
	// provided by any configuration source.
	ErrNoServerAddress = errors.New("no server address provided")

	// ErrNoDatabaseDSN is returned when no database DSN was provided by
	// any configuration source.
	ErrNoDatabaseDSN = errors.New("no database DSN provided")

	// ErrNoTokenSignKey is returned when no JWT signing key was provided
	// by any configuration source.
	ErrNoTokenSignKey = errors.New("no token sign key provided")
)
