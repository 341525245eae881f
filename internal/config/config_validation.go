// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evgeny Bolotov

package config

import "errors"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// The token signing key and the WebAuthn relying party ID have no sensible
// defaults: tokens signed with a guessable key and credentials scoped to a
// wrong domain are both silent security failures, so the server refuses to
// start without them.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	var err error

	if cfg.App.TokenSignKey == "" {
		err = errors.Join(err, ErrMissingTokenSignKey)
	}

	if cfg.WebAuthn.RPID == "" {
		err = errors.Join(err, ErrMissingRPID)
	}

	if cfg.Storage.DB.Driver != DriverPostgres && cfg.Storage.DB.Driver != DriverSQLite {
		err = errors.Join(err, ErrInvalidStorageConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		err = errors.Join(err, ErrInvalidStorageConfigs)
	}

	return err
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
