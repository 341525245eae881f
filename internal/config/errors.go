package config

import "errors"

// Validation errors returned when required configuration is incomplete or
// invalid.
var (
	// ErrMissingTokenSignKey indicates that no JWT signing key was provided
	// by any configuration source.
	ErrMissingTokenSignKey = errors.New("token sign key is required")
	// ErrMissingRPID indicates that no WebAuthn relying party ID was
	// provided by any configuration source.
	ErrMissingRPID = errors.New("webauthn relying party ID is required")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or an unsupported driver name).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
)
