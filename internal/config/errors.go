package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid web API hosts or timeout.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid client identity settings
	// (for example, a non-positive API type).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidLoginConfigs indicates a non-positive QR deadline or poll
	// interval.
	ErrInvalidLoginConfigs = errors.New("invalid login configuration")
)
