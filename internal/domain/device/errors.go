package device

import "errors"

var (
	// ErrDeviceNotAuthorized is returned for any token that does not resolve
	// to a device. Callers never learn whether the token was close to valid.
	ErrDeviceNotAuthorized = errors.New("device token not authorized")

	ErrDeviceNotFound         = errors.New("device not found")
	ErrTokenAlreadyRegistered = errors.New("device token already registered")
)
