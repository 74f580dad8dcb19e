package device

import (
	"context"
)

// Registry defines the interface for device registry operations.
type Registry interface {
	// Create inserts a new device. The database unique index on the token is
	// the arbiter of uniqueness; a duplicate surfaces as
	// ErrTokenAlreadyRegistered even when two callers raced past a lookup.
	Create(ctx context.Context, device *Device) error
	GetByID(ctx context.Context, deviceID uint) (*Device, error)
	// GetByToken authenticates a device. Unknown tokens yield
	// ErrDeviceNotAuthorized, never a finer-grained reason.
	GetByToken(ctx context.Context, token string) (*Device, error)
	UpdateLastContact(ctx context.Context, deviceID uint) error
}
