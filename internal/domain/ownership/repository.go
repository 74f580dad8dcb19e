package ownership

import (
	"context"

	"github.com/ecoduino/greenhouse-backend/internal/domain/device"
)

// Ledger defines the interface for the user/device ownership relation.
type Ledger interface {
	// Grant records that a user owns a device. A repeated (user, device)
	// grant surfaces as ErrOwnershipExists.
	Grant(ctx context.Context, userID, deviceID uint, role Role) error
	// GetRole resolves the caller's role for a device, ErrNotOwner when the
	// relation does not exist.
	GetRole(ctx context.Context, userID, deviceID uint) (Role, error)
	// ListDevicesForUser returns the user's devices ordered by device id
	// ascending. A user with no devices gets an empty slice, not an error.
	ListDevicesForUser(ctx context.Context, userID uint) ([]*device.Device, error)
}
