package control

import (
	"context"
)

// Store defines the interface for per-device control state.
type Store interface {
	// Initialize creates the single control row for a freshly provisioned
	// device with all flags false. A second initialization is
	// ErrDuplicateControlState.
	Initialize(ctx context.Context, deviceID uint) error
	Get(ctx context.Context, deviceID uint) (*ControlState, error)
	// SetFlag blindly overwrites exactly one actuator flag and refreshes the
	// update timestamp. Concurrent writes to different flags never conflict;
	// same-flag writes are last-write-wins at the store.
	SetFlag(ctx context.Context, deviceID uint, actuator Actuator, value bool) (*ControlState, error)
}
