package provisioning

import (
	"context"

	"github.com/ecoduino/greenhouse-backend/internal/domain/device"
)

// Orchestrator creates a device together with its control state and the
// provisioning user's ownership grant. The three rows appear atomically or
// not at all.
type Orchestrator interface {
	// Provision returns the new device, device.ErrTokenAlreadyRegistered when
	// the token is in use, or an internal error. Nothing finer is surfaced.
	Provision(ctx context.Context, userID uint, token, locationLabel string) (*device.Device, error)
}
