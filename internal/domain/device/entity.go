package device

import (
	"time"
)

// Device represents a provisioned greenhouse unit. It is identified
// internally by ID and externally by the opaque provisioning token.
type Device struct {
	ID            uint
	Token         string
	LocationLabel string
	LastContactAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOnline checks if the device has reported telemetry within 5 minutes.
func (d *Device) IsOnline() bool {
	if d.LastContactAt == nil {
		return false
	}
	return time.Since(*d.LastContactAt) < 5*time.Minute
}
