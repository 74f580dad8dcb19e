package telemetry

import (
	"context"
)

// Log defines the interface for the append-only telemetry sequence.
type Log interface {
	// Append stores a reading with a server-assigned capture time and
	// refreshes the owning device's last-contact timestamp in the same
	// transaction. It never fails on duplicate or out-of-order samples.
	Append(ctx context.Context, deviceID uint, tempAmbient, humAmbient, humSoil float64) (*Reading, error)
	// Latest returns the reading with the maximum capture time,
	// ErrNoReadingsYet when the device has never reported.
	Latest(ctx context.Context, deviceID uint) (*Reading, error)
	// History returns up to limit readings, most recent first.
	History(ctx context.Context, deviceID uint, limit int) ([]*Reading, error)
}
