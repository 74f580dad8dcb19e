package telemetry

import "time"

// Reading is one immutable sensor sample from a device. Capture time is
// assigned by the server at ingestion.
type Reading struct {
	ID          uint
	DeviceID    uint
	CapturedAt  time.Time
	TempAmbient float64
	HumAmbient  float64
	HumSoil     float64
}
