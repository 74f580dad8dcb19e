package telemetry

import "errors"

var (
	ErrNoReadingsYet = errors.New("no readings recorded for device")
)
