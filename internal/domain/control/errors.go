package control

import "errors"

var (
	// ErrControlStateUninitialized means the device is known but its control
	// record is missing, which should only happen on a device that was never
	// provisioned through the orchestrator.
	ErrControlStateUninitialized = errors.New("control state uninitialized")

	ErrDuplicateControlState = errors.New("control state already initialized")
	ErrInvalidActuator       = errors.New("invalid actuator")
)
