package control

import (
	"fmt"
	"time"
)

// ControlState is the current desired on/off state of a device's actuators.
// Exactly one record exists per provisioned device.
type ControlState struct {
	DeviceID    uint
	Lights      bool
	Irrigation  bool
	Ventilation bool
	UpdatedAt   time.Time
}

// Actuator names one of the three switchable subsystems on a device.
type Actuator string

const (
	ActuatorLights      Actuator = "lights"
	ActuatorIrrigation  Actuator = "irrigation"
	ActuatorVentilation Actuator = "ventilation"
)

// ParseActuator validates an actuator name before any store access.
func ParseActuator(s string) (Actuator, error) {
	switch Actuator(s) {
	case ActuatorLights, ActuatorIrrigation, ActuatorVentilation:
		return Actuator(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidActuator, s)
}
