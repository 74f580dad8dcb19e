package ownership

import "time"

// Ownership links a user to a device with a role.
type Ownership struct {
	ID        uint
	UserID    uint
	DeviceID  uint
	Role      Role
	CreatedAt time.Time
}

// Role is the level of access a user holds over a device.
type Role string

const (
	// RoleAdmin is granted to the provisioning user and may mutate actuators.
	RoleAdmin Role = "admin"
	// RoleViewer may read telemetry and control state but not mutate.
	RoleViewer Role = "viewer"
)

// CanControl reports whether the role may update actuator state.
func (r Role) CanControl() bool {
	return r == RoleAdmin
}
