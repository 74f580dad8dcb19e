package models

import (
	"time"
)

// ControlStateModel represents the database model for per-device actuator
// state. The unique index on DeviceID enforces the one-record-per-device
// invariant at the storage layer.
type ControlStateModel struct {
	ID          uint      `gorm:"primaryKey"`
	DeviceID    uint      `gorm:"not null;uniqueIndex"`
	Lights      bool      `gorm:"not null;default:false"`
	Irrigation  bool      `gorm:"not null;default:false"`
	Ventilation bool      `gorm:"not null;default:false"`
	UpdatedAt   time.Time `gorm:"not null"`

	Device *DeviceModel `gorm:"foreignKey:DeviceID"`
}

func (ControlStateModel) TableName() string {
	return "control_states"
}
