package models

import (
	"time"
)

// ReadingModel represents the database model for telemetry readings. Rows are
// append-only; the composite index serves the latest/history queries.
type ReadingModel struct {
	ID          uint      `gorm:"primaryKey"`
	DeviceID    uint      `gorm:"not null;index:idx_readings_device_captured,priority:1"`
	CapturedAt  time.Time `gorm:"not null;index:idx_readings_device_captured,priority:2"`
	TempAmbient float64   `gorm:"type:decimal(5,2);not null"`
	HumAmbient  float64   `gorm:"type:decimal(5,2);not null"`
	HumSoil     float64   `gorm:"type:decimal(5,2);not null"`

	Device *DeviceModel `gorm:"foreignKey:DeviceID"`
}

func (ReadingModel) TableName() string {
	return "readings"
}
