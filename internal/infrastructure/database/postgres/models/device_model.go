package models

import (
	"time"
)

// DeviceModel represents the database model for Devices.
type DeviceModel struct {
	ID            uint       `gorm:"primaryKey"`
	Token         string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	LocationLabel string     `gorm:"type:varchar(255);not null"`
	LastContactAt *time.Time `gorm:"type:timestamptz"`
	CreatedAt     time.Time  `gorm:"not null"`
	UpdatedAt     time.Time  `gorm:"not null"`
}

func (DeviceModel) TableName() string {
	return "devices"
}
