package models

import (
	"time"
)

// OwnershipModel represents the database model for user/device grants.
type OwnershipModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_ownerships_user_device;index"`
	DeviceID  uint      `gorm:"not null;uniqueIndex:idx_ownerships_user_device"`
	Role      string    `gorm:"type:varchar(50);not null;default:'admin'"`
	CreatedAt time.Time `gorm:"not null"`

	Device *DeviceModel `gorm:"foreignKey:DeviceID"`
}

func (OwnershipModel) TableName() string {
	return "ownerships"
}
