package postgres

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ecoduino/greenhouse-backend/internal/database"
	domainDevice "github.com/ecoduino/greenhouse-backend/internal/domain/device"
	"github.com/ecoduino/greenhouse-backend/internal/infrastructure/database/postgres/models"
)

// DeviceRepository implements the device.Registry interface.
type DeviceRepository struct {
	db *database.DB
}

// NewDeviceRepository creates a new device registry backed by the database.
func NewDeviceRepository(db *database.DB) domainDevice.Registry {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) Create(ctx context.Context, d *domainDevice.Device) error {
	return createDevice(r.db.DB.WithContext(ctx), d)
}

// createDevice is shared with the provisioning transaction, which runs it
// against the transaction handle instead of the root connection.
func createDevice(tx *gorm.DB, d *domainDevice.Device) error {
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	dbModel := toDeviceModel(d)
	if err := tx.Create(dbModel).Error; err != nil {
		if database.IsDuplicateError(err) {
			return domainDevice.ErrTokenAlreadyRegistered
		}
		return fmt.Errorf("failed to create device: %w", err)
	}

	d.ID = dbModel.ID
	d.CreatedAt = dbModel.CreatedAt
	d.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *DeviceRepository) GetByID(ctx context.Context, deviceID uint) (*domainDevice.Device, error) {
	var dbModel models.DeviceModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", deviceID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDevice.ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return toDeviceEntity(&dbModel), nil
}

func (r *DeviceRepository) GetByToken(ctx context.Context, token string) (*domainDevice.Device, error) {
	var dbModel models.DeviceModel
	err := r.db.DB.WithContext(ctx).
		Where("token = ?", token).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainDevice.ErrDeviceNotAuthorized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device by token: %w", err)
	}

	// Re-check the fetched token in constant time so the comparison cost
	// does not depend on how much of the token matched.
	if subtle.ConstantTimeCompare([]byte(dbModel.Token), []byte(token)) != 1 {
		return nil, domainDevice.ErrDeviceNotAuthorized
	}

	return toDeviceEntity(&dbModel), nil
}

func (r *DeviceRepository) UpdateLastContact(ctx context.Context, deviceID uint) error {
	return touchLastContact(r.db.DB.WithContext(ctx), deviceID)
}

func touchLastContact(tx *gorm.DB, deviceID uint) error {
	now := time.Now()
	return tx.Model(&models.DeviceModel{}).
		Where("id = ?", deviceID).
		Updates(map[string]interface{}{
			"last_contact_at": now,
			"updated_at":      now,
		}).Error
}

// Helper functions to convert between domain entities and database models

func toDeviceModel(d *domainDevice.Device) *models.DeviceModel {
	return &models.DeviceModel{
		ID:            d.ID,
		Token:         d.Token,
		LocationLabel: d.LocationLabel,
		LastContactAt: d.LastContactAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toDeviceEntity(m *models.DeviceModel) *domainDevice.Device {
	return &domainDevice.Device{
		ID:            m.ID,
		Token:         m.Token,
		LocationLabel: m.LocationLabel,
		LastContactAt: m.LastContactAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
