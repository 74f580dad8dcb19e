package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ecoduino/greenhouse-backend/internal/database"
	domainDevice "github.com/ecoduino/greenhouse-backend/internal/domain/device"
	domainOwnership "github.com/ecoduino/greenhouse-backend/internal/domain/ownership"
	"github.com/ecoduino/greenhouse-backend/internal/infrastructure/database/postgres/models"
)

// OwnershipRepository implements the ownership.Ledger interface.
type OwnershipRepository struct {
	db *database.DB
}

// NewOwnershipRepository creates a new ownership ledger backed by the database.
func NewOwnershipRepository(db *database.DB) domainOwnership.Ledger {
	return &OwnershipRepository{db: db}
}

func (r *OwnershipRepository) Grant(ctx context.Context, userID, deviceID uint, role domainOwnership.Role) error {
	return grantOwnership(r.db.DB.WithContext(ctx), userID, deviceID, role)
}

// grantOwnership is shared with the provisioning transaction.
func grantOwnership(tx *gorm.DB, userID, deviceID uint, role domainOwnership.Role) error {
	dbModel := &models.OwnershipModel{
		UserID:    userID,
		DeviceID:  deviceID,
		Role:      string(role),
		CreatedAt: time.Now(),
	}
	if err := tx.Create(dbModel).Error; err != nil {
		if database.IsDuplicateError(err) {
			return domainOwnership.ErrOwnershipExists
		}
		return fmt.Errorf("failed to grant ownership: %w", err)
	}
	return nil
}

func (r *OwnershipRepository) GetRole(ctx context.Context, userID, deviceID uint) (domainOwnership.Role, error) {
	var dbModel models.OwnershipModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ? AND device_id = ?", userID, deviceID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domainOwnership.ErrNotOwner
	}
	if err != nil {
		return "", fmt.Errorf("failed to get ownership role: %w", err)
	}

	return domainOwnership.Role(dbModel.Role), nil
}

func (r *OwnershipRepository) ListDevicesForUser(ctx context.Context, userID uint) ([]*domainDevice.Device, error) {
	var dbModels []models.DeviceModel
	err := r.db.DB.WithContext(ctx).
		Model(&models.DeviceModel{}).
		Joins("JOIN ownerships ON ownerships.device_id = devices.id").
		Where("ownerships.user_id = ?", userID).
		Order("devices.id ASC").
		Find(&dbModels).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list devices for user: %w", err)
	}

	devices := make([]*domainDevice.Device, len(dbModels))
	for i := range dbModels {
		devices[i] = toDeviceEntity(&dbModels[i])
	}

	return devices, nil
}
