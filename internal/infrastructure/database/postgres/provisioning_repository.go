package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ecoduino/greenhouse-backend/internal/database"
	domainDevice "github.com/ecoduino/greenhouse-backend/internal/domain/device"
	domainOwnership "github.com/ecoduino/greenhouse-backend/internal/domain/ownership"
	domainProvisioning "github.com/ecoduino/greenhouse-backend/internal/domain/provisioning"
	"github.com/ecoduino/greenhouse-backend/internal/infrastructure/database/postgres/models"
)

// ProvisioningRepository implements the provisioning.Orchestrator interface.
// The device row, its control state and the first ownership grant are
// created inside a single transaction.
type ProvisioningRepository struct {
	db *database.DB
}

// NewProvisioningRepository creates a new provisioning orchestrator backed by
// the database.
func NewProvisioningRepository(db *database.DB) domainProvisioning.Orchestrator {
	return &ProvisioningRepository{db: db}
}

func (r *ProvisioningRepository) Provision(ctx context.Context, userID uint, token, locationLabel string) (*domainDevice.Device, error) {
	d := &domainDevice.Device{
		Token:         token,
		LocationLabel: locationLabel,
	}

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Cheap pre-check so the common duplicate case aborts before any
		// insert. The unique index on devices.token remains the arbiter for
		// two transactions racing past this lookup.
		var existing models.DeviceModel
		err := tx.Where("token = ?", token).First(&existing).Error
		if err == nil {
			return domainDevice.ErrTokenAlreadyRegistered
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check token: %w", err)
		}

		if err := createDevice(tx, d); err != nil {
			return err
		}
		if err := initializeControlState(tx, d.ID); err != nil {
			return err
		}
		if err := grantOwnership(tx, userID, d.ID, domainOwnership.RoleAdmin); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		// A concurrent provision of the same token loses the insert race
		// inside createDevice; both paths surface the same conflict.
		if errors.Is(err, domainDevice.ErrTokenAlreadyRegistered) {
			return nil, domainDevice.ErrTokenAlreadyRegistered
		}
		return nil, fmt.Errorf("provisioning failed: %w", err)
	}

	return d, nil
}
