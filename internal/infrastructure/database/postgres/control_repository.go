package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ecoduino/greenhouse-backend/internal/database"
	domainControl "github.com/ecoduino/greenhouse-backend/internal/domain/control"
	"github.com/ecoduino/greenhouse-backend/internal/infrastructure/database/postgres/models"
)

// actuatorColumns maps actuator names to their columns. ParseActuator has
// already rejected anything outside this set before a repository call.
var actuatorColumns = map[domainControl.Actuator]string{
	domainControl.ActuatorLights:      "lights",
	domainControl.ActuatorIrrigation:  "irrigation",
	domainControl.ActuatorVentilation: "ventilation",
}

// ControlRepository implements the control.Store interface.
type ControlRepository struct {
	db *database.DB
}

// NewControlRepository creates a new control state store backed by the database.
func NewControlRepository(db *database.DB) domainControl.Store {
	return &ControlRepository{db: db}
}

func (r *ControlRepository) Initialize(ctx context.Context, deviceID uint) error {
	return initializeControlState(r.db.DB.WithContext(ctx), deviceID)
}

// initializeControlState is shared with the provisioning transaction.
func initializeControlState(tx *gorm.DB, deviceID uint) error {
	dbModel := &models.ControlStateModel{
		DeviceID:  deviceID,
		UpdatedAt: time.Now(),
	}
	if err := tx.Create(dbModel).Error; err != nil {
		if database.IsDuplicateError(err) {
			return domainControl.ErrDuplicateControlState
		}
		return fmt.Errorf("failed to initialize control state: %w", err)
	}
	return nil
}

func (r *ControlRepository) Get(ctx context.Context, deviceID uint) (*domainControl.ControlState, error) {
	var dbModel models.ControlStateModel
	err := r.db.DB.WithContext(ctx).
		Where("device_id = ?", deviceID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainControl.ErrControlStateUninitialized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get control state: %w", err)
	}

	return toControlStateEntity(&dbModel), nil
}

// SetFlag overwrites a single actuator column without reading the previous
// value, so writers to different flags of the same device never conflict.
func (r *ControlRepository) SetFlag(ctx context.Context, deviceID uint, actuator domainControl.Actuator, value bool) (*domainControl.ControlState, error) {
	column, ok := actuatorColumns[actuator]
	if !ok {
		return nil, domainControl.ErrInvalidActuator
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.ControlStateModel{}).
		Where("device_id = ?", deviceID).
		Updates(map[string]interface{}{
			column:       value,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return nil, fmt.Errorf("failed to set %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domainControl.ErrControlStateUninitialized
	}

	return r.Get(ctx, deviceID)
}

func toControlStateEntity(m *models.ControlStateModel) *domainControl.ControlState {
	return &domainControl.ControlState{
		DeviceID:    m.DeviceID,
		Lights:      m.Lights,
		Irrigation:  m.Irrigation,
		Ventilation: m.Ventilation,
		UpdatedAt:   m.UpdatedAt,
	}
}
