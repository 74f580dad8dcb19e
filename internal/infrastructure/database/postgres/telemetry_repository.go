package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ecoduino/greenhouse-backend/internal/database"
	domainTelemetry "github.com/ecoduino/greenhouse-backend/internal/domain/telemetry"
	"github.com/ecoduino/greenhouse-backend/internal/infrastructure/database/postgres/models"
)

// TelemetryRepository implements the telemetry.Log interface.
type TelemetryRepository struct {
	db *database.DB
}

// NewTelemetryRepository creates a new telemetry log backed by the database.
func NewTelemetryRepository(db *database.DB) domainTelemetry.Log {
	return &TelemetryRepository{db: db}
}

// Append inserts the reading and refreshes the device's last-contact
// timestamp in one transaction, so no reader observes one without the other.
func (r *TelemetryRepository) Append(ctx context.Context, deviceID uint, tempAmbient, humAmbient, humSoil float64) (*domainTelemetry.Reading, error) {
	dbModel := &models.ReadingModel{
		DeviceID:    deviceID,
		CapturedAt:  time.Now(),
		TempAmbient: tempAmbient,
		HumAmbient:  humAmbient,
		HumSoil:     humSoil,
	}

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dbModel).Error; err != nil {
			return fmt.Errorf("failed to insert reading: %w", err)
		}
		if err := touchLastContact(tx, deviceID); err != nil {
			return fmt.Errorf("failed to refresh last contact: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toReadingEntity(dbModel), nil
}

func (r *TelemetryRepository) Latest(ctx context.Context, deviceID uint) (*domainTelemetry.Reading, error) {
	var dbModel models.ReadingModel
	err := r.db.DB.WithContext(ctx).
		Where("device_id = ?", deviceID).
		// id breaks ties between readings captured in the same instant.
		Order("captured_at DESC, id DESC").
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainTelemetry.ErrNoReadingsYet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest reading: %w", err)
	}

	return toReadingEntity(&dbModel), nil
}

func (r *TelemetryRepository) History(ctx context.Context, deviceID uint, limit int) ([]*domainTelemetry.Reading, error) {
	var dbModels []models.ReadingModel
	err := r.db.DB.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("captured_at DESC, id DESC").
		Limit(limit).
		Find(&dbModels).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get reading history: %w", err)
	}

	readings := make([]*domainTelemetry.Reading, len(dbModels))
	for i := range dbModels {
		readings[i] = toReadingEntity(&dbModels[i])
	}

	return readings, nil
}

func toReadingEntity(m *models.ReadingModel) *domainTelemetry.Reading {
	return &domainTelemetry.Reading{
		ID:          m.ID,
		DeviceID:    m.DeviceID,
		CapturedAt:  m.CapturedAt,
		TempAmbient: m.TempAmbient,
		HumAmbient:  m.HumAmbient,
		HumSoil:     m.HumSoil,
	}
}
