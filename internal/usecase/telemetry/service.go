package telemetry

import (
	"context"

	"go.uber.org/zap"

	domainDevice "github.com/ecoduino/greenhouse-backend/internal/domain/device"
	domainOwnership "github.com/ecoduino/greenhouse-backend/internal/domain/ownership"
	domainTelemetry "github.com/ecoduino/greenhouse-backend/internal/domain/telemetry"
	"github.com/ecoduino/greenhouse-backend/internal/logger"
	"github.com/ecoduino/greenhouse-backend/pkg/utils"
)

const (
	// DefaultHistoryLimit applies when a caller does not specify a limit.
	DefaultHistoryLimit = 50
	// MaxHistoryLimit bounds client-supplied limits so one query cannot drag
	// an unbounded slice of the log into memory.
	MaxHistoryLimit = 500
)

// Service implements telemetry ingestion and query use cases.
type Service struct {
	registry domainDevice.Registry
	log      domainTelemetry.Log
	ledger   domainOwnership.Ledger
}

// NewService creates a new telemetry service.
func NewService(registry domainDevice.Registry, log domainTelemetry.Log, ledger domainOwnership.Ledger) *Service {
	return &Service{
		registry: registry,
		log:      log,
		ledger:   ledger,
	}
}

// Ingest authenticates the device by token and appends a reading with a
// server-assigned capture time.
func (s *Service) Ingest(ctx context.Context, req *IngestTelemetryRequest) (*ReadingResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	d, err := s.registry.GetByToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	reading, err := s.log.Append(ctx, d.ID, *req.TempAmbient, *req.HumAmbient, *req.HumSoil)
	if err != nil {
		return nil, err
	}

	logger.WithDevice(d.ID).Debug("Telemetry ingested",
		zap.Float64("temp_ambient", reading.TempAmbient),
		zap.String("event", "telemetry_ingested"),
	)

	resp := ToReadingResponse(reading)
	return &resp, nil
}

// Latest returns the most recent reading for a device the caller owns.
func (s *Service) Latest(ctx context.Context, userID, deviceID uint) (*ReadingResponse, error) {
	if _, err := s.ledger.GetRole(ctx, userID, deviceID); err != nil {
		return nil, err
	}

	reading, err := s.log.Latest(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	resp := ToReadingResponse(reading)
	return &resp, nil
}

// History returns up to limit readings, most recent first. A non-positive
// limit falls back to the default and anything above the cap is clamped.
func (s *Service) History(ctx context.Context, userID, deviceID uint, limit int) (*ReadingListResponse, error) {
	if _, err := s.ledger.GetRole(ctx, userID, deviceID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	readings, err := s.log.History(ctx, deviceID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]ReadingResponse, len(readings))
	for i, r := range readings {
		responses[i] = ToReadingResponse(r)
	}

	return &ReadingListResponse{
		Readings: responses,
		Total:    len(responses),
	}, nil
}
