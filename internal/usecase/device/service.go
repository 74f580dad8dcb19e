package device

import (
	"context"

	domainOwnership "github.com/ecoduino/greenhouse-backend/internal/domain/ownership"
)

// Service implements device listing use cases.
type Service struct {
	ledger domainOwnership.Ledger
}

// NewService creates a new device service.
func NewService(ledger domainOwnership.Ledger) *Service {
	return &Service{ledger: ledger}
}

// ListDevices returns the caller's devices ordered by device id ascending.
// A user with no devices gets an empty list.
func (s *Service) ListDevices(ctx context.Context, userID uint) (*DeviceListResponse, error) {
	devices, err := s.ledger.ListDevicesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]DeviceResponse, len(devices))
	for i, d := range devices {
		responses[i] = ToDeviceResponse(d)
	}

	return &DeviceListResponse{
		Devices: responses,
		Total:   len(responses),
	}, nil
}
