package control

import (
	"context"

	"go.uber.org/zap"

	domainControl "github.com/ecoduino/greenhouse-backend/internal/domain/control"
	domainDevice "github.com/ecoduino/greenhouse-backend/internal/domain/device"
	domainOwnership "github.com/ecoduino/greenhouse-backend/internal/domain/ownership"
	"github.com/ecoduino/greenhouse-backend/internal/logger"
	"github.com/ecoduino/greenhouse-backend/pkg/utils"
)

// Service implements control state use cases.
type Service struct {
	registry domainDevice.Registry
	store    domainControl.Store
	ledger   domainOwnership.Ledger
}

// NewService creates a new control service.
func NewService(registry domainDevice.Registry, store domainControl.Store, ledger domainOwnership.Ledger) *Service {
	return &Service{
		registry: registry,
		store:    store,
		ledger:   ledger,
	}
}

// Fetch resolves a device by its token and returns its current actuator
// state. Devices poll this to learn their desired state.
func (s *Service) Fetch(ctx context.Context, req *FetchControlRequest) (*ControlStateResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	d, err := s.registry.GetByToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	cs, err := s.store.Get(ctx, d.ID)
	if err != nil {
		return nil, err
	}

	return ToControlStateResponse(cs), nil
}

// UpdateActuator sets one actuator flag for a device the caller administers.
// The actuator name is validated before any store access.
func (s *Service) UpdateActuator(ctx context.Context, userID, deviceID uint, req *UpdateActuatorRequest) (*ControlStateResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	actuator, err := domainControl.ParseActuator(req.Actuator)
	if err != nil {
		return nil, err
	}

	role, err := s.ledger.GetRole(ctx, userID, deviceID)
	if err != nil {
		return nil, err
	}
	if !role.CanControl() {
		return nil, domainOwnership.ErrNotOwner
	}

	cs, err := s.store.SetFlag(ctx, deviceID, actuator, *req.Value)
	if err != nil {
		return nil, err
	}

	logger.WithDevice(deviceID).Info("Actuator updated",
		zap.Uint("user_id", userID),
		zap.String("actuator", string(actuator)),
		zap.Bool("value", *req.Value),
		zap.String("event", "actuator_updated"),
	)

	return ToControlStateResponse(cs), nil
}
