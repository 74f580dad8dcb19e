package provisioning

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	domainDevice "github.com/ecoduino/greenhouse-backend/internal/domain/device"
	domainProvisioning "github.com/ecoduino/greenhouse-backend/internal/domain/provisioning"
	"github.com/ecoduino/greenhouse-backend/internal/logger"
	"github.com/ecoduino/greenhouse-backend/pkg/utils"
)

// ErrIncompleteRequest is returned before any storage access when the owning
// user, token or location label is missing.
var ErrIncompleteRequest = errors.New("incomplete provisioning request")

// Service implements the provisioning use case.
type Service struct {
	orchestrator domainProvisioning.Orchestrator
}

// NewService creates a new provisioning service.
func NewService(orchestrator domainProvisioning.Orchestrator) *Service {
	return &Service{orchestrator: orchestrator}
}

// Provision validates the request and runs the atomic create of the device,
// its control state and the caller's admin grant.
func (s *Service) Provision(ctx context.Context, userID uint, req *ProvisionDeviceRequest) (*DeviceResponse, error) {
	req.Token = strings.TrimSpace(req.Token)
	req.LocationLabel = strings.TrimSpace(req.LocationLabel)

	if userID == 0 || req.Token == "" || req.LocationLabel == "" {
		return nil, ErrIncompleteRequest
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, ErrIncompleteRequest
	}

	d, err := s.orchestrator.Provision(ctx, userID, req.Token, req.LocationLabel)
	if err != nil {
		if errors.Is(err, domainDevice.ErrTokenAlreadyRegistered) {
			return nil, domainDevice.ErrTokenAlreadyRegistered
		}
		logger.Error("Provisioning failed",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Info("Device provisioned",
		zap.Uint("device_id", d.ID),
		zap.Uint("user_id", userID),
		zap.String("location_label", d.LocationLabel),
		zap.String("event", "device_provisioned"),
	)

	return ToDeviceResponse(d), nil
}
