package provisioning

import (
	"time"

	domainDevice "github.com/ecoduino/greenhouse-backend/internal/domain/device"
)

type ProvisionDeviceRequest struct {
	Token         string `json:"token" validate:"required,min=1,max=255"`
	LocationLabel string `json:"location_label" validate:"required,min=1,max=255"`
}

type DeviceResponse struct {
	ID            uint       `json:"device_id"`
	Token         string     `json:"token"`
	LocationLabel string     `json:"location_label"`
	LastContactAt *time.Time `json:"last_contact_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

func ToDeviceResponse(d *domainDevice.Device) *DeviceResponse {
	return &DeviceResponse{
		ID:            d.ID,
		Token:         d.Token,
		LocationLabel: d.LocationLabel,
		LastContactAt: d.LastContactAt,
		CreatedAt:     d.CreatedAt,
	}
}
