package device

import (
	"time"

	domainDevice "github.com/ecoduino/greenhouse-backend/internal/domain/device"
)

type DeviceResponse struct {
	ID            uint       `json:"device_id"`
	Token         string     `json:"token"`
	LocationLabel string     `json:"location_label"`
	LastContactAt *time.Time `json:"last_contact_at"`
	IsOnline      bool       `json:"is_online"`
}

type DeviceListResponse struct {
	Devices []DeviceResponse `json:"devices"`
	Total   int              `json:"total"`
}

func ToDeviceResponse(d *domainDevice.Device) DeviceResponse {
	return DeviceResponse{
		ID:            d.ID,
		Token:         d.Token,
		LocationLabel: d.LocationLabel,
		LastContactAt: d.LastContactAt,
		IsOnline:      d.IsOnline(),
	}
}
