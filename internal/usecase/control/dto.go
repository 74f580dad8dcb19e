package control

import (
	"time"

	domainControl "github.com/ecoduino/greenhouse-backend/internal/domain/control"
)

type FetchControlRequest struct {
	Token string `json:"token" validate:"required,min=1,max=255"`
}

type UpdateActuatorRequest struct {
	Actuator string `json:"actuator" validate:"required"`
	Value    *bool  `json:"value" validate:"required"`
}

type ControlStateResponse struct {
	DeviceID    uint      `json:"device_id"`
	Lights      bool      `json:"lights"`
	Irrigation  bool      `json:"irrigation"`
	Ventilation bool      `json:"ventilation"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToControlStateResponse(cs *domainControl.ControlState) *ControlStateResponse {
	return &ControlStateResponse{
		DeviceID:    cs.DeviceID,
		Lights:      cs.Lights,
		Irrigation:  cs.Irrigation,
		Ventilation: cs.Ventilation,
		UpdatedAt:   cs.UpdatedAt,
	}
}
