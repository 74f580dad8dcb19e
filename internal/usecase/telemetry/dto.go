package telemetry

import (
	"time"

	domainTelemetry "github.com/ecoduino/greenhouse-backend/internal/domain/telemetry"
)

type IngestTelemetryRequest struct {
	Token       string   `json:"token" validate:"required,min=1,max=255"`
	TempAmbient *float64 `json:"temp_ambient" validate:"required"`
	HumAmbient  *float64 `json:"hum_ambient" validate:"required,min=0,max=100"`
	HumSoil     *float64 `json:"hum_soil" validate:"required,min=0,max=100"`
}

type ReadingResponse struct {
	ID          uint      `json:"id"`
	DeviceID    uint      `json:"device_id"`
	CapturedAt  time.Time `json:"captured_at"`
	TempAmbient float64   `json:"temp_ambient"`
	HumAmbient  float64   `json:"hum_ambient"`
	HumSoil     float64   `json:"hum_soil"`
}

type ReadingListResponse struct {
	Readings []ReadingResponse `json:"readings"`
	Total    int               `json:"total"`
}

func ToReadingResponse(r *domainTelemetry.Reading) ReadingResponse {
	return ReadingResponse{
		ID:          r.ID,
		DeviceID:    r.DeviceID,
		CapturedAt:  r.CapturedAt,
		TempAmbient: r.TempAmbient,
		HumAmbient:  r.HumAmbient,
		HumSoil:     r.HumSoil,
	}
}
