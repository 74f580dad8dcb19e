package ingestion

import (
	"encoding/json"
	"errors"
	"time"
)

// TelemetryMessage is the payload devices publish on the telemetry topic.
// It mirrors the HTTP ingest body; Timestamp is informational only, capture
// time is assigned by the server.
type TelemetryMessage struct {
	Token       string    `json:"token"`
	TempAmbient *float64  `json:"temp_ambient"`
	HumAmbient  *float64  `json:"hum_ambient"`
	HumSoil     *float64  `json:"hum_soil"`
	Timestamp   time.Time `json:"timestamp"`
}

// ParseTelemetry decodes and shape-checks a telemetry payload.
func ParseTelemetry(payload []byte) (*TelemetryMessage, error) {
	var msg TelemetryMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, err
	}
	if msg.Token == "" {
		return nil, errors.New("telemetry message missing token")
	}
	if msg.TempAmbient == nil || msg.HumAmbient == nil || msg.HumSoil == nil {
		return nil, errors.New("telemetry message missing sensor fields")
	}
	return &msg, nil
}
