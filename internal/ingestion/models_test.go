package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTelemetry(t *testing.T) {
	msg, err := ParseTelemetry([]byte(`{"token":"ABC","temp_ambient":24.5,"hum_ambient":60,"hum_soil":40}`))
	require.NoError(t, err)
	assert.Equal(t, "ABC", msg.Token)
	assert.Equal(t, 24.5, *msg.TempAmbient)
	assert.Equal(t, 60.0, *msg.HumAmbient)
	assert.Equal(t, 40.0, *msg.HumSoil)
}

func TestParseTelemetryMissingToken(t *testing.T) {
	_, err := ParseTelemetry([]byte(`{"temp_ambient":24.5,"hum_ambient":60,"hum_soil":40}`))
	assert.Error(t, err)
}

func TestParseTelemetryMissingSensorFields(t *testing.T) {
	cases := map[string]string{
		"no temp":     `{"token":"ABC","hum_ambient":60,"hum_soil":40}`,
		"no humidity": `{"token":"ABC","temp_ambient":24.5,"hum_soil":40}`,
		"no soil":     `{"token":"ABC","temp_ambient":24.5,"hum_ambient":60}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTelemetry([]byte(payload))
			assert.Error(t, err)
		})
	}
}

func TestParseTelemetryInvalidJSON(t *testing.T) {
	_, err := ParseTelemetry([]byte(`{"token":`))
	assert.Error(t, err)
}

func TestParseTelemetryZeroValuesAccepted(t *testing.T) {
	msg, err := ParseTelemetry([]byte(`{"token":"ABC","temp_ambient":0,"hum_ambient":0,"hum_soil":0}`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, *msg.TempAmbient)
}
