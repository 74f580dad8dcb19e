package provisioning

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecoduino/greenhouse-backend/internal/database"
	domainDevice "github.com/ecoduino/greenhouse-backend/internal/domain/device"
	"github.com/ecoduino/greenhouse-backend/internal/infrastructure/database/postgres"
	"github.com/ecoduino/greenhouse-backend/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init("development"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.NewTestDatabase()
	require.NoError(t, err)
	return NewService(postgres.NewProvisioningRepository(db))
}

func TestProvisionValidation(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		userID uint
		req    ProvisionDeviceRequest
	}{
		{"missing token", 7, ProvisionDeviceRequest{LocationLabel: "Greenhouse A"}},
		{"missing location", 7, ProvisionDeviceRequest{Token: "ABC"}},
		{"missing user", 0, ProvisionDeviceRequest{Token: "ABC", LocationLabel: "Greenhouse A"}},
		{"blank token", 7, ProvisionDeviceRequest{Token: "   ", LocationLabel: "Greenhouse A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Provision(ctx, tt.userID, &tt.req)
			require.ErrorIs(t, err, ErrIncompleteRequest)
		})
	}
}

func TestProvisionSuccessAndConflict(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	resp, err := service.Provision(ctx, 7, &ProvisionDeviceRequest{
		Token:         "ABC",
		LocationLabel: "Greenhouse A",
	})
	require.NoError(t, err)
	require.NotZero(t, resp.ID)
	require.Equal(t, "ABC", resp.Token)
	require.Equal(t, "Greenhouse A", resp.LocationLabel)

	_, err = service.Provision(ctx, 7, &ProvisionDeviceRequest{
		Token:         "ABC",
		LocationLabel: "Greenhouse B",
	})
	require.ErrorIs(t, err, domainDevice.ErrTokenAlreadyRegistered)
}

func TestProvisionTrimsInput(t *testing.T) {
	service := newTestService(t)

	resp, err := service.Provision(context.Background(), 7, &ProvisionDeviceRequest{
		Token:         "  XYZ  ",
		LocationLabel: " Greenhouse B ",
	})
	require.NoError(t, err)
	require.Equal(t, "XYZ", resp.Token)
	require.Equal(t, "Greenhouse B", resp.LocationLabel)
}
