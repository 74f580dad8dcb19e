package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ecoduino/greenhouse-backend/internal/database"
	domainControl "github.com/ecoduino/greenhouse-backend/internal/domain/control"
	domainDevice "github.com/ecoduino/greenhouse-backend/internal/domain/device"
	domainOwnership "github.com/ecoduino/greenhouse-backend/internal/domain/ownership"
	domainTelemetry "github.com/ecoduino/greenhouse-backend/internal/domain/telemetry"
	"github.com/ecoduino/greenhouse-backend/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init("development"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestRepos(t *testing.T) (*database.DB, domainDevice.Registry, domainOwnership.Ledger, domainControl.Store, domainTelemetry.Log) {
	t.Helper()
	db, err := database.NewTestDatabase()
	require.NoError(t, err)
	return db, NewDeviceRepository(db), NewOwnershipRepository(db), NewControlRepository(db), NewTelemetryRepository(db)
}

func TestDeviceRegistryCreateAndLookup(t *testing.T) {
	_, registry, _, _, _ := newTestRepos(t)
	ctx := context.Background()

	d := &domainDevice.Device{Token: "ABC", LocationLabel: "Greenhouse A"}
	require.NoError(t, registry.Create(ctx, d))
	require.NotZero(t, d.ID)

	byToken, err := registry.GetByToken(ctx, "ABC")
	require.NoError(t, err)
	require.Equal(t, d.ID, byToken.ID)
	require.Equal(t, "Greenhouse A", byToken.LocationLabel)

	byID, err := registry.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "ABC", byID.Token)
}

func TestDeviceRegistryUnknownToken(t *testing.T) {
	_, registry, _, _, _ := newTestRepos(t)
	ctx := context.Background()

	_, err := registry.GetByToken(ctx, "never-registered")
	require.ErrorIs(t, err, domainDevice.ErrDeviceNotAuthorized)

	_, err = registry.GetByID(ctx, 12345)
	require.ErrorIs(t, err, domainDevice.ErrDeviceNotFound)
}

func TestDeviceRegistryDuplicateToken(t *testing.T) {
	_, registry, _, _, _ := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, registry.Create(ctx, &domainDevice.Device{Token: "DUP", LocationLabel: "A"}))

	err := registry.Create(ctx, &domainDevice.Device{Token: "DUP", LocationLabel: "B"})
	require.ErrorIs(t, err, domainDevice.ErrTokenAlreadyRegistered)
}

func TestDeviceRegistryLastContact(t *testing.T) {
	_, registry, _, _, _ := newTestRepos(t)
	ctx := context.Background()

	d := &domainDevice.Device{Token: "LC", LocationLabel: "A"}
	require.NoError(t, registry.Create(ctx, d))

	created, err := registry.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.Nil(t, created.LastContactAt)

	require.NoError(t, registry.UpdateLastContact(ctx, d.ID))

	touched, err := registry.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, touched.LastContactAt)
	require.WithinDuration(t, time.Now(), *touched.LastContactAt, time.Minute)
}

func TestOwnershipGrantAndRole(t *testing.T) {
	_, registry, ledger, _, _ := newTestRepos(t)
	ctx := context.Background()

	d := &domainDevice.Device{Token: "OWN", LocationLabel: "A"}
	require.NoError(t, registry.Create(ctx, d))

	require.NoError(t, ledger.Grant(ctx, 7, d.ID, domainOwnership.RoleAdmin))

	role, err := ledger.GetRole(ctx, 7, d.ID)
	require.NoError(t, err)
	require.Equal(t, domainOwnership.RoleAdmin, role)
	require.True(t, role.CanControl())

	_, err = ledger.GetRole(ctx, 8, d.ID)
	require.ErrorIs(t, err, domainOwnership.ErrNotOwner)
}

func TestOwnershipDuplicateGrant(t *testing.T) {
	_, registry, ledger, _, _ := newTestRepos(t)
	ctx := context.Background()

	d := &domainDevice.Device{Token: "DUPGRANT", LocationLabel: "A"}
	require.NoError(t, registry.Create(ctx, d))

	require.NoError(t, ledger.Grant(ctx, 7, d.ID, domainOwnership.RoleAdmin))
	err := ledger.Grant(ctx, 7, d.ID, domainOwnership.RoleViewer)
	require.ErrorIs(t, err, domainOwnership.ErrOwnershipExists)
}

func TestOwnershipListOrderedByDeviceID(t *testing.T) {
	_, registry, ledger, _, _ := newTestRepos(t)
	ctx := context.Background()

	tokens := []string{"L1", "L2", "L3"}
	var ids []uint
	for _, token := range tokens {
		d := &domainDevice.Device{Token: token, LocationLabel: "loc " + token}
		require.NoError(t, registry.Create(ctx, d))
		ids = append(ids, d.ID)
	}
	// Grant in reverse order; listing must still come back ascending.
	for i := len(ids) - 1; i >= 0; i-- {
		require.NoError(t, ledger.Grant(ctx, 7, ids[i], domainOwnership.RoleAdmin))
	}
	// Another user's device must not leak into user 7's list.
	other := &domainDevice.Device{Token: "L4", LocationLabel: "other"}
	require.NoError(t, registry.Create(ctx, other))
	require.NoError(t, ledger.Grant(ctx, 9, other.ID, domainOwnership.RoleAdmin))

	devices, err := ledger.ListDevicesForUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, devices, 3)
	for i, d := range devices {
		require.Equal(t, ids[i], d.ID)
	}
}

func TestOwnershipListEmpty(t *testing.T) {
	_, _, ledger, _, _ := newTestRepos(t)

	devices, err := ledger.ListDevicesForUser(context.Background(), 42)
	require.NoError(t, err)
	require.Empty(t, devices)
}

func TestControlStateInitializeAndGet(t *testing.T) {
	_, registry, _, store, _ := newTestRepos(t)
	ctx := context.Background()

	d := &domainDevice.Device{Token: "CTL", LocationLabel: "A"}
	require.NoError(t, registry.Create(ctx, d))

	_, err := store.Get(ctx, d.ID)
	require.ErrorIs(t, err, domainControl.ErrControlStateUninitialized)

	require.NoError(t, store.Initialize(ctx, d.ID))

	cs, err := store.Get(ctx, d.ID)
	require.NoError(t, err)
	require.False(t, cs.Lights)
	require.False(t, cs.Irrigation)
	require.False(t, cs.Ventilation)

	err = store.Initialize(ctx, d.ID)
	require.ErrorIs(t, err, domainControl.ErrDuplicateControlState)
}

func TestControlStateSetFlagIsolation(t *testing.T) {
	_, registry, _, store, _ := newTestRepos(t)
	ctx := context.Background()

	d := &domainDevice.Device{Token: "ISO", LocationLabel: "A"}
	require.NoError(t, registry.Create(ctx, d))
	require.NoError(t, store.Initialize(ctx, d.ID))

	cs, err := store.SetFlag(ctx, d.ID, domainControl.ActuatorIrrigation, true)
	require.NoError(t, err)
	require.False(t, cs.Lights)
	require.True(t, cs.Irrigation)
	require.False(t, cs.Ventilation)

	cs, err = store.SetFlag(ctx, d.ID, domainControl.ActuatorLights, true)
	require.NoError(t, err)
	require.True(t, cs.Lights)
	require.True(t, cs.Irrigation)
	require.False(t, cs.Ventilation)

	// Blind overwrite is idempotent.
	cs, err = store.SetFlag(ctx, d.ID, domainControl.ActuatorIrrigation, true)
	require.NoError(t, err)
	require.True(t, cs.Irrigation)

	cs, err = store.SetFlag(ctx, d.ID, domainControl.ActuatorIrrigation, false)
	require.NoError(t, err)
	require.True(t, cs.Lights)
	require.False(t, cs.Irrigation)
}

func TestControlStateSetFlagUninitialized(t *testing.T) {
	_, registry, _, store, _ := newTestRepos(t)
	ctx := context.Background()

	d := &domainDevice.Device{Token: "NOCTL", LocationLabel: "A"}
	require.NoError(t, registry.Create(ctx, d))

	_, err := store.SetFlag(ctx, d.ID, domainControl.ActuatorLights, true)
	require.ErrorIs(t, err, domainControl.ErrControlStateUninitialized)
}

func TestTelemetryAppendRefreshesLastContact(t *testing.T) {
	_, registry, _, _, log := newTestRepos(t)
	ctx := context.Background()

	d := &domainDevice.Device{Token: "TEL", LocationLabel: "A"}
	require.NoError(t, registry.Create(ctx, d))

	reading, err := log.Append(ctx, d.ID, 24.5, 60, 40)
	require.NoError(t, err)
	require.NotZero(t, reading.ID)
	require.Equal(t, 24.5, reading.TempAmbient)
	require.WithinDuration(t, time.Now(), reading.CapturedAt, time.Minute)

	touched, err := registry.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, touched.LastContactAt)
}

func TestTelemetryLatestAndHistory(t *testing.T) {
	_, registry, _, _, log := newTestRepos(t)
	ctx := context.Background()

	d := &domainDevice.Device{Token: "HIST", LocationLabel: "A"}
	require.NoError(t, registry.Create(ctx, d))

	_, err := log.Latest(ctx, d.ID)
	require.ErrorIs(t, err, domainTelemetry.ErrNoReadingsYet)

	for i := 0; i < 5; i++ {
		_, err := log.Append(ctx, d.ID, 20+float64(i), 50, 30)
		require.NoError(t, err)
	}

	latest, err := log.Latest(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, 24.0, latest.TempAmbient)

	history, err := log.History(ctx, d.ID, 3)
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.Equal(t, latest.ID, history[0].ID)
	for i := 1; i < len(history); i++ {
		require.False(t, history[i].CapturedAt.After(history[i-1].CapturedAt))
	}

	full, err := log.History(ctx, d.ID, 50)
	require.NoError(t, err)
	require.Len(t, full, 5)
}
