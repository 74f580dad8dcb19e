package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecoduino/greenhouse-backend/internal/database"
	domainDevice "github.com/ecoduino/greenhouse-backend/internal/domain/device"
	domainOwnership "github.com/ecoduino/greenhouse-backend/internal/domain/ownership"
	"github.com/ecoduino/greenhouse-backend/internal/infrastructure/database/postgres/models"
)

func countRows(t *testing.T, db *database.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.DB.Model(model).Count(&count).Error)
	return count
}

func TestProvisionCreatesAllThreeRows(t *testing.T) {
	db, _, ledger, store, _ := newTestRepos(t)
	orchestrator := NewProvisioningRepository(db)
	ctx := context.Background()

	d, err := orchestrator.Provision(ctx, 7, "ABC", "Greenhouse A")
	require.NoError(t, err)
	require.NotZero(t, d.ID)
	require.Equal(t, "ABC", d.Token)

	cs, err := store.Get(ctx, d.ID)
	require.NoError(t, err)
	require.False(t, cs.Lights)
	require.False(t, cs.Irrigation)
	require.False(t, cs.Ventilation)

	role, err := ledger.GetRole(ctx, 7, d.ID)
	require.NoError(t, err)
	require.Equal(t, domainOwnership.RoleAdmin, role)
}

func TestProvisionDuplicateTokenLeavesNoPartialState(t *testing.T) {
	db, _, _, _, _ := newTestRepos(t)
	orchestrator := NewProvisioningRepository(db)
	ctx := context.Background()

	_, err := orchestrator.Provision(ctx, 7, "ABC", "Greenhouse A")
	require.NoError(t, err)

	devicesBefore := countRows(t, db, &models.DeviceModel{})
	controlsBefore := countRows(t, db, &models.ControlStateModel{})
	ownershipsBefore := countRows(t, db, &models.OwnershipModel{})

	_, err = orchestrator.Provision(ctx, 9, "ABC", "Greenhouse B")
	require.ErrorIs(t, err, domainDevice.ErrTokenAlreadyRegistered)

	require.Equal(t, devicesBefore, countRows(t, db, &models.DeviceModel{}))
	require.Equal(t, controlsBefore, countRows(t, db, &models.ControlStateModel{}))
	require.Equal(t, ownershipsBefore, countRows(t, db, &models.OwnershipModel{}))
}

func TestProvisionRollsBackWhenGrantFails(t *testing.T) {
	db, _, _, _, _ := newTestRepos(t)
	orchestrator := NewProvisioningRepository(db)
	ctx := context.Background()

	// Sabotage the grant step so the transaction fails after the device and
	// control rows were inserted; nothing may survive the rollback.
	require.NoError(t, db.DB.Migrator().DropTable(&models.OwnershipModel{}))

	_, err := orchestrator.Provision(ctx, 7, "DOOMED", "Greenhouse A")
	require.Error(t, err)
	require.NotErrorIs(t, err, domainDevice.ErrTokenAlreadyRegistered)

	require.Zero(t, countRows(t, db, &models.DeviceModel{}))
	require.Zero(t, countRows(t, db, &models.ControlStateModel{}))

	_, lookupErr := NewDeviceRepository(db).GetByToken(ctx, "DOOMED")
	require.ErrorIs(t, lookupErr, domainDevice.ErrDeviceNotAuthorized)
}

func TestProvisionConcurrentSameToken(t *testing.T) {
	db, _, _, _, _ := newTestRepos(t)
	orchestrator := NewProvisioningRepository(db)

	const callers = 4
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = orchestrator.Provision(context.Background(), uint(i+1), "RACE", "Greenhouse A")
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, domainDevice.ErrTokenAlreadyRegistered)
			conflicts++
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, callers-1, conflicts)

	require.EqualValues(t, 1, countRows(t, db, &models.DeviceModel{}))
	require.EqualValues(t, 1, countRows(t, db, &models.ControlStateModel{}))
	require.EqualValues(t, 1, countRows(t, db, &models.OwnershipModel{}))
}
