package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository/postgres"
)

func TestVehicleRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := postgres.NewStore(db)
	ctx := context.Background()

	t.Run("Guard Passes", func(t *testing.T) {
		mock.ExpectExec("UPDATE vehicles SET status =").
			WithArgs("RESERVED", sqlmock.AnyArg(), int64(2), "AVAILABLE").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := store.Vehicles().UpdateStatus(ctx, 2, domain.VehicleStatusAvailable, domain.VehicleStatusReserved)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Guard Fails On Stale State", func(t *testing.T) {
		mock.ExpectExec("UPDATE vehicles SET status =").
			WithArgs("RESERVED", sqlmock.AnyArg(), int64(2), "AVAILABLE").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := store.Vehicles().UpdateStatus(ctx, 2, domain.VehicleStatusAvailable, domain.VehicleStatusReserved)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestVehicleRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := postgres.NewStore(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM vehicles").
			WithArgs(int64(2), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.Vehicles().Delete(ctx, 2))
	})

	t.Run("Blocked By Reservations", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM vehicles").
			WithArgs(int64(2), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := store.Vehicles().Delete(ctx, 2)
		assert.ErrorIs(t, err, domain.ErrVehicleHasReservations)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM vehicles").
			WithArgs(int64(99), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := store.Vehicles().Delete(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestVehicleRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := postgres.NewStore(db)
	ctx := context.Background()
	columns := []string{"id", "license_plate", "brand", "model", "vehicle_type", "year", "capacity",
		"daily_price_cents", "odometer_km", "description", "refund_policy_id", "branch_id",
		"status", "status_changed_on", "created_on"}

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE id =").
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(2, "AB123CD", "Toyota", "Corolla", "SEDAN", 2024, 5, 5000, 42000, "", 3, nil, "AVAILABLE", now, now))

		vehicle, err := store.Vehicles().GetByID(ctx, 2)
		assert.NoError(t, err)
		assert.Equal(t, "AB123CD", vehicle.LicensePlate)
		assert.Equal(t, domain.VehicleStatusAvailable, vehicle.Status)
		if assert.NotNil(t, vehicle.RefundPolicyID) {
			assert.Equal(t, int64(3), *vehicle.RefundPolicyID)
		}
		assert.Nil(t, vehicle.BranchID)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE id =").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(columns))

		vehicle, err := store.Vehicles().GetByID(ctx, 99)
		assert.Nil(t, vehicle)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("By Plate", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE license_plate =").
			WithArgs("AB123CD").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(2, "AB123CD", "Toyota", "Corolla", "SEDAN", 2024, 5, 5000, 42000, "", 3, nil, "AVAILABLE", now, now))

		vehicle, err := store.Vehicles().GetByPlate(ctx, "AB123CD")
		assert.NoError(t, err)
		assert.Equal(t, int64(2), vehicle.ID)
	})

	t.Run("By Plate Not Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE license_plate =").
			WithArgs("ZZ999ZZ").
			WillReturnRows(sqlmock.NewRows(columns))

		vehicle, err := store.Vehicles().GetByPlate(ctx, "ZZ999ZZ")
		assert.Nil(t, vehicle)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
