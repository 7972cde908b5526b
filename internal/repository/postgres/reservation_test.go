package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/repository/postgres"
)

var reservationColumns = []string{"id", "user_id", "vehicle_id", "card_id", "start_date", "end_date",
	"status", "driver_document", "total_cost_cents", "cancel_reason", "created_on", "updated_on"}

func TestReservationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := postgres.NewStore(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cardID := int64(7)
		rs := &domain.Reservation{
			UserID:         1,
			VehicleID:      2,
			CardID:         &cardID,
			StartDate:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
			Status:         domain.ReservationStatusConfirmed,
			DriverDocument: "30111222",
			TotalCostCents: 15000,
		}

		mock.ExpectQuery("INSERT INTO reservations").
			WithArgs(rs.UserID, rs.VehicleID, rs.CardID, rs.StartDate, rs.EndDate,
				"CONFIRMED", rs.DriverDocument, rs.TotalCostCents, nil,
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		err := store.Reservations().Create(ctx, rs)
		assert.NoError(t, err)
		assert.Equal(t, int64(11), rs.ID)
		assert.False(t, rs.CreatedOn.IsZero())
	})
}

func TestReservationRepository_FindVehicleConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := postgres.NewStore(db)
	ctx := context.Background()
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Conflict Found", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM reservations").
			WithArgs(int64(2), sqlmock.AnyArg(), int64(0), start, end).
			WillReturnRows(sqlmock.NewRows(reservationColumns).
				AddRow(9, 4, 2, nil, start, end, "CONFIRMED", "30999888", 25000, "", now, now))

		conflict, err := store.Reservations().FindVehicleConflict(ctx, 2, start, end, domain.DefaultBlockingStatuses, 0)
		assert.NoError(t, err)
		if assert.NotNil(t, conflict) {
			assert.Equal(t, int64(9), conflict.ID)
			assert.Equal(t, domain.ReservationStatusConfirmed, conflict.Status)
		}
	})

	t.Run("No Conflict", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM reservations").
			WithArgs(int64(2), sqlmock.AnyArg(), int64(0), start, end).
			WillReturnRows(sqlmock.NewRows(reservationColumns))

		conflict, err := store.Reservations().FindVehicleConflict(ctx, 2, start, end, domain.DefaultBlockingStatuses, 0)
		assert.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("Default Blocking Set", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM reservations").
			WithArgs(int64(2), pq.StringArray{"CONFIRMED"}, int64(0), start, end).
			WillReturnRows(sqlmock.NewRows(reservationColumns))

		conflict, err := store.Reservations().FindVehicleConflict(ctx, 2, start, end, domain.DefaultBlockingStatuses, 0)
		assert.NoError(t, err)
		assert.Nil(t, conflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Wider Blocking Set", func(t *testing.T) {
		blocking := []domain.ReservationStatus{domain.ReservationStatusConfirmed, domain.ReservationStatusCompleted}
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM reservations").
			WithArgs(int64(2), pq.StringArray{"CONFIRMED", "COMPLETED"}, int64(0), start, end).
			WillReturnRows(sqlmock.NewRows(reservationColumns).
				AddRow(12, 4, 2, nil, start, end, "COMPLETED", "30999888", 25000, "", now, now))

		conflict, err := store.Reservations().FindVehicleConflict(ctx, 2, start, end, blocking, 0)
		assert.NoError(t, err)
		if assert.NotNil(t, conflict) {
			assert.Equal(t, domain.ReservationStatusCompleted, conflict.Status)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReservationRepository_FindDriverConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := postgres.NewStore(db)
	ctx := context.Background()
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Only Confirmed Reservations Considered", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM reservations").
			WithArgs("30111222", "CONFIRMED", int64(0), start, end).
			WillReturnRows(sqlmock.NewRows(reservationColumns))

		conflict, err := store.Reservations().FindDriverConflict(ctx, "30111222", start, end, 0)
		assert.NoError(t, err)
		assert.Nil(t, conflict)
	})
}

func TestStore_WithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := postgres.NewStore(db)
	ctx := context.Background()

	t.Run("Commit On Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE cards SET balance_cents = balance_cents -").
			WithArgs(int64(100), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.WithTx(ctx, func(tx repository.Store) error {
			return tx.Cards().Debit(ctx, 7, 100)
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback On Error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE cards SET balance_cents = balance_cents -").
			WithArgs(int64(100), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := store.WithTx(ctx, func(tx repository.Store) error {
			return tx.Cards().Debit(ctx, 7, 100)
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
