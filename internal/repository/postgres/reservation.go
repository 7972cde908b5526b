package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carrental-backend/internal/domain"
)

type reservationRepository struct {
	db dbtx
}

const reservationColumns = `id, user_id, vehicle_id, card_id, start_date, end_date, status, driver_document, total_cost_cents, COALESCE(cancel_reason, ''), created_on, updated_on`

func (r *reservationRepository) Create(ctx context.Context, rs *domain.Reservation) error {
	query := `INSERT INTO reservations (user_id, vehicle_id, card_id, start_date, end_date, status, driver_document, total_cost_cents, cancel_reason, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	rs.CreatedOn = now
	rs.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, rs.UserID, rs.VehicleID, rs.CardID,
		rs.StartDate, rs.EndDate, string(rs.Status), rs.DriverDocument,
		rs.TotalCostCents, nullIfEmpty(rs.CancelReason), now, now).Scan(&rs.ID)
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	return r.scanReservation(r.db.QueryRowContext(ctx, query, id))
}

func (r *reservationRepository) scanReservation(row *sql.Row) (*domain.Reservation, error) {
	rs := &domain.Reservation{}
	var status string
	err := row.Scan(&rs.ID, &rs.UserID, &rs.VehicleID, &rs.CardID, &rs.StartDate,
		&rs.EndDate, &status, &rs.DriverDocument, &rs.TotalCostCents,
		&rs.CancelReason, &rs.CreatedOn, &rs.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rs.Status = domain.ReservationStatus(status)
	return rs, nil
}

func (r *reservationRepository) Update(ctx context.Context, rs *domain.Reservation) error {
	query := `UPDATE reservations SET status=$1, cancel_reason=$2, updated_on=$3 WHERE id=$4`
	now := time.Now()
	rs.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query, string(rs.Status), nullIfEmpty(rs.CancelReason), now, rs.ID)
	return err
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID int64, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int64, error) {
	where := ` WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		where += ` AND status = $2`
		args = append(args, string(status))
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM reservations`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	limitIdx := len(args) + 1
	query := `SELECT ` + reservationColumns + ` FROM reservations` + where +
		fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", limitIdx, limitIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	reservations, err := collectReservations(rows)
	return reservations, count, err
}

// FindVehicleConflict scans the vehicle's reservations in a blocking status
// for an inclusive range intersection: startA <= endB AND endA >= startB.
func (r *reservationRepository) FindVehicleConflict(ctx context.Context, vehicleID int64, start, end time.Time, blocking []domain.ReservationStatus, excludeID int64) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE vehicle_id = $1
	            AND status = ANY($2)
	            AND id <> $3
	            AND start_date <= $5 AND end_date >= $4
	          ORDER BY start_date
	          LIMIT 1`
	rs, err := r.scanReservation(r.db.QueryRowContext(ctx, query, vehicleID, statusArray(blocking), excludeID, start, end))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return rs, err
}

func (r *reservationRepository) FindDriverConflict(ctx context.Context, driverDocument string, start, end time.Time, excludeID int64) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE driver_document = $1
	            AND status = $2
	            AND id <> $3
	            AND start_date <= $5 AND end_date >= $4
	          ORDER BY start_date
	          LIMIT 1`
	rs, err := r.scanReservation(r.db.QueryRowContext(ctx, query, driverDocument, string(domain.ReservationStatusConfirmed), excludeID, start, end))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return rs, err
}

func (r *reservationRepository) ListEndedBefore(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE status = $1 AND end_date < $2`
	rows, err := r.db.QueryContext(ctx, query, string(domain.ReservationStatusConfirmed), date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *reservationRepository) ListStartingOn(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE status = $1 AND start_date = $2`
	rows, err := r.db.QueryContext(ctx, query, string(domain.ReservationStatusConfirmed), date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func collectReservations(rows *sql.Rows) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	for rows.Next() {
		var rs domain.Reservation
		var status string
		if err := rows.Scan(&rs.ID, &rs.UserID, &rs.VehicleID, &rs.CardID,
			&rs.StartDate, &rs.EndDate, &status, &rs.DriverDocument,
			&rs.TotalCostCents, &rs.CancelReason, &rs.CreatedOn, &rs.UpdatedOn); err != nil {
			return nil, err
		}
		rs.Status = domain.ReservationStatus(status)
		reservations = append(reservations, rs)
	}
	return reservations, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
