package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type vehicleRepository struct {
	db dbtx
}

const vehicleColumns = `id, license_plate, brand, model, vehicle_type, year, capacity, daily_price_cents, odometer_km, COALESCE(description, ''), refund_policy_id, branch_id, COALESCE(status, ''), status_changed_on, created_on`

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (license_plate, brand, model, vehicle_type, year, capacity, daily_price_cents, odometer_km, description, refund_policy_id, branch_id, status, status_changed_on, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	now := time.Now()
	v.CreatedOn = now
	v.StatusChangedOn = now
	return r.db.QueryRowContext(ctx, query,
		v.LicensePlate, v.Brand, v.Model, v.VehicleType, v.Year, v.Capacity,
		v.DailyPriceCents, v.OdometerKm, v.Description, v.RefundPolicyID,
		v.BranchID, nullableStatus(v.Status), now, now).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return r.scanVehicle(r.db.QueryRowContext(ctx, query, id))
}

func (r *vehicleRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 FOR UPDATE`
	return r.scanVehicle(r.db.QueryRowContext(ctx, query, id))
}

func (r *vehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE license_plate = $1`
	return r.scanVehicle(r.db.QueryRowContext(ctx, query, plate))
}

func (r *vehicleRepository) scanVehicle(row *sql.Row) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	var status string
	err := row.Scan(&v.ID, &v.LicensePlate, &v.Brand, &v.Model, &v.VehicleType,
		&v.Year, &v.Capacity, &v.DailyPriceCents, &v.OdometerKm, &v.Description,
		&v.RefundPolicyID, &v.BranchID, &status, &v.StatusChangedOn, &v.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	v.Status = domain.VehicleStatus(status)
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	// License plate is immutable once issued; status changes go through
	// UpdateStatus.
	query := `UPDATE vehicles SET brand=$1, model=$2, vehicle_type=$3, year=$4, capacity=$5, daily_price_cents=$6, odometer_km=$7, description=$8, refund_policy_id=$9, branch_id=$10 WHERE id=$11`
	res, err := r.db.ExecContext(ctx, query, v.Brand, v.Model, v.VehicleType,
		v.Year, v.Capacity, v.DailyPriceCents, v.OdometerKm, v.Description,
		v.RefundPolicyID, v.BranchID, v.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM vehicles
	          WHERE id = $1
	            AND NOT EXISTS (
	                SELECT 1 FROM reservations
	                WHERE vehicle_id = $1 AND status = ANY($2)
	            )`
	res, err := r.db.ExecContext(ctx, query, id, statusArray(domain.ActiveStatuses))
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Distinguish "not found" from "still reserved".
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM vehicles WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return domain.ErrVehicleHasReservations
		}
		return domain.ErrNotFound
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context, filter repository.VehicleListFilter, page, pageSize int32) ([]domain.Vehicle, int64, error) {
	where := " WHERE 1=1"
	args := []any{}
	argIdx := 1
	if filter.Brand != "" {
		where += fmt.Sprintf(" AND brand = $%d", argIdx)
		args = append(args, filter.Brand)
		argIdx++
	}
	if filter.VehicleType != "" {
		where += fmt.Sprintf(" AND vehicle_type = $%d", argIdx)
		args = append(args, filter.VehicleType)
		argIdx++
	}
	if filter.Status != domain.VehicleStatusNone {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(filter.Status))
		argIdx++
	}
	if filter.MinCapacity > 0 {
		where += fmt.Sprintf(" AND capacity >= $%d", argIdx)
		args = append(args, filter.MinCapacity)
		argIdx++
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM vehicles`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + vehicleColumns + ` FROM vehicles` + where +
		fmt.Sprintf(" ORDER BY year DESC, brand, model LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	vehicles, err := collectVehicles(rows)
	return vehicles, count, err
}

func (r *vehicleRepository) SearchAvailable(ctx context.Context, start, end time.Time, blocking []domain.ReservationStatus, page, pageSize int32) ([]domain.Vehicle, int64, error) {
	where := ` WHERE v.status = $1
	           AND NOT EXISTS (
	               SELECT 1 FROM reservations rs
	               WHERE rs.vehicle_id = v.id
	                 AND rs.status = ANY($2)
	                 AND rs.start_date <= $4 AND rs.end_date >= $3
	           )`
	args := []any{string(domain.VehicleStatusAvailable), statusArray(blocking), start, end}

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM vehicles v`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT v.id, v.license_plate, v.brand, v.model, v.vehicle_type, v.year, v.capacity, v.daily_price_cents, v.odometer_km, COALESCE(v.description, ''), v.refund_policy_id, v.branch_id, COALESCE(v.status, ''), v.status_changed_on, v.created_on FROM vehicles v` + where +
		` ORDER BY v.daily_price_cents LIMIT $5 OFFSET $6`
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	vehicles, err := collectVehicles(rows)
	return vehicles, count, err
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.VehicleStatus) (bool, error) {
	query := `UPDATE vehicles SET status = $1, status_changed_on = $2 WHERE id = $3 AND COALESCE(status, '') = $4`
	res, err := r.db.ExecContext(ctx, query, string(to), time.Now(), id, string(from))
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func collectVehicles(rows *sql.Rows) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		var status string
		if err := rows.Scan(&v.ID, &v.LicensePlate, &v.Brand, &v.Model, &v.VehicleType,
			&v.Year, &v.Capacity, &v.DailyPriceCents, &v.OdometerKm, &v.Description,
			&v.RefundPolicyID, &v.BranchID, &status, &v.StatusChangedOn, &v.CreatedOn); err != nil {
			return nil, err
		}
		v.Status = domain.VehicleStatus(status)
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func nullableStatus(s domain.VehicleStatus) any {
	if s == domain.VehicleStatusNone {
		return nil
	}
	return string(s)
}

func statusArray(statuses []domain.ReservationStatus) pq.StringArray {
	arr := make(pq.StringArray, len(statuses))
	for i, s := range statuses {
		arr[i] = string(s)
	}
	return arr
}
