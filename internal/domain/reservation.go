package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusConfirmed        ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled        ReservationStatus = "CANCELLED"
	ReservationStatusCancelledByAdmin ReservationStatus = "CANCELLED_BY_ADMIN"
	ReservationStatusCompleted        ReservationStatus = "COMPLETED"
)

// DefaultBlockingStatuses is the canonical set of reservation statuses that
// block a vehicle for an overlapping date range. Call sites pass the set
// explicitly; only confirmed reservations actually hold a vehicle.
var DefaultBlockingStatuses = []ReservationStatus{ReservationStatusConfirmed}

// ActiveStatuses are the statuses that count as "not cancelled" for the
// purpose of guarding vehicle deletion.
var ActiveStatuses = []ReservationStatus{ReservationStatusConfirmed, ReservationStatusCompleted}

type Reservation struct {
	ID             int64             `json:"id"`
	UserID         int64             `json:"user_id"`
	VehicleID      int64             `json:"vehicle_id"`
	CardID         *int64            `json:"card_id,omitempty"`
	StartDate      time.Time         `json:"start_date"`
	EndDate        time.Time         `json:"end_date"`
	Status         ReservationStatus `json:"status"`
	DriverDocument string            `json:"driver_document"`
	TotalCostCents int64             `json:"total_cost_cents"`
	CancelReason   string            `json:"cancel_reason,omitempty"`
	CreatedOn      time.Time         `json:"created_on"`
	UpdatedOn      time.Time         `json:"updated_on"`
}

func (r *Reservation) Cancelled() bool {
	return r.Status == ReservationStatusCancelled || r.Status == ReservationStatusCancelledByAdmin
}

// Overlaps reports whether [r.StartDate, r.EndDate] intersects the inclusive
// range [start, end]. Ranges that touch on a single day conflict.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return !start.After(r.EndDate) && !end.Before(r.StartDate)
}

// CancellableBy reports whether a renter may still cancel: the cutoff is 24
// hours before midnight at the start date.
func (r *Reservation) CancellableBy(now time.Time, cutoff time.Duration) bool {
	return r.StartDate.Sub(now) >= cutoff
}
