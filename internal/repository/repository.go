package repository

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
)

// Store bundles all repositories and provides the transactional unit of work
// the reservation engine runs inside. WithTx executes fn against a Store
// whose repositories share one serializable transaction; fn returning an
// error rolls everything back.
type Store interface {
	Users() UserRepository
	Vehicles() VehicleRepository
	Cards() CardRepository
	Reservations() ReservationRepository
	Payments() PaymentRepository
	Catalog() CatalogRepository

	WithTx(ctx context.Context, fn func(Store) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateProfile(ctx context.Context, profile *domain.Profile) error
	GetProfile(ctx context.Context, userID int64) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, profile *domain.Profile) error
}

type VehicleListFilter struct {
	Brand       string
	VehicleType string
	Status      domain.VehicleStatus
	MinCapacity int32
}

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	// GetByIDForUpdate locks the vehicle row for the duration of the
	// enclosing transaction.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter VehicleListFilter, page, pageSize int32) ([]domain.Vehicle, int64, error)
	// SearchAvailable lists available vehicles with no blocking reservation
	// overlapping [start, end].
	SearchAvailable(ctx context.Context, start, end time.Time, blocking []domain.ReservationStatus, page, pageSize int32) ([]domain.Vehicle, int64, error)
	// UpdateStatus performs a guarded transition: the UPDATE only matches
	// when the row is still in the expected state. Returns false when the
	// guard failed.
	UpdateStatus(ctx context.Context, id int64, from, to domain.VehicleStatus) (bool, error)
}

type CardRepository interface {
	GetByNumber(ctx context.Context, number string) (*domain.Card, error)
	// GetByNumberForUpdate locks the card row for the duration of the
	// enclosing transaction.
	GetByNumberForUpdate(ctx context.Context, number string) (*domain.Card, error)
	// Debit decreases the balance; returns domain.ErrInsufficientFunds when
	// the balance is lower than the amount. The check and the decrement are
	// one statement.
	Debit(ctx context.Context, cardID int64, amountCents int64) error
	Credit(ctx context.Context, cardID int64, amountCents int64) error
}

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
	ListByUser(ctx context.Context, userID int64, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int64, error)
	// FindVehicleConflict returns the first reservation for the vehicle in
	// one of the blocking statuses whose inclusive date range intersects
	// [start, end], excluding excludeID (0 for none).
	FindVehicleConflict(ctx context.Context, vehicleID int64, start, end time.Time, blocking []domain.ReservationStatus, excludeID int64) (*domain.Reservation, error)
	// FindDriverConflict is the stricter per-driver check: confirmed
	// reservations only, any vehicle.
	FindDriverConflict(ctx context.Context, driverDocument string, start, end time.Time, excludeID int64) (*domain.Reservation, error)
	// ListEndedBefore returns confirmed reservations whose end date is
	// strictly before the given date. Used by the completion sweep.
	ListEndedBefore(ctx context.Context, date time.Time) ([]domain.Reservation, error)
	// ListStartingOn returns confirmed reservations starting on the given
	// date. Used by the reminder job.
	ListStartingOn(ctx context.Context, date time.Time) ([]domain.Reservation, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	ListByUser(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Payment, int64, error)
}

type CatalogRepository interface {
	GetRefundPolicy(ctx context.Context, id int64) (*domain.RefundPolicy, error)
	ListRefundPolicies(ctx context.Context) ([]domain.RefundPolicy, error)
	GetBranch(ctx context.Context, id int64) (*domain.Branch, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}
