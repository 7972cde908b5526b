package service

import (
	"context"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

// CreateReservationInput carries the raw form fields of a reservation
// request. Dates and the expiry are yyyy-mm-dd strings; validation happens
// in the engine so the invariants cannot be bypassed by any entry point.
type CreateReservationInput struct {
	UserID         int64
	VehicleID      int64
	StartDate      string
	EndDate        string
	DriverDocument string
	CardNumber     string
	CardPIN        string
	CardExpiry     string
	HolderDocument string
}

// CancelResult reports the outcome of a cancellation. VehicleReleased is
// false when the reservation was cancelled but the vehicle's state could not
// be updated; the cancellation itself still stands.
type CancelResult struct {
	Reservation     *domain.Reservation
	RefundCents     int64
	VehicleReleased bool
}

type ReservationService interface {
	Create(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	Cancel(ctx context.Context, userID, reservationID int64, reason string) (*CancelResult, error)
	AdminCancel(ctx context.Context, adminID, reservationID int64, reason string) (*CancelResult, error)
	Get(ctx context.Context, userID, reservationID int64) (*domain.Reservation, error)
	List(ctx context.Context, userID int64, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int64, error)
	Quote(ctx context.Context, vehicleID int64, startDate, endDate string) (int64, error)
}

type VehicleService interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	Get(ctx context.Context, id int64) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter repository.VehicleListFilter, page, pageSize int32) ([]domain.Vehicle, int64, error)
	SearchAvailable(ctx context.Context, startDate, endDate string, page, pageSize int32) ([]domain.Vehicle, int64, error)
	SendToMaintenance(ctx context.Context, id int64) (*domain.Vehicle, error)
	ReturnToService(ctx context.Context, id int64) (*domain.Vehicle, error)
}

type AuthService interface {
	Signup(ctx context.Context, name, email, password, document, phone, birthDate string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*domain.User, *domain.Profile, error)
	UpdateProfile(ctx context.Context, profile *domain.Profile) error
}

type PaymentService interface {
	ListByUser(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Payment, int64, error)
}

type CatalogService interface {
	ListRefundPolicies(ctx context.Context) ([]domain.RefundPolicy, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}

// EmailService sends fire-and-forget notifications. Failures never roll back
// a committed reservation or cancellation.
type EmailService interface {
	SendReservationConfirmation(ctx context.Context, to, name, vehicle, startDate, endDate string, totalCents int64) error
	SendCancellationNotification(ctx context.Context, to, name, vehicle, reason string, refundCents int64) error
	SendReservationReminder(ctx context.Context, to, name, vehicle, startDate string) error
}
