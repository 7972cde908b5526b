package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

// CancelCutoff is how long before the start date a renter may still cancel.
const CancelCutoff = 24 * time.Hour

type reservationService struct {
	store    repository.Store
	emailSvc EmailService
	// blocking is the reservation-status set that holds a vehicle during
	// the overlap check. Injected so call sites stay in agreement; see
	// domain.DefaultBlockingStatuses.
	blocking []domain.ReservationStatus
	now      func() time.Time
}

func NewReservationService(store repository.Store, emailSvc EmailService, blocking []domain.ReservationStatus) ReservationService {
	if len(blocking) == 0 {
		blocking = domain.DefaultBlockingStatuses
	}
	return &reservationService{
		store:    store,
		emailSvc: emailSvc,
		blocking: blocking,
		now:      time.Now,
	}
}

// Create admits a new reservation. All checks and all four effects (debit,
// reservation row, payment row, vehicle transition) run in one serializable
// unit of work: if the vehicle cannot be marked reserved after the debit,
// the whole unit rolls back and the card balance is untouched.
func (s *reservationService) Create(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error) {
	start, end, err := s.parseWindow(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	if !isNumeric(input.DriverDocument) {
		return nil, domain.ErrInvalidDocument
	}
	expiry, err := utils.ParseDate(input.CardExpiry)
	if err != nil {
		return nil, err
	}

	var reservation *domain.Reservation
	var vehicle *domain.Vehicle
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		vehicle, err = tx.Vehicles().GetByIDForUpdate(ctx, input.VehicleID)
		if err != nil {
			return err
		}
		if !vehicle.Available() {
			return domain.ErrVehicleNotAvailable
		}

		conflict, err := tx.Reservations().FindVehicleConflict(ctx, vehicle.ID, start, end, s.blocking, 0)
		if err != nil {
			return err
		}
		if conflict != nil {
			return domain.ErrVehicleConflict
		}

		conflict, err = tx.Reservations().FindDriverConflict(ctx, input.DriverDocument, start, end, 0)
		if err != nil {
			return err
		}
		if conflict != nil {
			return domain.ErrDriverConflict
		}

		card, err := tx.Cards().GetByNumberForUpdate(ctx, input.CardNumber)
		if err != nil {
			return err
		}
		if err := card.Validate(input.CardPIN, expiry, input.HolderDocument, s.now()); err != nil {
			return err
		}

		total := utils.TotalCostCents(start, end, vehicle.DailyPriceCents)
		if err := tx.Cards().Debit(ctx, card.ID, total); err != nil {
			return err
		}

		reservation = &domain.Reservation{
			UserID:         input.UserID,
			VehicleID:      vehicle.ID,
			CardID:         &card.ID,
			StartDate:      start,
			EndDate:        end,
			Status:         domain.ReservationStatusConfirmed,
			DriverDocument: input.DriverDocument,
			TotalCostCents: total,
		}
		if err := tx.Reservations().Create(ctx, reservation); err != nil {
			return err
		}

		charge := &domain.Payment{
			ReservationID: reservation.ID,
			CardID:        card.ID,
			Kind:          domain.PaymentKindCharge,
			AmountCents:   total,
			Reference:     uuid.NewString(),
		}
		if err := tx.Payments().Create(ctx, charge); err != nil {
			return err
		}

		ok, err := tx.Vehicles().UpdateStatus(ctx, vehicle.ID, domain.VehicleStatusAvailable, domain.VehicleStatusReserved)
		if err != nil {
			return err
		}
		if !ok {
			// Vehicle state changed underneath us. Abort the unit of
			// work; the debit and the reservation row go with it.
			return domain.ErrVehicleNotAvailable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyConfirmation(ctx, reservation, vehicle)
	return reservation, nil
}

// Cancel is the renter-facing cancellation: ownership and the 24-hour cutoff
// apply. Releasing the vehicle is best-effort; the cancellation commits even
// when the release guard fails.
func (s *reservationService) Cancel(ctx context.Context, userID, reservationID int64, reason string) (*CancelResult, error) {
	reservation, err := s.store.Reservations().GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	if !reservation.CancellableBy(s.now(), CancelCutoff) {
		return nil, domain.ErrCancelCutoff
	}
	if reason == "" {
		reason = "Cancelled by user"
	}
	return s.cancel(ctx, reservation, domain.ReservationStatusCancelled, reason)
}

// AdminCancel skips the cutoff but requires an explicit reason. The admin
// capability itself is enforced at the transport boundary.
func (s *reservationService) AdminCancel(ctx context.Context, adminID, reservationID int64, reason string) (*CancelResult, error) {
	if reason == "" {
		return nil, domain.ErrReasonRequired
	}
	reservation, err := s.store.Reservations().GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	logger.Info("Admin cancelling reservation", "admin_id", adminID, "reservation_id", reservationID)
	return s.cancel(ctx, reservation, domain.ReservationStatusCancelledByAdmin, reason)
}

func (s *reservationService) cancel(ctx context.Context, reservation *domain.Reservation, status domain.ReservationStatus, reason string) (*CancelResult, error) {
	if reservation.Status != domain.ReservationStatusConfirmed {
		return nil, domain.ErrNotCancellable
	}

	result := &CancelResult{Reservation: reservation}
	var vehicle *domain.Vehicle
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		vehicle, err = tx.Vehicles().GetByIDForUpdate(ctx, reservation.VehicleID)
		if err != nil {
			return err
		}

		reservation.Status = status
		reservation.CancelReason = reason
		if err := tx.Reservations().Update(ctx, reservation); err != nil {
			return err
		}

		var policy *domain.RefundPolicy
		if vehicle.RefundPolicyID != nil {
			policy, err = tx.Catalog().GetRefundPolicy(ctx, *vehicle.RefundPolicyID)
			if err != nil {
				return err
			}
		}
		result.RefundCents = utils.RefundCents(reservation.TotalCostCents, policy)

		if result.RefundCents > 0 && reservation.CardID != nil {
			if err := tx.Cards().Credit(ctx, *reservation.CardID, result.RefundCents); err != nil {
				return err
			}
			refund := &domain.Payment{
				ReservationID: reservation.ID,
				CardID:        *reservation.CardID,
				Kind:          domain.PaymentKindRefund,
				AmountCents:   result.RefundCents,
				Reference:     uuid.NewString(),
			}
			if err := tx.Payments().Create(ctx, refund); err != nil {
				return err
			}
		}

		released, err := tx.Vehicles().UpdateStatus(ctx, vehicle.ID, domain.VehicleStatusReserved, domain.VehicleStatusAvailable)
		if err != nil {
			return err
		}
		if !released {
			// The reservation is authoritatively cancelled either way;
			// surface the stale vehicle state as a warning.
			logger.Warn("Could not release vehicle on cancellation",
				"vehicle_id", vehicle.ID, "reservation_id", reservation.ID,
				"vehicle_status", vehicle.Status)
		}
		result.VehicleReleased = released
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyCancellation(ctx, reservation, vehicle, reason, result.RefundCents)
	return result, nil
}

func (s *reservationService) Get(ctx context.Context, userID, reservationID int64) (*domain.Reservation, error) {
	reservation, err := s.store.Reservations().GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return reservation, nil
}

func (s *reservationService) List(ctx context.Context, userID int64, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int64, error) {
	return s.store.Reservations().ListByUser(ctx, userID, status, page, pageSize)
}

// Quote returns the total cost for a window without admitting anything.
func (s *reservationService) Quote(ctx context.Context, vehicleID int64, startDate, endDate string) (int64, error) {
	start, end, err := s.parseWindow(startDate, endDate)
	if err != nil {
		return 0, err
	}
	vehicle, err := s.store.Vehicles().GetByID(ctx, vehicleID)
	if err != nil {
		return 0, err
	}
	return utils.TotalCostCents(start, end, vehicle.DailyPriceCents), nil
}

func (s *reservationService) parseWindow(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	today := truncateToDate(s.now())
	if start.Before(today) {
		return time.Time{}, time.Time{}, domain.ErrStartDateInPast
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, domain.ErrEndBeforeStart
	}
	return start, end, nil
}

func (s *reservationService) notifyConfirmation(ctx context.Context, reservation *domain.Reservation, vehicle *domain.Vehicle) {
	user, err := s.store.Users().GetByID(ctx, reservation.UserID)
	if err != nil {
		logger.Warn("Skipping confirmation email", "reservation_id", reservation.ID, "error", err)
		return
	}
	_ = s.emailSvc.SendReservationConfirmation(ctx, user.Email, user.Name,
		vehicleLabel(vehicle),
		reservation.StartDate.Format("2006-01-02"),
		reservation.EndDate.Format("2006-01-02"),
		reservation.TotalCostCents)
}

func (s *reservationService) notifyCancellation(ctx context.Context, reservation *domain.Reservation, vehicle *domain.Vehicle, reason string, refundCents int64) {
	user, err := s.store.Users().GetByID(ctx, reservation.UserID)
	if err != nil {
		logger.Warn("Skipping cancellation email", "reservation_id", reservation.ID, "error", err)
		return
	}
	_ = s.emailSvc.SendCancellationNotification(ctx, user.Email, user.Name,
		vehicleLabel(vehicle), reason, refundCents)
}

func vehicleLabel(v *domain.Vehicle) string {
	return v.Brand + " " + v.Model + " (" + v.LicensePlate + ")"
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
