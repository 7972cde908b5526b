package jobs

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

// CompleteFinishedReservations moves confirmed reservations past their end
// date to COMPLETED and returns their vehicles to service.
func (jr *JobRunner) CompleteFinishedReservations() {
	jr.runWithRecovery("CompleteFinishedReservations", func() {
		ctx := context.Background()
		today := time.Now().UTC().Truncate(24 * time.Hour)

		reservations, err := jr.store.Reservations().ListEndedBefore(ctx, today)
		if err != nil {
			logger.Error("Failed to list finished reservations", "error", err)
			return
		}

		completed := 0
		for _, reservation := range reservations {
			err := jr.store.WithTx(ctx, func(tx repository.Store) error {
				reservation.Status = domain.ReservationStatusCompleted
				if err := tx.Reservations().Update(ctx, &reservation); err != nil {
					return err
				}
				released, err := tx.Vehicles().UpdateStatus(ctx, reservation.VehicleID,
					domain.VehicleStatusReserved, domain.VehicleStatusAvailable)
				if err != nil {
					return err
				}
				if !released {
					// Vehicle was moved to maintenance or already freed.
					logger.Debug("Vehicle not released on completion",
						"vehicle_id", reservation.VehicleID,
						"reservation_id", reservation.ID)
				}
				return nil
			})
			if err != nil {
				logger.Error("Failed to complete reservation",
					"reservation_id", reservation.ID, "error", err)
				continue
			}
			completed++
		}

		logger.Info("Completed finished reservations", "count", completed)
	})
}

// SendReservationReminders emails every renter whose reservation starts
// tomorrow.
func (jr *JobRunner) SendReservationReminders() {
	jr.runWithRecovery("SendReservationReminders", func() {
		ctx := context.Background()
		tomorrow := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, 1)

		reservations, err := jr.store.Reservations().ListStartingOn(ctx, tomorrow)
		if err != nil {
			logger.Error("Failed to list upcoming reservations", "error", err)
			return
		}

		sent := 0
		for _, reservation := range reservations {
			user, err := jr.store.Users().GetByID(ctx, reservation.UserID)
			if err != nil {
				logger.Error("Failed to load user for reminder",
					"reservation_id", reservation.ID, "error", err)
				continue
			}
			vehicle, err := jr.store.Vehicles().GetByID(ctx, reservation.VehicleID)
			if err != nil {
				logger.Error("Failed to load vehicle for reminder",
					"reservation_id", reservation.ID, "error", err)
				continue
			}
			label := vehicle.Brand + " " + vehicle.Model + " (" + vehicle.LicensePlate + ")"
			if err := jr.email.SendReservationReminder(ctx, user.Email, user.Name, label,
				reservation.StartDate.Format("2006-01-02")); err != nil {
				logger.Error("Failed to send reservation reminder",
					"reservation_id", reservation.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent reservation reminders", "count", sent)
	})
}
