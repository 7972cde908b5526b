package service

import (
	"context"
	"errors"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

type vehicleService struct {
	store    repository.Store
	blocking []domain.ReservationStatus
}

func NewVehicleService(store repository.Store, blocking []domain.ReservationStatus) VehicleService {
	if len(blocking) == 0 {
		blocking = domain.DefaultBlockingStatuses
	}
	return &vehicleService{store: store, blocking: blocking}
}

func (s *vehicleService) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	if vehicle.Status == "" {
		vehicle.Status = domain.VehicleStatusAvailable
	}
	existing, err := s.store.Vehicles().GetByPlate(ctx, vehicle.LicensePlate)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if existing != nil {
		return domain.ErrPlateTaken
	}
	if err := s.store.Vehicles().Create(ctx, vehicle); err != nil {
		return err
	}
	logger.Info("Vehicle created", "vehicle_id", vehicle.ID, "license_plate", vehicle.LicensePlate)
	return nil
}

func (s *vehicleService) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.store.Vehicles().GetByID(ctx, id)
}

func (s *vehicleService) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	return s.store.Vehicles().Update(ctx, vehicle)
}

// Delete refuses to remove a vehicle that still has confirmed or completed
// reservations attached; the repository enforces the guard atomically.
func (s *vehicleService) Delete(ctx context.Context, id int64) error {
	return s.store.Vehicles().Delete(ctx, id)
}

func (s *vehicleService) List(ctx context.Context, filter repository.VehicleListFilter, page, pageSize int32) ([]domain.Vehicle, int64, error) {
	return s.store.Vehicles().List(ctx, filter, page, pageSize)
}

// SearchAvailable returns vehicles free for the whole window. A vehicle with
// any blocking reservation touching the window, endpoints included, is out.
func (s *vehicleService) SearchAvailable(ctx context.Context, startDate, endDate string, page, pageSize int32) ([]domain.Vehicle, int64, error) {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return nil, 0, err
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return nil, 0, err
	}
	if end.Before(start) {
		return nil, 0, domain.ErrEndBeforeStart
	}
	return s.store.Vehicles().SearchAvailable(ctx, start, end, s.blocking, page, pageSize)
}

// SendToMaintenance pulls an available vehicle out of service.
func (s *vehicleService) SendToMaintenance(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.transition(ctx, id, func(v *domain.Vehicle) bool { return v.SendToMaintenance() })
}

// ReturnToService brings a vehicle back from maintenance or releases a
// reserved one.
func (s *vehicleService) ReturnToService(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.transition(ctx, id, func(v *domain.Vehicle) bool { return v.Release() })
}

func (s *vehicleService) transition(ctx context.Context, id int64, apply func(*domain.Vehicle) bool) (*domain.Vehicle, error) {
	var vehicle *domain.Vehicle
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		vehicle, err = tx.Vehicles().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		from := vehicle.Status
		if !apply(vehicle) {
			return domain.ErrInvalidTransition
		}
		ok, err := tx.Vehicles().UpdateStatus(ctx, id, from, vehicle.Status)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}
