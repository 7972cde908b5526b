package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockUserRepo) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockUserRepo) UpdateProfile(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockVehicleRepo) List(ctx context.Context, filter repository.VehicleListFilter, page, pageSize int32) ([]domain.Vehicle, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int64), args.Error(2)
}
func (m *MockVehicleRepo) SearchAvailable(ctx context.Context, start, end time.Time, blocking []domain.ReservationStatus, page, pageSize int32) ([]domain.Vehicle, int64, error) {
	args := m.Called(ctx, start, end, blocking, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int64), args.Error(2)
}
func (m *MockVehicleRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.VehicleStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

// MockCardRepo
type MockCardRepo struct {
	mock.Mock
}

func (m *MockCardRepo) GetByNumber(ctx context.Context, number string) (*domain.Card, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}
func (m *MockCardRepo) GetByNumberForUpdate(ctx context.Context, number string) (*domain.Card, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}
func (m *MockCardRepo) Debit(ctx context.Context, cardID int64, amountCents int64) error {
	args := m.Called(ctx, cardID, amountCents)
	return args.Error(0)
}
func (m *MockCardRepo) Credit(ctx context.Context, cardID int64, amountCents int64) error {
	args := m.Called(ctx, cardID, amountCents)
	return args.Error(0)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) Update(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepo) ListByUser(ctx context.Context, userID int64, status domain.ReservationStatus, page, pageSize int32) ([]domain.Reservation, int64, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int64), args.Error(2)
}
func (m *MockReservationRepo) FindVehicleConflict(ctx context.Context, vehicleID int64, start, end time.Time, blocking []domain.ReservationStatus, excludeID int64) (*domain.Reservation, error) {
	args := m.Called(ctx, vehicleID, start, end, blocking, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) FindDriverConflict(ctx context.Context, driverDocument string, start, end time.Time, excludeID int64) (*domain.Reservation, error) {
	args := m.Called(ctx, driverDocument, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListEndedBefore(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) ListStartingOn(ctx context.Context, date time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByUser(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Payment, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Payment), args.Get(1).(int64), args.Error(2)
}

// MockCatalogRepo
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) GetRefundPolicy(ctx context.Context, id int64) (*domain.RefundPolicy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefundPolicy), args.Error(1)
}
func (m *MockCatalogRepo) ListRefundPolicies(ctx context.Context) ([]domain.RefundPolicy, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RefundPolicy), args.Error(1)
}
func (m *MockCatalogRepo) GetBranch(ctx context.Context, id int64) (*domain.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}
func (m *MockCatalogRepo) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Branch), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReservationConfirmation(ctx context.Context, to, name, vehicle, startDate, endDate string, totalCents int64) error {
	args := m.Called(ctx, to, name, vehicle, startDate, endDate, totalCents)
	return args.Error(0)
}
func (m *MockEmailService) SendCancellationNotification(ctx context.Context, to, name, vehicle, reason string, refundCents int64) error {
	args := m.Called(ctx, to, name, vehicle, reason, refundCents)
	return args.Error(0)
}
func (m *MockEmailService) SendReservationReminder(ctx context.Context, to, name, vehicle, startDate string) error {
	args := m.Called(ctx, to, name, vehicle, startDate)
	return args.Error(0)
}

// mockStore bundles the repository mocks behind the Store interface. WithTx
// runs the callback against the same store so expectations set on the mocks
// cover transactional calls too.
type mockStore struct {
	users        *MockUserRepo
	vehicles     *MockVehicleRepo
	cards        *MockCardRepo
	reservations *MockReservationRepo
	payments     *MockPaymentRepo
	catalog      *MockCatalogRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		users:        new(MockUserRepo),
		vehicles:     new(MockVehicleRepo),
		cards:        new(MockCardRepo),
		reservations: new(MockReservationRepo),
		payments:     new(MockPaymentRepo),
		catalog:      new(MockCatalogRepo),
	}
}

func (s *mockStore) Users() repository.UserRepository               { return s.users }
func (s *mockStore) Vehicles() repository.VehicleRepository         { return s.vehicles }
func (s *mockStore) Cards() repository.CardRepository               { return s.cards }
func (s *mockStore) Reservations() repository.ReservationRepository { return s.reservations }
func (s *mockStore) Payments() repository.PaymentRepository         { return s.payments }
func (s *mockStore) Catalog() repository.CatalogRepository          { return s.catalog }

func (s *mockStore) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}
