package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"carrental-backend/internal/repository"

	_ "github.com/lib/pq"
)

// dbtx is the subset of *sql.DB and *sql.Tx the repositories use, so the
// same implementations run standalone or inside a unit of work.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dbx dbtx

	users        repository.UserRepository
	vehicles     repository.VehicleRepository
	cards        repository.CardRepository
	reservations repository.ReservationRepository
	payments     repository.PaymentRepository
	catalog      repository.CatalogRepository
}

func NewStore(db *sql.DB) *Store {
	return newStore(db, db)
}

func newStore(db *sql.DB, dbx dbtx) *Store {
	return &Store{
		db:           db,
		dbx:          dbx,
		users:        &userRepository{db: dbx},
		vehicles:     &vehicleRepository{db: dbx},
		cards:        &cardRepository{db: dbx},
		reservations: &reservationRepository{db: dbx},
		payments:     &paymentRepository{db: dbx},
		catalog:      &catalogRepository{db: dbx},
	}
}

func (s *Store) Users() repository.UserRepository               { return s.users }
func (s *Store) Vehicles() repository.VehicleRepository         { return s.vehicles }
func (s *Store) Cards() repository.CardRepository               { return s.cards }
func (s *Store) Reservations() repository.ReservationRepository { return s.reservations }
func (s *Store) Payments() repository.PaymentRepository         { return s.payments }
func (s *Store) Catalog() repository.CatalogRepository          { return s.catalog }

// WithTx runs fn against a Store bound to one serializable transaction.
// Serializable isolation plus the FOR UPDATE row locks on vehicle and card
// rows close the read-then-write window between the overlap/balance checks
// and the mutations they guard.
func (s *Store) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.db == nil {
		// Already inside a transaction; reuse it.
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(newStore(nil, tx)); err != nil {
		return err
	}
	return tx.Commit()
}
