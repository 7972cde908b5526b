package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carrental-backend/internal/domain"
)

type cardRepository struct {
	db dbtx
}

const cardColumns = `id, number, type, expiry, pin, balance_cents, COALESCE(holder_document, ''), created_on`

func (r *cardRepository) GetByNumber(ctx context.Context, number string) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE number = $1`
	return r.scanCard(r.db.QueryRowContext(ctx, query, number))
}

func (r *cardRepository) GetByNumberForUpdate(ctx context.Context, number string) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE number = $1 FOR UPDATE`
	return r.scanCard(r.db.QueryRowContext(ctx, query, number))
}

func (r *cardRepository) scanCard(row *sql.Row) (*domain.Card, error) {
	c := &domain.Card{}
	var cardType string
	err := row.Scan(&c.ID, &c.Number, &cardType, &c.Expiry, &c.PIN, &c.BalanceCents, &c.HolderDocument, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	c.Type = domain.CardType(cardType)
	return c, nil
}

// Debit decrements the balance only when it covers the amount; the guard
// lives in the UPDATE itself so two concurrent debits cannot both pass a
// stale balance check.
func (r *cardRepository) Debit(ctx context.Context, cardID int64, amountCents int64) error {
	query := `UPDATE cards SET balance_cents = balance_cents - $1 WHERE id = $2 AND balance_cents >= $1`
	res, err := r.db.ExecContext(ctx, query, amountCents, cardID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

func (r *cardRepository) Credit(ctx context.Context, cardID int64, amountCents int64) error {
	query := `UPDATE cards SET balance_cents = balance_cents + $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, amountCents, cardID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}
