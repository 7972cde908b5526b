package postgres

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
)

type paymentRepository struct {
	db dbtx
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (reservation_id, card_id, kind, amount_cents, reference, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	p.CreatedOn = now
	return r.db.QueryRowContext(ctx, query, p.ReservationID, p.CardID, string(p.Kind), p.AmountCents, p.Reference, now).Scan(&p.ID)
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Payment, int64, error) {
	var count int64
	countQuery := `SELECT count(*) FROM payments p JOIN reservations rs ON rs.id = p.reservation_id WHERE rs.user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT p.id, p.reservation_id, p.card_id, p.kind, p.amount_cents, p.reference, p.created_on
	          FROM payments p JOIN reservations rs ON rs.id = p.reservation_id
	          WHERE rs.user_id = $1
	          ORDER BY p.created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		var kind string
		if err := rows.Scan(&p.ID, &p.ReservationID, &p.CardID, &kind, &p.AmountCents, &p.Reference, &p.CreatedOn); err != nil {
			return nil, 0, err
		}
		p.Kind = domain.PaymentKind(kind)
		payments = append(payments, p)
	}
	return payments, count, rows.Err()
}
