package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carrental-backend/internal/domain"
)

type catalogRepository struct {
	db dbtx
}

func (r *catalogRepository) GetRefundPolicy(ctx context.Context, id int64) (*domain.RefundPolicy, error) {
	p := &domain.RefundPolicy{}
	query := `SELECT id, name, percentage, COALESCE(description, '') FROM refund_policies WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Percentage, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *catalogRepository) ListRefundPolicies(ctx context.Context) ([]domain.RefundPolicy, error) {
	query := `SELECT id, name, percentage, COALESCE(description, '') FROM refund_policies ORDER BY percentage DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []domain.RefundPolicy
	for rows.Next() {
		var p domain.RefundPolicy
		if err := rows.Scan(&p.ID, &p.Name, &p.Percentage, &p.Description); err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

func (r *catalogRepository) GetBranch(ctx context.Context, id int64) (*domain.Branch, error) {
	b := &domain.Branch{}
	query := `SELECT id, name, address, COALESCE(city, '') FROM branches WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Name, &b.Address, &b.City)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *catalogRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	query := `SELECT id, name, address, COALESCE(city, '') FROM branches ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []domain.Branch
	for rows.Next() {
		var b domain.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.City); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}
