package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carrental-backend/internal/domain"
)

type userRepository struct {
	db dbtx
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, name, password_hash, is_admin, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	u.CreatedOn = now
	u.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, u.Email, u.Name, u.PasswordHash, u.IsAdmin, now, now).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, email, name, password_hash, is_admin, created_on, updated_on FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, name, password_hash, is_admin, created_on, updated_on FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsAdmin, &u.CreatedOn, &u.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) CreateProfile(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (user_id, document, phone, birth_date) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, p.UserID, nullIfEmpty(p.Document), nullIfEmpty(p.Phone), p.BirthDate)
	return err
}

func (r *userRepository) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	p := &domain.Profile{}
	query := `SELECT user_id, COALESCE(document, ''), COALESCE(phone, ''), birth_date FROM profiles WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.Document, &p.Phone, &p.BirthDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, p *domain.Profile) error {
	query := `UPDATE profiles SET document=$1, phone=$2, birth_date=$3 WHERE user_id=$4`
	_, err := r.db.ExecContext(ctx, query, nullIfEmpty(p.Document), nullIfEmpty(p.Phone), p.BirthDate, p.UserID)
	return err
}
