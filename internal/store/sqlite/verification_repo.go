package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hoppon-server/internal/domain"
)

type VerificationRepo struct {
	db *sql.DB
}

func NewVerificationRepo(db *sql.DB) *VerificationRepo {
	return &VerificationRepo{db: db}
}

var _ domain.VerificationRepository = (*VerificationRepo)(nil)

func (r *VerificationRepo) Upsert(ctx context.Context, v *domain.VerificationCode) error {
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO verification_codes (email, code, username, password_hash, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			code = excluded.code,
			username = excluded.username,
			password_hash = excluded.password_hash,
			expires_at = excluded.expires_at
	`, v.Email, v.Code, v.Username, v.PasswordHash, v.ExpiresAt); err != nil {
		return fmt.Errorf("upsert verification code: %w", err)
	}
	return nil
}

func (r *VerificationRepo) Get(ctx context.Context, email string, now time.Time) (*domain.VerificationCode, error) {
	v := &domain.VerificationCode{}
	err := r.db.QueryRowContext(ctx, `
		SELECT email, code, username, password_hash, expires_at
		FROM verification_codes
		WHERE email = ? AND expires_at > ?
	`, email, now).Scan(&v.Email, &v.Code, &v.Username, &v.PasswordHash, &v.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get verification code: %w", err)
	}
	return v, nil
}

func (r *VerificationRepo) Delete(ctx context.Context, email string) error {
	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM verification_codes WHERE email = ?
	`, email); err != nil {
		return fmt.Errorf("delete verification code: %w", err)
	}
	return nil
}
