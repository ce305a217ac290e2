package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"hoppon-server/internal/domain"
)

type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

var _ domain.ContactRepository = (*ContactRepo)(nil)

func (r *ContactRepo) ListContacts(ctx context.Context, userID int64) ([]*domain.ContactEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.username
		FROM users u
		JOIN contacts c ON u.id = c.contact_id
		WHERE c.user_id = $1
		ORDER BY u.username ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var res []*domain.ContactEntry
	for rows.Next() {
		e := &domain.ContactEntry{}
		if err := rows.Scan(&e.ID, &e.Username); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func (r *ContactRepo) AreContacts(ctx context.Context, userID, otherID int64) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM contacts
		WHERE (user_id = $1 AND contact_id = $2) OR (user_id = $2 AND contact_id = $1)
	`, userID, otherID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("are contacts: %w", err)
	}
	return true, nil
}

func (r *ContactRepo) HasPending(ctx context.Context, requesterID, targetID int64) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM pending_contacts WHERE user_id = $1 AND contact_id = $2
	`, requesterID, targetID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("has pending: %w", err)
	}
	return true, nil
}

func (r *ContactRepo) CreatePending(ctx context.Context, requesterID, targetID int64) error {
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO pending_contacts (user_id, contact_id) VALUES ($1, $2)
	`, requesterID, targetID); err != nil {
		return fmt.Errorf("insert pending contact: %w", err)
	}
	return nil
}

func (r *ContactRepo) ListPendingFor(ctx context.Context, targetID int64) ([]*domain.PendingRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.username, p.created_at
		FROM pending_contacts p
		JOIN users u ON p.user_id = u.id
		WHERE p.contact_id = $1
		ORDER BY p.created_at DESC
	`, targetID)
	if err != nil {
		return nil, fmt.Errorf("list pending contacts: %w", err)
	}
	defer rows.Close()

	var res []*domain.PendingRequest
	for rows.Next() {
		p := &domain.PendingRequest{}
		if err := rows.Scan(&p.ID, &p.Username, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending contact: %w", err)
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *ContactRepo) Accept(ctx context.Context, requesterID, accepterID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `
		SELECT 1 FROM pending_contacts WHERE user_id = $1 AND contact_id = $2
	`, requesterID, accepterID).Scan(&exists)
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check pending: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO contacts (user_id, contact_id) VALUES ($1, $2), ($2, $1)
	`, requesterID, accepterID); err != nil {
		return fmt.Errorf("insert contacts: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM pending_contacts WHERE user_id = $1 AND contact_id = $2
	`, requesterID, accepterID); err != nil {
		return fmt.Errorf("delete pending: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *ContactRepo) DeletePending(ctx context.Context, requesterID, targetID int64) error {
	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM pending_contacts WHERE user_id = $1 AND contact_id = $2
	`, requesterID, targetID); err != nil {
		return fmt.Errorf("delete pending contact: %w", err)
	}
	return nil
}
