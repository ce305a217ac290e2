package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"hoppon-server/internal/domain"
)

type ConversationRepo struct {
	db *sql.DB
}

func NewConversationRepo(db *sql.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

var _ domain.ConversationRepository = (*ConversationRepo)(nil)

func (r *ConversationRepo) Create(ctx context.Context, c *domain.Conversation, participantIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO conversations (is_group) VALUES ($1) RETURNING id
	`, c.IsGroup).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}

	for _, uid := range participantIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO conversation_participants (user_id, conversation_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, uid, c.ID); err != nil {
			return fmt.Errorf("insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *ConversationRepo) GetByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	c := &domain.Conversation{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, is_group, created_at, updated_at
		FROM conversations
		WHERE id = $1
	`, id).Scan(&c.ID, &c.IsGroup, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return c, nil
}

func (r *ConversationRepo) ListForUser(ctx context.Context, userID int64) ([]*domain.ConversationSummary, error) {
	query := `
		SELECT c.id, c.is_group, c.updated_at, STRING_AGG(u.username, ',') AS participants
		FROM conversations c
		JOIN conversation_participants cp ON cp.conversation_id = c.id
		JOIN users u ON u.id = cp.user_id
		WHERE c.id IN (
			SELECT conversation_id FROM conversation_participants WHERE user_id = $1
		)
		GROUP BY c.id
		ORDER BY c.updated_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var res []*domain.ConversationSummary
	for rows.Next() {
		c := &domain.ConversationSummary{}
		if err := rows.Scan(&c.ID, &c.IsGroup, &c.UpdatedAt, &c.Participants); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *ConversationRepo) Touch(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE conversations SET updated_at = NOW() WHERE id = $1
	`, id); err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}
	return nil
}
