package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"hoppon-server/internal/domain"
)

type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

var _ domain.MessageRepository = (*MessageRepo)(nil)

func (r *MessageRepo) Create(ctx context.Context, m *domain.Message) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (conversation_id, sender_id, content, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	`, m.ConversationID, m.SenderID, m.Content)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	m.ID = id
	return nil
}

func (r *MessageRepo) GetRecord(ctx context.Context, id int64) (*domain.MessageRecord, error) {
	m := &domain.MessageRecord{}
	err := r.db.QueryRowContext(ctx, `
		SELECT m.id, m.conversation_id, m.sender_id, u.username, m.content, m.created_at
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.id = ?
	`, id).Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.SenderName, &m.Content, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get message record: %w", err)
	}
	return m, nil
}

func (r *MessageRepo) ListRecordsPage(ctx context.Context, conversationID int64, limit, offset int) ([]*domain.MessageRecord, error) {
	// Newest first; created_at has second resolution, so ties break on id to
	// keep the order deterministic.
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.conversation_id, m.sender_id, u.username, m.content, m.created_at
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.conversation_id = ?
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT ? OFFSET ?
	`, conversationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var res []*domain.MessageRecord
	for rows.Next() {
		m := &domain.MessageRecord{}
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.SenderName, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		res = append(res, m)
	}
	return res, rows.Err()
}
