package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open opens a PostgreSQL database using the pgx stdlib driver.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Migrate runs idempotent DDL migrations for the chat schema on PostgreSQL.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id              BIGSERIAL    PRIMARY KEY,
			username        VARCHAR(50)  UNIQUE NOT NULL,
			email           VARCHAR(100) UNIQUE,
			hashed_password VARCHAR(255) NOT NULL,
			avatar_data     BYTEA,
			created_at      TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS guests (
			user_id BIGINT PRIMARY KEY REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS conversations (
			id         BIGSERIAL   PRIMARY KEY,
			is_group   BOOLEAN     NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS conversation_participants (
			user_id         BIGINT      NOT NULL REFERENCES users(id),
			conversation_id BIGINT      NOT NULL REFERENCES conversations(id),
			joined_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, conversation_id)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id              BIGSERIAL   PRIMARY KEY,
			conversation_id BIGINT      NOT NULL REFERENCES conversations(id),
			sender_id       BIGINT      NOT NULL REFERENCES users(id),
			content         TEXT        NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS contacts (
			user_id    BIGINT      NOT NULL REFERENCES users(id),
			contact_id BIGINT      NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, contact_id)
		)`,
		`CREATE TABLE IF NOT EXISTS pending_contacts (
			user_id    BIGINT      NOT NULL REFERENCES users(id),
			contact_id BIGINT      NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, contact_id)
		)`,
		`CREATE TABLE IF NOT EXISTS verification_codes (
			email         VARCHAR(100) PRIMARY KEY,
			code          VARCHAR(6)   NOT NULL,
			username      VARCHAR(50)  NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			expires_at    TIMESTAMPTZ  NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)`,
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_updated_at ON conversations(updated_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_conv_participants_user ON conversation_participants(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_conv_participants_conv ON conversation_participants(conversation_id)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conv_created ON messages(conversation_id, created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_user ON contacts(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_pending_contacts_target ON pending_contacts(contact_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
