package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"hoppon-server/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

var _ domain.UserRepository = (*UserRepo)(nil)

const userColumns = `
	u.id, u.username, u.email, u.hashed_password, u.created_at,
	EXISTS(SELECT 1 FROM guests g WHERE g.user_id = u.id)
`

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, email, hashed_password, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	`, u.Username, u.Email, u.HashedPassword)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	u.ID = id
	return nil
}

func (r *UserRepo) CreateGuest(ctx context.Context, u *domain.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO users (username, email, hashed_password, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	`, u.Username, u.Email, u.HashedPassword)
	if err != nil {
		return fmt.Errorf("insert guest user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO guests (user_id) VALUES (?)`, id); err != nil {
		return fmt.Errorf("insert guest row: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	u.ID = id
	u.IsGuest = true
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanUser(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = ?`, id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, `SELECT `+userColumns+` FROM users u WHERE u.username = ?`, username)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, `SELECT `+userColumns+` FROM users u WHERE u.email = ?`, email)
}

func (r *UserRepo) UpdateAvatar(ctx context.Context, id int64, data []byte) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET avatar_data = ? WHERE id = ?`, data, id); err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	return nil
}

func (r *UserRepo) GetAvatar(ctx context.Context, id int64) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT avatar_data FROM users WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get avatar: %w", err)
	}
	return data, nil
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	u := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.HashedPassword,
		&u.CreatedAt,
		&u.IsGuest,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}
