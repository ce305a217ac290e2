package service

import (
	"context"
	"fmt"

	"hoppon-server/internal/avatar"
	"hoppon-server/internal/domain"
)

// UserService provides user-related operations around the core.
type UserService struct {
	users      domain.UserRepository
	avatarSize int
}

func NewUserService(users domain.UserRepository, avatarSize int) *UserService {
	if avatarSize <= 0 {
		avatarSize = 256
	}
	return &UserService{
		users:      users,
		avatarSize: avatarSize,
	}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateAvatar normalizes the uploaded data URL to a square PNG and stores it
// on the user row.
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, dataURL string) error {
	raw, err := avatar.ParseDataURL(dataURL)
	if err != nil {
		return err
	}
	normalized, err := avatar.Normalize(raw, s.avatarSize)
	if err != nil {
		return err
	}
	if err := s.users.UpdateAvatar(ctx, userID, normalized); err != nil {
		return fmt.Errorf("store avatar: %w", err)
	}
	return nil
}

// Avatar returns the stored PNG, or ErrNotFound when the user has none.
func (s *UserService) Avatar(ctx context.Context, userID int64) ([]byte, error) {
	data, err := s.users.GetAvatar(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, domain.ErrNotFound
	}
	return data, nil
}
