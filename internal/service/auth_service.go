package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"hoppon-server/internal/domain"
	"hoppon-server/internal/mail"
	"hoppon-server/internal/security"
)

const verificationTTL = 10 * time.Minute

// AuthService handles registration, e-mail verification, guest accounts, and
// login. It is the session issuer: every path that succeeds ends in a signed
// token the real-time channel later trusts.
type AuthService struct {
	users         domain.UserRepository
	verifications domain.VerificationRepository
	tokens        *security.TokenService
	hash          *security.PasswordHasher
	mailer        mail.Mailer
}

func NewAuthService(
	users domain.UserRepository,
	verifications domain.VerificationRepository,
	tokens *security.TokenService,
	hash *security.PasswordHasher,
	mailer mail.Mailer,
) *AuthService {
	return &AuthService{
		users:         users,
		verifications: verifications,
		tokens:        tokens,
		hash:          hash,
		mailer:        mailer,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type TokenResponse struct {
	AccessToken string       `json:"token"`
	Username    string       `json:"username"`
	User        *domain.User `json:"-"`
}

// Register stages a new account and mails a verification code. No users row
// exists until the code is confirmed.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}

	if existing, err := s.users.GetByUsername(ctx, in.Username); err != nil {
		return fmt.Errorf("check username: %w", err)
	} else if existing != nil {
		return fmt.Errorf("%w: username or email already in use", domain.ErrConflict)
	}
	if existing, err := s.users.GetByEmail(ctx, in.Email); err != nil {
		return fmt.Errorf("check email: %w", err)
	} else if existing != nil {
		return fmt.Errorf("%w: username or email already in use", domain.ErrConflict)
	}

	hashed, err := s.hash.Hash(in.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	code := fmt.Sprintf("%06d", 100000+rand.IntN(900000))
	if err := s.verifications.Upsert(ctx, &domain.VerificationCode{
		Email:        in.Email,
		Code:         code,
		Username:     in.Username,
		PasswordHash: hashed,
		ExpiresAt:    time.Now().Add(verificationTTL),
	}); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}

	if err := s.mailer.SendVerificationCode(in.Email, code); err != nil {
		return err
	}
	return nil
}

// Verify confirms a staged registration, creates the user, and logs them in.
func (s *AuthService) Verify(ctx context.Context, email, code string) (*TokenResponse, error) {
	pending, err := s.verifications.Get(ctx, email, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid or expired verification code", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("get verification code: %w", err)
	}
	if pending.Code != code {
		return nil, fmt.Errorf("%w: invalid verification code", domain.ErrInvalidInput)
	}

	user := &domain.User{
		Username:       pending.Username,
		Email:          &email,
		HashedPassword: pending.PasswordHash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if err := s.verifications.Delete(ctx, email); err != nil {
		return nil, fmt.Errorf("delete verification code: %w", err)
	}

	return s.issueToken(user)
}

// Login checks credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: incorrect username or password", domain.ErrUnauthenticated)
	}
	if err := s.hash.Verify(in.Password, user.HashedPassword); err != nil {
		return nil, fmt.Errorf("%w: incorrect username or password", domain.ErrUnauthenticated)
	}
	return s.issueToken(user)
}

// CreateGuest creates a throwaway account with a generated username and
// password and logs it in immediately.
func (s *AuthService) CreateGuest(ctx context.Context) (*TokenResponse, error) {
	var username string
	for {
		username = fmt.Sprintf("guest_%06d", 100000+rand.IntN(900000))
		existing, err := s.users.GetByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("check guest username: %w", err)
		}
		if existing == nil {
			break
		}
	}

	hashed, err := s.hash.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("hash guest password: %w", err)
	}

	email := username + "@guest.local"
	user := &domain.User{
		Username:       username,
		Email:          &email,
		HashedPassword: hashed,
		IsGuest:        true,
	}
	if err := s.users.CreateGuest(ctx, user); err != nil {
		return nil, fmt.Errorf("create guest: %w", err)
	}
	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *domain.User) (*TokenResponse, error) {
	token, err := s.tokens.CreateForUser(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return &TokenResponse{
		AccessToken: token,
		Username:    user.Username,
		User:        user,
	}, nil
}
