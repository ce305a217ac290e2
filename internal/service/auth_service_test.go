package service_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hoppon-server/internal/domain"
	"hoppon-server/internal/security"
	"hoppon-server/internal/service"
)

func newAuthService(users *MockUserRepo, verifications *MockVerificationRepo, mailer *MockMailer) (*service.AuthService, *security.TokenService) {
	tokenSvc := security.NewTokenService("secret", time.Hour)
	hasher := security.NewPasswordHasher(4) // low cost for tests
	return service.NewAuthService(users, verifications, tokenSvc, hasher, mailer), tokenSvc
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		verifications := new(MockVerificationRepo)
		mailer := new(MockMailer)
		svc, _ := newAuthService(users, verifications, mailer)

		users.On("GetByUsername", ctx, "newuser").Return(nil, nil)
		users.On("GetByEmail", ctx, "new@example.com").Return(nil, nil)

		var staged *domain.VerificationCode
		verifications.On("Upsert", ctx, mock.AnythingOfType("*domain.VerificationCode")).
			Run(func(args mock.Arguments) {
				staged = args.Get(1).(*domain.VerificationCode)
			}).Return(nil)
		mailer.On("SendVerificationCode", "new@example.com", mock.AnythingOfType("string")).Return(nil)

		err := svc.Register(ctx, service.RegisterInput{
			Username: "newuser",
			Email:    "new@example.com",
			Password: "password123",
		})
		assert.NoError(t, err)

		assert.NotNil(t, staged)
		assert.Equal(t, "newuser", staged.Username)
		assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), staged.Code)
		assert.True(t, staged.ExpiresAt.After(time.Now()))
		// The mailed code matches the staged one.
		mailer.AssertCalled(t, "SendVerificationCode", "new@example.com", staged.Code)
		// No users row before verification.
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("MissingFields", func(t *testing.T) {
		users := new(MockUserRepo)
		verifications := new(MockVerificationRepo)
		mailer := new(MockMailer)
		svc, _ := newAuthService(users, verifications, mailer)

		err := svc.Register(ctx, service.RegisterInput{Username: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("UsernameTaken", func(t *testing.T) {
		users := new(MockUserRepo)
		verifications := new(MockVerificationRepo)
		mailer := new(MockMailer)
		svc, _ := newAuthService(users, verifications, mailer)

		users.On("GetByUsername", ctx, "taken").Return(&domain.User{ID: 1, Username: "taken"}, nil)

		err := svc.Register(ctx, service.RegisterInput{
			Username: "taken",
			Email:    "new@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
		verifications.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		users := new(MockUserRepo)
		verifications := new(MockVerificationRepo)
		mailer := new(MockMailer)
		svc, _ := newAuthService(users, verifications, mailer)

		email := "used@example.com"
		users.On("GetByUsername", ctx, "newuser").Return(nil, nil)
		users.On("GetByEmail", ctx, email).Return(&domain.User{ID: 1, Email: &email}, nil)

		err := svc.Register(ctx, service.RegisterInput{
			Username: "newuser",
			Email:    email,
			Password: "password123",
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		verifications := new(MockVerificationRepo)
		mailer := new(MockMailer)
		svc, tokenSvc := newAuthService(users, verifications, mailer)

		verifications.On("Get", ctx, "new@example.com", mock.AnythingOfType("time.Time")).
			Return(&domain.VerificationCode{
				Email:        "new@example.com",
				Code:         "123456",
				Username:     "newuser",
				PasswordHash: "$2a$04$hash",
				ExpiresAt:    time.Now().Add(time.Minute),
			}, nil)
		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.User).ID = 11
			}).Return(nil)
		verifications.On("Delete", ctx, "new@example.com").Return(nil)

		resp, err := svc.Verify(ctx, "new@example.com", "123456")
		assert.NoError(t, err)
		assert.Equal(t, "newuser", resp.Username)

		uid, err := tokenSvc.Parse(resp.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, int64(11), uid)
	})

	t.Run("WrongCode", func(t *testing.T) {
		users := new(MockUserRepo)
		verifications := new(MockVerificationRepo)
		mailer := new(MockMailer)
		svc, _ := newAuthService(users, verifications, mailer)

		verifications.On("Get", ctx, "new@example.com", mock.AnythingOfType("time.Time")).
			Return(&domain.VerificationCode{Code: "123456"}, nil)

		_, err := svc.Verify(ctx, "new@example.com", "654321")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ExpiredOrMissing", func(t *testing.T) {
		users := new(MockUserRepo)
		verifications := new(MockVerificationRepo)
		mailer := new(MockMailer)
		svc, _ := newAuthService(users, verifications, mailer)

		verifications.On("Get", ctx, "new@example.com", mock.AnythingOfType("time.Time")).
			Return(nil, domain.ErrNotFound)

		// An expired or missing code is a bad request, not a missing resource.
		_, err := svc.Verify(ctx, "new@example.com", "123456")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "invalid or expired verification code")
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		verifications := new(MockVerificationRepo)
		mailer := new(MockMailer)
		svc, tokenSvc := newAuthService(users, verifications, mailer)

		hasher := security.NewPasswordHasher(4)
		hashed, err := hasher.Hash("password123")
		assert.NoError(t, err)

		users.On("GetByUsername", ctx, "alice").Return(&domain.User{
			ID:             3,
			Username:       "alice",
			HashedPassword: hashed,
		}, nil)

		resp, err := svc.Login(ctx, service.LoginInput{Username: "alice", Password: "password123"})
		assert.NoError(t, err)
		assert.Equal(t, "alice", resp.Username)

		uid, err := tokenSvc.Parse(resp.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), uid)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		users := new(MockUserRepo)
		verifications := new(MockVerificationRepo)
		mailer := new(MockMailer)
		svc, _ := newAuthService(users, verifications, mailer)

		hasher := security.NewPasswordHasher(4)
		hashed, _ := hasher.Hash("password123")

		users.On("GetByUsername", ctx, "alice").Return(&domain.User{
			ID:             3,
			Username:       "alice",
			HashedPassword: hashed,
		}, nil)

		_, err := svc.Login(ctx, service.LoginInput{Username: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		users := new(MockUserRepo)
		verifications := new(MockVerificationRepo)
		mailer := new(MockMailer)
		svc, _ := newAuthService(users, verifications, mailer)

		users.On("GetByUsername", ctx, "ghost").Return(nil, nil)

		_, err := svc.Login(ctx, service.LoginInput{Username: "ghost", Password: "whatever"})
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}

func TestCreateGuest(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepo)
	verifications := new(MockVerificationRepo)
	mailer := new(MockMailer)
	svc, tokenSvc := newAuthService(users, verifications, mailer)

	users.On("GetByUsername", ctx, mock.AnythingOfType("string")).Return(nil, nil)
	users.On("CreateGuest", ctx, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 77
		}).Return(nil)

	resp, err := svc.CreateGuest(ctx)
	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^guest_\d{6}$`), resp.Username)
	assert.True(t, resp.User.IsGuest)

	uid, err := tokenSvc.Parse(resp.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, int64(77), uid)
}
