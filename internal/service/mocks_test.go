package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"hoppon-server/internal/domain"
)

// Shared testify mocks for the repository interfaces.

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) CreateGuest(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) UpdateAvatar(ctx context.Context, id int64, data []byte) error {
	args := m.Called(ctx, id, data)
	return args.Error(0)
}

func (m *MockUserRepo) GetAvatar(ctx context.Context, id int64) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockConversationRepo struct {
	mock.Mock
}

func (m *MockConversationRepo) Create(ctx context.Context, c *domain.Conversation, participantIDs []int64) error {
	args := m.Called(ctx, c, participantIDs)
	return args.Error(0)
}

func (m *MockConversationRepo) GetByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockConversationRepo) ListForUser(ctx context.Context, userID int64) ([]*domain.ConversationSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ConversationSummary), args.Error(1)
}

func (m *MockConversationRepo) Touch(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepo) GetRecord(ctx context.Context, id int64) (*domain.MessageRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MessageRecord), args.Error(1)
}

func (m *MockMessageRepo) ListRecordsPage(ctx context.Context, conversationID int64, limit, offset int) ([]*domain.MessageRecord, error) {
	args := m.Called(ctx, conversationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MessageRecord), args.Error(1)
}

type MockParticipantRepo struct {
	mock.Mock
}

func (m *MockParticipantRepo) IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error) {
	args := m.Called(ctx, conversationID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockParticipantRepo) ListIDs(ctx context.Context, conversationID int64) ([]int64, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) ListContacts(ctx context.Context, userID int64) ([]*domain.ContactEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ContactEntry), args.Error(1)
}

func (m *MockContactRepo) AreContacts(ctx context.Context, userID, otherID int64) (bool, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Bool(0), args.Error(1)
}

func (m *MockContactRepo) HasPending(ctx context.Context, requesterID, targetID int64) (bool, error) {
	args := m.Called(ctx, requesterID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockContactRepo) CreatePending(ctx context.Context, requesterID, targetID int64) error {
	args := m.Called(ctx, requesterID, targetID)
	return args.Error(0)
}

func (m *MockContactRepo) ListPendingFor(ctx context.Context, targetID int64) ([]*domain.PendingRequest, error) {
	args := m.Called(ctx, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PendingRequest), args.Error(1)
}

func (m *MockContactRepo) Accept(ctx context.Context, requesterID, accepterID int64) error {
	args := m.Called(ctx, requesterID, accepterID)
	return args.Error(0)
}

func (m *MockContactRepo) DeletePending(ctx context.Context, requesterID, targetID int64) error {
	args := m.Called(ctx, requesterID, targetID)
	return args.Error(0)
}

type MockVerificationRepo struct {
	mock.Mock
}

func (m *MockVerificationRepo) Upsert(ctx context.Context, v *domain.VerificationCode) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVerificationRepo) Get(ctx context.Context, email string, now time.Time) (*domain.VerificationCode, error) {
	args := m.Called(ctx, email, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationCode), args.Error(1)
}

func (m *MockVerificationRepo) Delete(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationCode(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}
