package domain

import (
	"context"
	"time"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	// CreateGuest inserts the user and its guests row in one transaction.
	CreateGuest(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateAvatar(ctx context.Context, id int64, data []byte) error
	GetAvatar(ctx context.Context, id int64) ([]byte, error)
}

// ConversationRepository defines persistence operations for conversations.
type ConversationRepository interface {
	Create(ctx context.Context, c *Conversation, participantIDs []int64) error
	GetByID(ctx context.Context, id int64) (*Conversation, error)
	ListForUser(ctx context.Context, userID int64) ([]*ConversationSummary, error)
	// Touch bumps the conversation's updated_at to now.
	Touch(ctx context.Context, id int64) error
}

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	GetRecord(ctx context.Context, id int64) (*MessageRecord, error)
	// ListRecordsPage returns one page of a conversation's messages, newest
	// first, ordered by (created_at, id) descending.
	ListRecordsPage(ctx context.Context, conversationID int64, limit, offset int) ([]*MessageRecord, error)
}

// ParticipantRepository defines operations around conversation participants.
type ParticipantRepository interface {
	IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error)
	ListIDs(ctx context.Context, conversationID int64) ([]int64, error)
}

// ContactRepository defines operations for contacts and friend requests.
type ContactRepository interface {
	ListContacts(ctx context.Context, userID int64) ([]*ContactEntry, error)
	AreContacts(ctx context.Context, userID, otherID int64) (bool, error)
	HasPending(ctx context.Context, requesterID, targetID int64) (bool, error)
	CreatePending(ctx context.Context, requesterID, targetID int64) error
	ListPendingFor(ctx context.Context, targetID int64) ([]*PendingRequest, error)
	// Accept atomically replaces the pending request with the symmetric
	// contact pair. Returns ErrNotFound when no such request exists.
	Accept(ctx context.Context, requesterID, accepterID int64) error
	DeletePending(ctx context.Context, requesterID, targetID int64) error
}

// VerificationRepository stores pending registration codes.
type VerificationRepository interface {
	Upsert(ctx context.Context, v *VerificationCode) error
	// Get returns the pending code for the e-mail, or ErrNotFound when there
	// is none or it expired before the given instant.
	Get(ctx context.Context, email string, now time.Time) (*VerificationCode, error)
	Delete(ctx context.Context, email string) error
}
