package domain

import "time"

// User represents an application user.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	Email          *string   `db:"email" json:"email,omitempty"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	IsGuest        bool      `db:"is_guest" json:"is_guest"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Conversation represents a chat conversation (direct or group).
type Conversation struct {
	ID        int64     `db:"id"`
	IsGroup   bool      `db:"is_group"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ConversationSummary is a conversation as listed for a user, including the
// usernames of everyone in it.
type ConversationSummary struct {
	ID           int64     `json:"id"`
	IsGroup      bool      `json:"is_group"`
	UpdatedAt    time.Time `json:"updated_at"`
	Participants string    `json:"participants"`
}

// ConversationParticipant represents the membership of a user in a conversation.
// A row here is the sole authorization source for conversation access.
type ConversationParticipant struct {
	UserID         int64     `db:"user_id"`
	ConversationID int64     `db:"conversation_id"`
	JoinedAt       time.Time `db:"joined_at"`
}

// Message represents a single chat message. Messages are immutable once
// created; display order is (created_at, id), never delivery order.
type Message struct {
	ID             int64     `db:"id"`
	ConversationID int64     `db:"conversation_id"`
	SenderID       int64     `db:"sender_id"`
	Content        string    `db:"content"`
	CreatedAt      time.Time `db:"created_at"`
}

// MessageRecord is a message joined with its sender's display name, as pushed
// to clients and returned from history fetches.
type MessageRecord struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	SenderName     string    `json:"sender_name"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// ContactEntry is a confirmed contact as listed for a user.
type ContactEntry struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// PendingRequest is an inbound friend request awaiting accept/reject.
type PendingRequest struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// VerificationCode holds a pending registration until the e-mailed code is
// confirmed. Keyed by e-mail; re-registering overwrites the previous code.
type VerificationCode struct {
	Email        string    `db:"email"`
	Code         string    `db:"code"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	ExpiresAt    time.Time `db:"expires_at"`
}
