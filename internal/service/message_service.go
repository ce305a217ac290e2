package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"hoppon-server/internal/domain"
	"hoppon-server/internal/metrics"
)

// MessageService implements message intake: validation, membership
// authorization, durable persistence, and fan-out set resolution. Both the
// REST and WebSocket entry points go through it, so policy (trimming,
// authorization, the conversation timestamp bump) is identical on both paths.
type MessageService struct {
	conversations domain.ConversationRepository
	participants  domain.ParticipantRepository
	messages      domain.MessageRepository

	defaultPageSize int
}

func NewMessageService(
	conversations domain.ConversationRepository,
	participants domain.ParticipantRepository,
	messages domain.MessageRepository,
	defaultPageSize int,
) *MessageService {
	if defaultPageSize <= 0 {
		defaultPageSize = 50
	}
	return &MessageService{
		conversations:   conversations,
		participants:    participants,
		messages:        messages,
		defaultPageSize: defaultPageSize,
	}
}

// Send validates and persists one message, then resolves the fan-out set.
// Membership is checked fresh on every call, never cached. The returned
// participant IDs are authoritative at delivery time and include the sender.
func (s *MessageService) Send(
	ctx context.Context,
	senderID, conversationID int64,
	content string,
) (*domain.MessageRecord, []int64, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil, fmt.Errorf("%w: message content is empty", domain.ErrInvalidInput)
	}

	isParticipant, err := s.participants.IsParticipant(ctx, conversationID, senderID)
	if err != nil {
		return nil, nil, fmt.Errorf("check participant: %w", err)
	}
	if !isParticipant {
		return nil, nil, domain.ErrForbidden
	}

	msg := &domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, nil, fmt.Errorf("insert message: %w", err)
	}
	metrics.MessagesPersisted.Inc()

	// The message is durable at this point; a failed timestamp bump must not
	// turn a stored message into a reported error.
	if err := s.conversations.Touch(ctx, conversationID); err != nil {
		log.Printf("message: touch conversation %d: %v", conversationID, err)
	}

	rec, err := s.messages.GetRecord(ctx, msg.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load message record: %w", err)
	}

	participantIDs, err := s.participants.ListIDs(ctx, conversationID)
	if err != nil {
		return nil, nil, fmt.Errorf("list participants: %w", err)
	}
	return rec, participantIDs, nil
}

// History returns one page of a conversation's messages in ascending order.
// The store pages newest-first; the page is reversed so reassembled pages
// reproduce the full ascending sequence.
func (s *MessageService) History(
	ctx context.Context,
	userID, conversationID int64,
	page, limit int,
) ([]*domain.MessageRecord, error) {
	isParticipant, err := s.participants.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, fmt.Errorf("check participant: %w", err)
	}
	if !isParticipant {
		return nil, domain.ErrForbidden
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	offset := (page - 1) * limit

	msgs, err := s.messages.ListRecordsPage(ctx, conversationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
