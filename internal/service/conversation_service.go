package service

import (
	"context"
	"fmt"

	"hoppon-server/internal/domain"
)

type ConversationService struct {
	conversations domain.ConversationRepository
}

func NewConversationService(conversations domain.ConversationRepository) *ConversationService {
	return &ConversationService{conversations: conversations}
}

// Create starts a conversation between the creator and the given users.
// Conversations with more than one other participant are groups.
func (s *ConversationService) Create(
	ctx context.Context,
	creatorID int64,
	participantIDs []int64,
) (*domain.Conversation, error) {
	if len(participantIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one participant is required", domain.ErrInvalidInput)
	}

	seen := map[int64]struct{}{creatorID: {}}
	uniqueIDs := []int64{creatorID}
	for _, id := range participantIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniqueIDs = append(uniqueIDs, id)
	}

	conv := &domain.Conversation{
		IsGroup: len(uniqueIDs) > 2,
	}
	if err := s.conversations.Create(ctx, conv, uniqueIDs); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

func (s *ConversationService) ListForUser(ctx context.Context, userID int64) ([]*domain.ConversationSummary, error) {
	return s.conversations.ListForUser(ctx, userID)
}
