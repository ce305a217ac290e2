package service

import (
	"context"
	"fmt"

	"hoppon-server/internal/domain"
)

// ContactService manages contacts and friend requests. Accepting a request
// replaces the pending row with a symmetric pair of contact edges.
type ContactService struct {
	contacts domain.ContactRepository
	users    domain.UserRepository
}

func NewContactService(contacts domain.ContactRepository, users domain.UserRepository) *ContactService {
	return &ContactService{
		contacts: contacts,
		users:    users,
	}
}

func (s *ContactService) Contacts(ctx context.Context, userID int64) ([]*domain.ContactEntry, error) {
	return s.contacts.ListContacts(ctx, userID)
}

func (s *ContactService) PendingRequests(ctx context.Context, userID int64) ([]*domain.PendingRequest, error) {
	return s.contacts.ListPendingFor(ctx, userID)
}

// Request creates a pending friend request towards the named user and returns
// the target's ID so the caller can signal them.
func (s *ContactService) Request(ctx context.Context, requesterID int64, targetUsername string) (int64, error) {
	target, err := s.users.GetByUsername(ctx, targetUsername)
	if err != nil {
		return 0, fmt.Errorf("get user: %w", err)
	}
	if target == nil {
		return 0, fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}
	if target.ID == requesterID {
		return 0, fmt.Errorf("%w: cannot add yourself as contact", domain.ErrInvalidInput)
	}

	already, err := s.contacts.AreContacts(ctx, requesterID, target.ID)
	if err != nil {
		return 0, fmt.Errorf("check contacts: %w", err)
	}
	if already {
		return 0, fmt.Errorf("%w: already in contacts", domain.ErrConflict)
	}

	pending, err := s.contacts.HasPending(ctx, requesterID, target.ID)
	if err != nil {
		return 0, fmt.Errorf("check pending: %w", err)
	}
	if pending {
		return 0, fmt.Errorf("%w: friend request already sent", domain.ErrConflict)
	}

	if err := s.contacts.CreatePending(ctx, requesterID, target.ID); err != nil {
		return 0, fmt.Errorf("create pending: %w", err)
	}
	return target.ID, nil
}

func (s *ContactService) Accept(ctx context.Context, accepterID, requesterID int64) error {
	return s.contacts.Accept(ctx, requesterID, accepterID)
}

func (s *ContactService) Reject(ctx context.Context, rejecterID, requesterID int64) error {
	return s.contacts.DeletePending(ctx, requesterID, rejecterID)
}
