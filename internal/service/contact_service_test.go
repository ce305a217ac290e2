package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hoppon-server/internal/domain"
	"hoppon-server/internal/service"
)

func TestContactRequest(t *testing.T) {
	ctx := context.Background()
	bob := &domain.User{ID: 2, Username: "bob"}

	t.Run("Success", func(t *testing.T) {
		contacts := new(MockContactRepo)
		users := new(MockUserRepo)
		svc := service.NewContactService(contacts, users)

		users.On("GetByUsername", ctx, "bob").Return(bob, nil)
		contacts.On("AreContacts", ctx, int64(1), int64(2)).Return(false, nil)
		contacts.On("HasPending", ctx, int64(1), int64(2)).Return(false, nil)
		contacts.On("CreatePending", ctx, int64(1), int64(2)).Return(nil)

		targetID, err := svc.Request(ctx, 1, "bob")
		assert.NoError(t, err)
		assert.Equal(t, int64(2), targetID)
		contacts.AssertExpectations(t)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		contacts := new(MockContactRepo)
		users := new(MockUserRepo)
		svc := service.NewContactService(contacts, users)

		users.On("GetByUsername", ctx, "ghost").Return(nil, nil)

		_, err := svc.Request(ctx, 1, "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("SelfRequest", func(t *testing.T) {
		contacts := new(MockContactRepo)
		users := new(MockUserRepo)
		svc := service.NewContactService(contacts, users)

		users.On("GetByUsername", ctx, "bob").Return(bob, nil)

		_, err := svc.Request(ctx, 2, "bob")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		contacts.AssertNotCalled(t, "CreatePending", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AlreadyContacts", func(t *testing.T) {
		contacts := new(MockContactRepo)
		users := new(MockUserRepo)
		svc := service.NewContactService(contacts, users)

		users.On("GetByUsername", ctx, "bob").Return(bob, nil)
		contacts.On("AreContacts", ctx, int64(1), int64(2)).Return(true, nil)

		_, err := svc.Request(ctx, 1, "bob")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("AlreadyPending", func(t *testing.T) {
		contacts := new(MockContactRepo)
		users := new(MockUserRepo)
		svc := service.NewContactService(contacts, users)

		users.On("GetByUsername", ctx, "bob").Return(bob, nil)
		contacts.On("AreContacts", ctx, int64(1), int64(2)).Return(false, nil)
		contacts.On("HasPending", ctx, int64(1), int64(2)).Return(true, nil)

		_, err := svc.Request(ctx, 1, "bob")
		assert.ErrorIs(t, err, domain.ErrConflict)
		contacts.AssertNotCalled(t, "CreatePending", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestContactAcceptReject(t *testing.T) {
	ctx := context.Background()

	t.Run("AcceptPassesRequesterFirst", func(t *testing.T) {
		contacts := new(MockContactRepo)
		users := new(MockUserRepo)
		svc := service.NewContactService(contacts, users)

		contacts.On("Accept", ctx, int64(5), int64(9)).Return(nil)

		// user 9 accepts the request from user 5
		err := svc.Accept(ctx, 9, 5)
		assert.NoError(t, err)
		contacts.AssertExpectations(t)
	})

	t.Run("AcceptWithoutPending", func(t *testing.T) {
		contacts := new(MockContactRepo)
		users := new(MockUserRepo)
		svc := service.NewContactService(contacts, users)

		contacts.On("Accept", ctx, int64(5), int64(9)).Return(domain.ErrNotFound)

		err := svc.Accept(ctx, 9, 5)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("RejectDeletesPending", func(t *testing.T) {
		contacts := new(MockContactRepo)
		users := new(MockUserRepo)
		svc := service.NewContactService(contacts, users)

		contacts.On("DeletePending", ctx, int64(5), int64(9)).Return(nil)

		// user 9 rejects the request from user 5
		err := svc.Reject(ctx, 9, 5)
		assert.NoError(t, err)
		contacts.AssertExpectations(t)
	})
}
