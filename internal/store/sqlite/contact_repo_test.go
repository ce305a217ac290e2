package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoppon-server/internal/domain"
	"hoppon-server/internal/store/sqlite"
)

func TestContactAcceptFlow(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	contacts := sqlite.NewContactRepo(db)

	require.NoError(t, contacts.CreatePending(ctx, alice.ID, bob.ID))

	pending, err := contacts.HasPending(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, pending)

	requests, err := contacts.ListPendingFor(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "alice", requests[0].Username)

	require.NoError(t, contacts.Accept(ctx, alice.ID, bob.ID))

	// Both directions exist, the pending row is gone.
	both, err := contacts.AreContacts(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, both)
	both, err = contacts.AreContacts(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, both)

	pending, err = contacts.HasPending(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, pending)

	list, err := contacts.ListContacts(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bob", list[0].Username)

	// Accepting the same request twice has nothing left to accept.
	err = contacts.Accept(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContactReject(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	contacts := sqlite.NewContactRepo(db)

	require.NoError(t, contacts.CreatePending(ctx, alice.ID, bob.ID))
	require.NoError(t, contacts.DeletePending(ctx, alice.ID, bob.ID))

	pending, err := contacts.HasPending(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, pending)

	both, err := contacts.AreContacts(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, both)
}
