package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hoppon-server/internal/domain"
	"hoppon-server/internal/store/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(db))
	return db
}

func createUser(t *testing.T, db *sql.DB, username string) *domain.User {
	t.Helper()
	u := &domain.User{Username: username, HashedPassword: "hash"}
	require.NoError(t, sqlite.NewUserRepo(db).Create(context.Background(), u))
	return u
}
