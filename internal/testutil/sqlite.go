package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alimgiray/shiftledger/internal/models"
	"github.com/alimgiray/shiftledger/pkg/database"
	"github.com/stretchr/testify/require"
)

// SetupTestDB creates a migrated in-memory SQLite database that is closed when the test ends
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(database.MemoryPath)
	require.NoError(t, err, "Failed to create test database")

	t.Cleanup(func() {
		require.NoError(t, db.Close(), "Failed to close test database")
	})
	return db
}

// CreateUser inserts a user directly, bypassing password hashing
func CreateUser(t *testing.T, db *sql.DB, username string, role models.Role, department string) *models.User {
	t.Helper()

	user := models.NewUser(username, "not-a-real-hash", role, department)
	_, err := db.Exec(
		`INSERT INTO users (id, username, password_hash, role, department, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID.String(), user.Username, user.PasswordHash, user.Role, user.Department, user.CreatedAt,
	)
	require.NoError(t, err, "Failed to create user %s", username)
	return user
}

// FixedClock returns a clock function that always reports t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
