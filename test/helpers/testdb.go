package helpers

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"vibenet_backend/internal/database"
	"vibenet_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB opens a fresh SQLite file under t.TempDir and applies the same
// migrations as production.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig())
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One writer keeps SQLite from returning SQLITE_BUSY under concurrent tests.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(context.Background(), db, database.DialectSQLite))
	return db
}

// CreateUser inserts a live user with a unique email derived from username.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		FullName: "Test " + username,
		Username: username,
		Email:    fmt.Sprintf("%s@test.com", username),
	}
	require.NoError(t, db.Create(user).Error, "create user %s", username)
	return user
}

// FixedClock returns a clock function pinned to t, advanced by Advance.
type FixedClock struct {
	Current time.Time
}

func NewFixedClock(start time.Time) *FixedClock {
	return &FixedClock{Current: start.UTC()}
}

func (c *FixedClock) Now() time.Time {
	return c.Current
}

func (c *FixedClock) Advance(d time.Duration) {
	c.Current = c.Current.Add(d)
}
