package testutil

import (
	migration "Meal-Planner-Backend/cmd/database/migrate"
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated sqlite database that lives for the duration of the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openDB(t, "", 1)
}

// NewConcurrentDB is NewDB with a WAL journal and a pool of conns connections,
// so transactions from different goroutines really overlap.
func NewConcurrentDB(t *testing.T, conns int) *gorm.DB {
	t.Helper()
	return openDB(t, "&_pragma=journal_mode(WAL)", conns)
}

func openDB(t *testing.T, pragmas string, conns int) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)" + pragmas
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	return db
}

var phoneSeq atomic.Int64

// CreateAccount inserts an account with its profile and returns the identity a session token would carry.
func CreateAccount(t *testing.T, db *gorm.DB, email, role string) (domain.Identity, *entities.User) {
	t.Helper()

	account := &entities.Account{
		Email:        email,
		PasswordHash: "unused",
		Role:         role,
		Status:       domain.StatusActivated,
	}
	require.NoError(t, db.Create(account).Error)

	user := &entities.User{
		AccountID:   account.ID,
		Name:        "Test",
		LastName:    "User",
		PhoneNumber: fmt.Sprintf("5%09d", phoneSeq.Add(1)),
	}
	require.NoError(t, db.Create(user).Error)

	return domain.Identity{AccountID: account.ID, Email: email, Role: role}, user
}
