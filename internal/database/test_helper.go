package database

import (
	"testing"

	"finance-tracker/internal/config"
	"finance-tracker/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a migrated in-memory sqlite database that is closed when the test ends.
// The pool holds a single connection, since every sqlite connection to :memory: gets its
// own empty database.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(&config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		SQLitePath:     ":memory:",
		MaxConnections: 1,
		MaxIdleConns:   1,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.DB = db.Session(&gorm.Session{Logger: logger.Default.LogMode(logger.Silent)})

	if err := db.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if failed := db.CreateIndexes(); failed > 0 {
		t.Fatalf("failed to create %d test database indexes", failed)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func mustCreate[T any](t *testing.T, db *DB, row *T) *T {
	t.Helper()
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("failed to create %T: %v", row, err)
	}
	return row
}

// CreateTestUser inserts a user with a fake name and a placeholder password hash
func CreateTestUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()
	return mustCreate(t, db, &models.User{
		Name:         gofakeit.Name(),
		Email:        email,
		PasswordHash: "hashed_password",
	})
}

func CreateTestAccount(t *testing.T, db *DB, user *models.User, name, accountType string) *models.Account {
	t.Helper()
	return mustCreate(t, db, &models.Account{UserID: user.ID, Name: name, Type: accountType})
}

func CreateTestCategory(t *testing.T, db *DB, user *models.User, name string) *models.Category {
	t.Helper()
	return mustCreate(t, db, &models.Category{UserID: user.ID, Name: name})
}

// CleanupTestDB empties every table, children first
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	for _, model := range []any{
		&models.Transaction{},
		&models.Category{},
		&models.Account{},
		&models.BlacklistedToken{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			t.Logf("failed to clean up %T: %v", model, err)
		}
	}
}
