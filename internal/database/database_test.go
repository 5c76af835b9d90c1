package database

import (
	"context"
	"testing"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type DatabaseSuite struct {
	suite.Suite
	db *DB
}

func TestDatabase(t *testing.T) {
	suite.Run(t, new(DatabaseSuite))
}

func (s *DatabaseSuite) SetupTest() {
	s.db = SetupTestDB(s.T())
}

func (s *DatabaseSuite) TearDownTest() {
	CleanupTestDB(s.T(), s.db)
}

func (s *DatabaseSuite) TestHealthCheck() {
	s.NoError(s.db.HealthCheck(context.Background()))
}

func (s *DatabaseSuite) TestAutoMigrate_CreatesTables() {
	for _, table := range []string{"users", "accounts", "categories", "transactions", "blacklisted_tokens"} {
		s.True(s.db.Migrator().HasTable(table), table)
	}
}

func (s *DatabaseSuite) TestCreateIndexes_IsIdempotent() {
	s.Zero(s.db.CreateIndexes())
	s.Zero(s.db.CreateIndexes())
}

func (s *DatabaseSuite) TestCategoryNameIndex_IsUniquePerUserIgnoringCase() {
	user := CreateTestUser(s.T(), s.db, "names@example.com")
	CreateTestCategory(s.T(), s.db, user, "Food")

	err := s.db.Create(&models.Category{UserID: user.ID, Name: "fOOD"}).Error

	s.ErrorIs(err, gorm.ErrDuplicatedKey)
}

func (s *DatabaseSuite) TestCleanupExpiredTokens() {
	user := CreateTestUser(s.T(), s.db, "cleanup@example.com")

	expired := models.NewBlacklistedToken(uuid.NewString(), user.ID, time.Now().Add(-time.Hour))
	active := models.NewBlacklistedToken(uuid.NewString(), user.ID, time.Now().Add(time.Hour))
	s.Require().NoError(s.db.Create(expired).Error)
	s.Require().NoError(s.db.Create(active).Error)

	removed, err := s.db.CleanupExpiredTokens(context.Background())
	s.NoError(err)
	s.Equal(int64(1), removed)

	var remaining int64
	s.NoError(s.db.Model(&models.BlacklistedToken{}).Count(&remaining).Error)
	s.Equal(int64(1), remaining)
}

func (s *DatabaseSuite) TestNew_UnsupportedDriver() {
	_, err := New(&config.DatabaseConfig{Driver: "oracle"})
	s.Error(err)
	s.Contains(err.Error(), "unsupported database driver")
}

func (s *DatabaseSuite) TestNew_SQLite() {
	db, err := New(&config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		SQLitePath:     ":memory:",
		MaxConnections: 1,
		MaxIdleConns:   1,
	})
	s.Require().NoError(err)
	defer db.Close()

	s.NoError(db.HealthCheck(context.Background()))
}
