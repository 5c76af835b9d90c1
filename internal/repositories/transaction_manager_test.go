package repositories

import (
	"context"
	"errors"
	"testing"

	"finance-tracker/internal/database"
	"finance-tracker/internal/models"

	"github.com/stretchr/testify/suite"
)

func TestTransactionManager(t *testing.T) {
	suite.Run(t, new(TransactionManagerSuite))
}

type TransactionManagerSuite struct {
	suite.Suite
	db         *database.DB
	manager    TransactionManagerInterface
	categories CategoryRepositoryInterface
	ctx        context.Context
	user       *models.User
}

func (s *TransactionManagerSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.manager = NewTransactionManager(s.db.DB)
	s.categories = NewCategoryRepository(s.db.DB)
	s.ctx = context.Background()
	s.user = database.CreateTestUser(s.T(), s.db, "tx@example.com")
}

func (s *TransactionManagerSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *TransactionManagerSuite) TestWithinTransaction_Commits() {
	err := s.manager.WithinTransaction(s.ctx, func(ctx context.Context) error {
		if err := s.categories.Create(ctx, &models.Category{UserID: s.user.ID, Name: "Food"}); err != nil {
			return err
		}
		return s.categories.Create(ctx, &models.Category{UserID: s.user.ID, Name: "Salary"})
	})
	s.NoError(err)

	count, err := s.categories.CountOwned(s.ctx, s.user.ID)
	s.NoError(err)
	s.Equal(int64(2), count)
}

func (s *TransactionManagerSuite) TestWithinTransaction_RollsBack() {
	boom := errors.New("boom")

	err := s.manager.WithinTransaction(s.ctx, func(ctx context.Context) error {
		if err := s.categories.Create(ctx, &models.Category{UserID: s.user.ID, Name: "Food"}); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	count, err := s.categories.CountOwned(s.ctx, s.user.ID)
	s.NoError(err)
	s.Zero(count)
}

func (s *TransactionManagerSuite) TestWithinTransaction_NestedJoinsOuter() {
	boom := errors.New("boom")

	err := s.manager.WithinTransaction(s.ctx, func(ctx context.Context) error {
		inner := s.manager.WithinTransaction(ctx, func(ctx context.Context) error {
			return s.categories.Create(ctx, &models.Category{UserID: s.user.ID, Name: "Food"})
		})
		if inner != nil {
			return inner
		}
		return boom
	})
	s.ErrorIs(err, boom)

	count, err := s.categories.CountOwned(s.ctx, s.user.ID)
	s.NoError(err)
	s.Zero(count)
}
