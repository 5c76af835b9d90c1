package repositories

import (
	"context"
	"testing"
	"time"

	"finance-tracker/internal/database"
	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestAccountRepository(t *testing.T) {
	suite.Run(t, new(AccountRepositorySuite))
}

type AccountRepositorySuite struct {
	suite.Suite
	db    *database.DB
	repo  AccountRepositoryInterface
	ctx   context.Context
	user  *models.User
	other *models.User
}

func (s *AccountRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewAccountRepository(s.db.DB)
	s.ctx = context.Background()
	s.user = database.CreateTestUser(s.T(), s.db, "owner@example.com")
	s.other = database.CreateTestUser(s.T(), s.db, "other@example.com")
}

func (s *AccountRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *AccountRepositorySuite) TestAccountRepository_Create() {
	account := &models.Account{
		UserID: s.user.ID,
		Name:   "Main",
		Type:   models.AccountTypeSavings,
	}

	err := s.repo.Create(s.ctx, account)
	s.NoError(err)
	s.NotEqual(uuid.Nil, account.ID)
	s.NotZero(account.CreatedAt)
}

func (s *AccountRepositorySuite) TestAccountRepository_Create_InvalidType() {
	account := &models.Account{
		UserID: s.user.ID,
		Name:   "Main",
		Type:   "crypto",
	}

	err := s.repo.Create(s.ctx, account)
	s.ErrorIs(err, models.ErrInvalidAccountType)
}

func (s *AccountRepositorySuite) TestAccountRepository_FindOwned() {
	account := database.CreateTestAccount(s.T(), s.db, s.user, "Main", models.AccountTypeSavings)

	found, err := s.repo.FindOwned(s.ctx, account.ID, s.user.ID)
	s.NoError(err)
	s.Equal(account.ID, found.ID)
	s.Equal("Main", found.Name)

	// another user's id behaves like a missing one
	_, err = s.repo.FindOwned(s.ctx, account.ID, s.other.ID)
	s.Equal(ErrNotFound, err)

	_, err = s.repo.FindOwned(s.ctx, uuid.New(), s.user.ID)
	s.Equal(ErrNotFound, err)
}

func (s *AccountRepositorySuite) TestAccountRepository_ListOwned_NewestFirst() {
	older := &models.Account{UserID: s.user.ID, Name: "Older", Type: models.AccountTypeChecking, CreatedAt: time.Now().Add(-time.Hour)}
	newer := &models.Account{UserID: s.user.ID, Name: "Newer", Type: models.AccountTypeSavings, CreatedAt: time.Now()}
	s.Require().NoError(s.repo.Create(s.ctx, older))
	s.Require().NoError(s.repo.Create(s.ctx, newer))
	database.CreateTestAccount(s.T(), s.db, s.other, "Foreign", models.AccountTypeOther)

	accounts, err := s.repo.ListOwned(s.ctx, s.user.ID)
	s.NoError(err)
	s.Require().Len(accounts, 2)
	s.Equal("Newer", accounts[0].Name)
	s.Equal("Older", accounts[1].Name)
}

func (s *AccountRepositorySuite) TestAccountRepository_ListWithTransactions() {
	account := database.CreateTestAccount(s.T(), s.db, s.user, "Main", models.AccountTypeSavings)
	category := database.CreateTestCategory(s.T(), s.db, s.user, "Food")

	createTransaction(s.T(), s.db, s.user.ID, account.ID, category.ID, 1000, models.TransactionTypeCredit, time.Now())
	createTransaction(s.T(), s.db, s.user.ID, account.ID, category.ID, 300, models.TransactionTypeDebit, time.Now())

	accounts, err := s.repo.ListWithTransactions(s.ctx, s.user.ID)
	s.NoError(err)
	s.Require().Len(accounts, 1)
	s.Len(accounts[0].Transactions, 2)

	total := decimal.Zero
	for _, tx := range accounts[0].Transactions {
		total = total.Add(tx.SignedAmount())
	}
	s.True(total.Equal(decimal.NewFromInt(700)), total.String())
}

func (s *AccountRepositorySuite) TestAccountRepository_Update() {
	account := database.CreateTestAccount(s.T(), s.db, s.user, "Main", models.AccountTypeSavings)

	account.Name = "Renamed"
	account.Type = models.AccountTypeInvestment
	s.NoError(s.repo.Update(s.ctx, account))

	updated, err := s.repo.FindOwned(s.ctx, account.ID, s.user.ID)
	s.NoError(err)
	s.Equal("Renamed", updated.Name)
	s.Equal(models.AccountTypeInvestment, updated.Type)
}

func (s *AccountRepositorySuite) TestAccountRepository_DeleteOwned() {
	account := database.CreateTestAccount(s.T(), s.db, s.user, "Main", models.AccountTypeSavings)

	err := s.repo.DeleteOwned(s.ctx, account.ID, s.other.ID)
	s.Equal(ErrNotFound, err)

	s.NoError(s.repo.DeleteOwned(s.ctx, account.ID, s.user.ID))

	_, err = s.repo.FindOwned(s.ctx, account.ID, s.user.ID)
	s.Equal(ErrNotFound, err)
}

func (s *AccountRepositorySuite) TestAccountRepository_Counts() {
	account := database.CreateTestAccount(s.T(), s.db, s.user, "Main", models.AccountTypeSavings)
	database.CreateTestAccount(s.T(), s.db, s.user, "Spare", models.AccountTypeOther)
	category := database.CreateTestCategory(s.T(), s.db, s.user, "Food")
	createTransaction(s.T(), s.db, s.user.ID, account.ID, category.ID, 50, models.TransactionTypeDebit, time.Now())

	count, err := s.repo.CountOwned(s.ctx, s.user.ID)
	s.NoError(err)
	s.Equal(int64(2), count)

	txCount, err := s.repo.CountTransactions(s.ctx, account.ID)
	s.NoError(err)
	s.Equal(int64(1), txCount)
}
