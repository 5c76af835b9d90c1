package actions

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"finance-tracker/internal/config"
	"finance-tracker/internal/database"
	"finance-tracker/internal/events"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/services"
	"finance-tracker/internal/session"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// EndToEndSuite drives the actions over real services and an in-memory database
type EndToEndSuite struct {
	suite.Suite
	db      *database.DB
	actions *Actions
	alice   context.Context
	bob     context.Context
}

func (s *EndToEndSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	accountRepo := repositories.NewAccountRepository(s.db.DB)
	categoryRepo := repositories.NewCategoryRepository(s.db.DB)
	transactionRepo := repositories.NewTransactionRepository(s.db.DB)
	userRepo := repositories.NewUserRepository(s.db.DB)
	txManager := repositories.NewTransactionManager(s.db.DB)

	appConfig := config.AppConfig{
		DefaultCurrency:      "Rs",
		TransactionPageLimit: 10,
		TransactionMaxLimit:  100,
		DefaultAccountName:   "Main",
	}
	metrics := services.NoopMetrics{}
	activity := services.NewActivityLogger(logger)

	userService := services.NewUserService(userRepo, accountRepo, categoryRepo, txManager, activity, appConfig, logger)
	s.actions = New(
		services.NewAccountService(accountRepo, metrics, activity, logger),
		services.NewCategoryService(categoryRepo, metrics, activity, logger),
		services.NewTransactionService(transactionRepo, accountRepo, categoryRepo, events.NewNoopPublisher(), metrics, activity, appConfig, logger),
		userService,
		services.NewDashboardService(accountRepo, categoryRepo, transactionRepo, userService, logger),
		metrics,
		logger,
	)

	alice := database.CreateTestUser(s.T(), s.db, "alice@example.com")
	bob := database.CreateTestUser(s.T(), s.db, "bob@example.com")
	s.alice = session.WithUserID(context.Background(), alice.ID)
	s.bob = session.WithUserID(context.Background(), bob.ID)
}

func (s *EndToEndSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestEndToEndSuite(t *testing.T) {
	suite.Run(t, new(EndToEndSuite))
}

func (s *EndToEndSuite) createAccount(ctx context.Context, name string) models.Account {
	r := s.actions.CreateAccount(ctx, name, "savings")
	s.Require().True(r.Success, r.Message)
	return *r.Data
}

func (s *EndToEndSuite) createCategory(ctx context.Context, name string) models.Category {
	r := s.actions.CreateCategory(ctx, name, nil)
	s.Require().True(r.Success, r.Message)
	return *r.Data
}

func (s *EndToEndSuite) createTransaction(ctx context.Context, account models.Account, category models.Category, amount int64, txType string) models.Transaction {
	r := s.actions.CreateTransaction(ctx, NewTransaction{
		AccountID:  account.ID.String(),
		CategoryID: category.ID.String(),
		Amount:     decimal.NewFromInt(amount),
		Type:       txType,
		Method:     models.PaymentMethodCash,
	})
	s.Require().True(r.Success, r.Message)
	return *r.Data
}

func (s *EndToEndSuite) balanceOf(ctx context.Context, accountID string) decimal.Decimal {
	r := s.actions.ListAccounts(ctx)
	s.Require().True(r.Success, r.Message)
	for _, account := range *r.Data {
		if account.ID.String() == accountID {
			return account.Balance
		}
	}
	s.FailNow("account not listed", accountID)
	return decimal.Zero
}

func (s *EndToEndSuite) TestBalanceFollowsTransactions() {
	account := s.createAccount(s.alice, "Wallet")
	category := s.createCategory(s.alice, "Food")

	s.True(s.balanceOf(s.alice, account.ID.String()).IsZero())

	debit := s.createTransaction(s.alice, account, category, 500, models.TransactionTypeDebit)
	s.True(s.balanceOf(s.alice, account.ID.String()).Equal(decimal.NewFromInt(-500)))
	s.Require().NotNil(debit.Account)
	s.Require().NotNil(debit.Category)
	s.Equal("Wallet", debit.Account.Name)
	s.Equal("Food", debit.Category.Name)

	s.createTransaction(s.alice, account, category, 1000, models.TransactionTypeCredit)
	s.True(s.balanceOf(s.alice, account.ID.String()).Equal(decimal.NewFromInt(500)))

	deleted := s.actions.DeleteTransaction(s.alice, debit.ID.String())
	s.Require().True(deleted.Success, deleted.Message)
	s.True(s.balanceOf(s.alice, account.ID.String()).Equal(decimal.NewFromInt(1000)))
}

func (s *EndToEndSuite) TestCategoryStatsCountBothDirections() {
	account := s.createAccount(s.alice, "Wallet")
	category := s.createCategory(s.alice, "Food")
	s.createTransaction(s.alice, account, category, 300, models.TransactionTypeDebit)
	s.createTransaction(s.alice, account, category, 200, models.TransactionTypeCredit)

	r := s.actions.ListCategories(s.alice)
	s.Require().True(r.Success, r.Message)
	s.Require().Len(*r.Data, 1)
	stats := (*r.Data)[0]
	s.Equal(int64(2), stats.TransactionCount)
	s.True(stats.TotalAmount.Equal(decimal.NewFromInt(500)))
}

func (s *EndToEndSuite) TestDeleteGuards() {
	account := s.createAccount(s.alice, "Wallet")
	category := s.createCategory(s.alice, "Food")
	tx := s.createTransaction(s.alice, account, category, 50, models.TransactionTypeDebit)

	blocked := s.actions.DeleteCategory(s.alice, category.ID.String())
	s.False(blocked.Success)
	s.Equal("Cannot delete category with transactions", blocked.Message)

	blockedAccount := s.actions.DeleteAccount(s.alice, account.ID.String())
	s.False(blockedAccount.Success)
	s.Equal("Cannot delete account with transactions", blockedAccount.Message)

	categories := s.actions.ListCategories(s.alice)
	s.Require().True(categories.Success, categories.Message)
	s.Require().Len(*categories.Data, 1)
	s.Equal(category.ID, (*categories.Data)[0].ID)
	s.Equal(int64(1), (*categories.Data)[0].TransactionCount)
	s.True(s.balanceOf(s.alice, account.ID.String()).Equal(decimal.NewFromInt(-50)))

	s.Require().True(s.actions.DeleteTransaction(s.alice, tx.ID.String()).Success)
	s.True(s.actions.DeleteCategory(s.alice, category.ID.String()).Success)
	s.True(s.actions.DeleteAccount(s.alice, account.ID.String()).Success)
}

func (s *EndToEndSuite) TestForeignRowsLookMissing() {
	account := s.createAccount(s.alice, "Wallet")
	category := s.createCategory(s.alice, "Food")
	tx := s.createTransaction(s.alice, account, category, 50, models.TransactionTypeDebit)

	update := s.actions.UpdateAccount(s.bob, account.ID.String(), "Stolen", "savings")
	s.False(update.Success)
	s.Equal("Account not found", update.Message)

	blankUpdate := s.actions.UpdateAccount(s.bob, account.ID.String(), "", "")
	s.False(blankUpdate.Success)
	s.Equal("Account not found", blankUpdate.Message)

	deleteCategory := s.actions.DeleteCategory(s.bob, category.ID.String())
	s.False(deleteCategory.Success)
	s.Equal("Category not found", deleteCategory.Message)

	deleteTx := s.actions.DeleteTransaction(s.bob, tx.ID.String())
	s.False(deleteTx.Success)
	s.Equal("Transaction not found", deleteTx.Message)

	bobAccount := s.createAccount(s.bob, "Bob's")
	crossed := s.actions.CreateTransaction(s.bob, NewTransaction{
		AccountID:  bobAccount.ID.String(),
		CategoryID: category.ID.String(),
		Amount:     decimal.NewFromInt(10),
		Type:       models.TransactionTypeCredit,
		Method:     models.PaymentMethodOnline,
	})
	s.False(crossed.Success)
	s.Equal("Account or category not found", crossed.Message)

	listed := s.actions.ListAccounts(s.bob)
	s.Require().True(listed.Success)
	s.Len(*listed.Data, 1)

	bobTransactions := s.actions.ListTransactions(s.bob, 10, 0)
	s.Require().True(bobTransactions.Success, bobTransactions.Message)
	s.Zero(bobTransactions.Data.Total)
	s.Empty(bobTransactions.Data.Transactions)

	aliceTransactions := s.actions.ListTransactions(s.alice, 10, 0)
	s.Require().True(aliceTransactions.Success, aliceTransactions.Message)
	s.Equal(int64(1), aliceTransactions.Data.Total)
}

func (s *EndToEndSuite) TestDuplicateCategoryIsCaseInsensitive() {
	s.createCategory(s.alice, "Food")

	r := s.actions.CreateCategory(s.alice, "  food ", nil)

	s.False(r.Success)
	s.Equal("Category already exists", r.Message)

	var rows int64
	s.Require().NoError(s.db.Model(&models.Category{}).Where("LOWER(name) = ?", "food").Count(&rows).Error)
	s.Equal(int64(1), rows)

	other := s.actions.CreateCategory(s.bob, "Food", nil)
	s.True(other.Success, "names are unique per user only")
}

func (s *EndToEndSuite) TestListTransactionsPaginates() {
	account := s.createAccount(s.alice, "Wallet")
	category := s.createCategory(s.alice, "Food")
	for i := 1; i <= 3; i++ {
		s.createTransaction(s.alice, account, category, int64(i*10), models.TransactionTypeDebit)
	}

	r := s.actions.ListTransactions(s.alice, 2, 0)
	s.Require().True(r.Success, r.Message)
	s.Equal(int64(3), r.Data.Total)
	s.Len(r.Data.Transactions, 2)

	rest := s.actions.ListTransactions(s.alice, 2, 2)
	s.Require().True(rest.Success, rest.Message)
	s.Len(rest.Data.Transactions, 1)
}

func (s *EndToEndSuite) TestInitializeDefaultsIsIdempotent() {
	first := s.actions.InitializeDefaults(s.alice)
	s.Require().True(first.Success, first.Message)
	s.False(first.Data.Skipped)
	s.Equal(10, first.Data.CategoriesCreated)
	s.True(first.Data.AccountCreated)

	second := s.actions.InitializeDefaults(s.alice)
	s.Require().True(second.Success, second.Message)
	s.True(second.Data.Skipped)

	options := s.actions.ListAccountOptions(s.alice)
	s.Require().True(options.Success)
	s.Require().Len(*options.Data, 1)
	s.Equal("Main", (*options.Data)[0].Name)

	categories := s.actions.ListCategoryOptions(s.alice)
	s.Require().True(categories.Success)
	s.Len(*categories.Data, 10)
}

func (s *EndToEndSuite) TestDashboard() {
	account := s.createAccount(s.alice, "Wallet")
	food := s.createCategory(s.alice, "Food")
	rent := s.createCategory(s.alice, "Rent")
	s.createTransaction(s.alice, account, food, 250, models.TransactionTypeDebit)
	s.createTransaction(s.alice, account, rent, 750, models.TransactionTypeDebit)

	r := s.actions.GetDashboard(s.alice)
	s.Require().True(r.Success, r.Message)

	summary := r.Data
	s.Equal(1, summary.AccountCount)
	s.True(summary.TotalBalance.Equal(decimal.NewFromInt(-1000)))
	s.True(summary.TotalSpending.Equal(decimal.NewFromInt(1000)))
	s.Require().Len(summary.Categories, 2)
	s.Equal("Rent", summary.Categories[0].Name)
	s.True(summary.Categories[0].Percentage.Equal(decimal.NewFromInt(75)))
	s.Equal(int64(2), summary.TransactionCount)
	s.Len(summary.RecentTransactions, 2)
}

func (s *EndToEndSuite) TestDefaultCreditAndBalance() {
	negative := s.actions.SetDefaultCredit(s.alice, decimal.NewFromInt(-1))
	s.False(negative.Success)
	s.Equal("Invalid initial amount", negative.Message)

	set := s.actions.SetDefaultCredit(s.alice, decimal.NewFromInt(2500))
	s.Require().True(set.Success, set.Message)

	balance := s.actions.GetUserBalance(s.alice)
	s.Require().True(balance.Success, balance.Message)
	s.True(balance.Data.Balance.Equal(decimal.NewFromInt(2500)))
}

func (s *EndToEndSuite) TestCreateTransactionRejectsAmountsTheColumnCannotHold() {
	account := s.createAccount(s.alice, "Wallet")
	category := s.createCategory(s.alice, "Food")

	for _, amount := range []string{"0.004", "10.005", "10000000000000", "1e20"} {
		r := s.actions.CreateTransaction(s.alice, NewTransaction{
			AccountID:  account.ID.String(),
			CategoryID: category.ID.String(),
			Amount:     decimal.RequireFromString(amount),
			Type:       models.TransactionTypeCredit,
			Method:     models.PaymentMethodCash,
		})
		s.False(r.Success, amount)
		s.Equal("Invalid amount", r.Message, amount)
	}

	largest := s.actions.CreateTransaction(s.alice, NewTransaction{
		AccountID:  account.ID.String(),
		CategoryID: category.ID.String(),
		Amount:     decimal.RequireFromString("9999999999999.99"),
		Type:       models.TransactionTypeCredit,
		Method:     models.PaymentMethodCash,
	})
	s.Require().True(largest.Success, largest.Message)

	listed := s.actions.ListTransactions(s.alice, 10, 0)
	s.Require().True(listed.Success, listed.Message)
	s.Equal(int64(1), listed.Data.Total)
	s.True(s.balanceOf(s.alice, account.ID.String()).Equal(decimal.RequireFromString("9999999999999.99")))
}

func (s *EndToEndSuite) TestDefaultCreditRejectsExtraDecimals() {
	r := s.actions.SetDefaultCredit(s.alice, decimal.RequireFromString("12.345"))

	s.False(r.Success)
	s.Equal("Invalid initial amount", r.Message)
}
