package services

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/repositories/repository_mocks"
	"finance-tracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// AccountServiceSuite defines the test suite for AccountServiceInterface
type AccountServiceSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	accountRepo   *repository_mocks.MockAccountRepositoryInterface
	metrics       *service_mocks.MockMetricsRecorderInterface
	activity      *service_mocks.MockActivityLoggerInterface
	service       *accountService
	ctx           context.Context
	testUserID    uuid.UUID
	testAccountID uuid.UUID
}

// SetupTest runs before each test in the suite
func (s *AccountServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.accountRepo = repository_mocks.NewMockAccountRepositoryInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.activity = service_mocks.NewMockActivityLoggerInterface(s.ctrl)
	s.service = NewAccountService(s.accountRepo, s.metrics, s.activity, discardLogger()).(*accountService)

	s.ctx = context.Background()
	s.testUserID = uuid.New()
	s.testAccountID = uuid.New()
}

// TearDownTest runs after each test in the suite
func (s *AccountServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestAccountServiceSuite runs the test suite
func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceSuite))
}

func (s *AccountServiceSuite) TestListAccounts_DerivesBalances() {
	accounts := []models.Account{
		{
			ID:     s.testAccountID,
			UserID: s.testUserID,
			Name:   "Main",
			Type:   models.AccountTypeSavings,
			Transactions: []models.Transaction{
				{Amount: decimal.NewFromInt(500), Type: models.TransactionTypeDebit},
				{Amount: decimal.NewFromInt(1000), Type: models.TransactionTypeCredit},
			},
		},
		{
			ID:     uuid.New(),
			UserID: s.testUserID,
			Name:   "Empty",
			Type:   models.AccountTypeOther,
		},
	}
	s.accountRepo.EXPECT().ListWithTransactions(s.ctx, s.testUserID).Return(accounts, nil)

	result, err := s.service.ListAccounts(s.ctx, s.testUserID)

	s.Require().NoError(err)
	s.Require().Len(result, 2)
	s.True(decimal.NewFromInt(500).Equal(result[0].Balance))
	s.Nil(result[0].Transactions)
	s.True(result[1].Balance.IsZero())
}

func (s *AccountServiceSuite) TestListAccounts_RepositoryError() {
	s.accountRepo.EXPECT().ListWithTransactions(s.ctx, s.testUserID).Return(nil, errors.New("connection refused"))

	result, err := s.service.ListAccounts(s.ctx, s.testUserID)

	s.Error(err)
	s.Nil(result)
	s.Equal(apperrors.KindUnexpected, apperrors.KindOf(err))
}

func (s *AccountServiceSuite) TestListAccountOptions() {
	s.accountRepo.EXPECT().ListOwned(s.ctx, s.testUserID).Return([]models.Account{
		{ID: s.testAccountID, Name: "Main"},
	}, nil)

	options, err := s.service.ListAccountOptions(s.ctx, s.testUserID)

	s.Require().NoError(err)
	s.Equal([]models.NamedOption{{ID: s.testAccountID.String(), Name: "Main"}}, options)
}

func (s *AccountServiceSuite) TestCreateAccount_Success() {
	s.accountRepo.EXPECT().Create(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, account *models.Account) error {
			account.ID = s.testAccountID
			account.CreatedAt = time.Now()
			return nil
		})
	s.metrics.EXPECT().IncrementCounter("entity_created", map[string]string{"entity": "account"})
	s.activity.EXPECT().LogAccountCreated(s.ctx, s.testUserID, s.testAccountID, models.AccountTypeSavings)

	account, err := s.service.CreateAccount(s.ctx, s.testUserID, "  Main  ", "Savings")

	s.Require().NoError(err)
	s.Equal(s.testAccountID, account.ID)
	s.Equal(s.testUserID, account.UserID)
	s.Equal("Main", account.Name)
	s.Equal(models.AccountTypeSavings, account.Type)
}

func (s *AccountServiceSuite) TestCreateAccount_MissingFields() {
	tests := []struct {
		name        string
		accountName string
		accountType string
	}{
		{name: "empty name", accountName: "", accountType: "savings"},
		{name: "whitespace name", accountName: "   ", accountType: "savings"},
		{name: "empty type", accountName: "Main", accountType: ""},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			account, err := s.service.CreateAccount(s.ctx, s.testUserID, tt.accountName, tt.accountType)
			s.Nil(account)
			s.True(apperrors.HasCode(err, apperrors.ValidationAccountFields))
			s.Equal(apperrors.KindValidation, apperrors.KindOf(err))
		})
	}
}

func (s *AccountServiceSuite) TestCreateAccount_InvalidType() {
	account, err := s.service.CreateAccount(s.ctx, s.testUserID, "Main", "crypto")

	s.Nil(account)
	s.True(apperrors.HasCode(err, apperrors.ValidationAccountType))
}

func (s *AccountServiceSuite) TestUpdateAccount_Success() {
	existing := &models.Account{ID: s.testAccountID, UserID: s.testUserID, Name: "Main", Type: models.AccountTypeSavings}
	s.accountRepo.EXPECT().FindOwned(s.ctx, s.testAccountID, s.testUserID).Return(existing, nil)
	s.accountRepo.EXPECT().Update(s.ctx, existing).Return(nil)
	s.activity.EXPECT().LogAccountUpdated(s.ctx, s.testUserID, s.testAccountID)

	account, err := s.service.UpdateAccount(s.ctx, s.testUserID, s.testAccountID, "Brokerage", "investment")

	s.Require().NoError(err)
	s.Equal("Brokerage", account.Name)
	s.Equal(models.AccountTypeInvestment, account.Type)
}

func (s *AccountServiceSuite) TestUpdateAccount_NotOwned() {
	s.accountRepo.EXPECT().FindOwned(s.ctx, s.testAccountID, s.testUserID).Return(nil, repositories.ErrNotFound)

	account, err := s.service.UpdateAccount(s.ctx, s.testUserID, s.testAccountID, "Main", "savings")

	s.Nil(account)
	s.True(apperrors.HasCode(err, apperrors.AccountNotFound))
	s.Equal(apperrors.KindNotFound, apperrors.KindOf(err))
}

func (s *AccountServiceSuite) TestUpdateAccount_NotOwnedWinsOverInvalidFields() {
	s.accountRepo.EXPECT().FindOwned(s.ctx, s.testAccountID, s.testUserID).Return(nil, repositories.ErrNotFound)

	account, err := s.service.UpdateAccount(s.ctx, s.testUserID, s.testAccountID, "", "")

	s.Nil(account)
	s.True(apperrors.HasCode(err, apperrors.AccountNotFound))
}

func (s *AccountServiceSuite) TestUpdateAccount_InvalidFieldsOnOwnedAccount() {
	existing := &models.Account{ID: s.testAccountID, UserID: s.testUserID, Name: "Main", Type: models.AccountTypeSavings}
	s.accountRepo.EXPECT().FindOwned(s.ctx, s.testAccountID, s.testUserID).Return(existing, nil)

	account, err := s.service.UpdateAccount(s.ctx, s.testUserID, s.testAccountID, "  ", "savings")

	s.Nil(account)
	s.True(apperrors.HasCode(err, apperrors.ValidationAccountFields))
	s.Equal("Main", existing.Name)
}

func (s *AccountServiceSuite) TestDeleteAccount_Success() {
	s.accountRepo.EXPECT().FindOwned(s.ctx, s.testAccountID, s.testUserID).Return(&models.Account{ID: s.testAccountID}, nil)
	s.accountRepo.EXPECT().CountTransactions(s.ctx, s.testAccountID).Return(int64(0), nil)
	s.accountRepo.EXPECT().DeleteOwned(s.ctx, s.testAccountID, s.testUserID).Return(nil)
	s.metrics.EXPECT().IncrementCounter("entity_deleted", map[string]string{"entity": "account"})
	s.activity.EXPECT().LogAccountDeleted(s.ctx, s.testUserID, s.testAccountID)

	s.NoError(s.service.DeleteAccount(s.ctx, s.testUserID, s.testAccountID))
}

func (s *AccountServiceSuite) TestDeleteAccount_NotFound() {
	s.accountRepo.EXPECT().FindOwned(s.ctx, s.testAccountID, s.testUserID).Return(nil, repositories.ErrNotFound)

	err := s.service.DeleteAccount(s.ctx, s.testUserID, s.testAccountID)

	s.True(apperrors.HasCode(err, apperrors.AccountNotFound))
}

func (s *AccountServiceSuite) TestDeleteAccount_WithTransactions() {
	s.accountRepo.EXPECT().FindOwned(s.ctx, s.testAccountID, s.testUserID).Return(&models.Account{ID: s.testAccountID}, nil)
	s.accountRepo.EXPECT().CountTransactions(s.ctx, s.testAccountID).Return(int64(3), nil)
	s.metrics.EXPECT().IncrementCounter("business_rule_violation", map[string]string{"operation": "delete_account"})
	s.activity.EXPECT().LogBusinessRuleViolation(s.ctx, "delete_account", s.testUserID, gomock.Any())

	err := s.service.DeleteAccount(s.ctx, s.testUserID, s.testAccountID)

	s.True(apperrors.HasCode(err, apperrors.AccountHasTransactions))
	s.Equal(apperrors.KindBusinessRule, apperrors.KindOf(err))
}
