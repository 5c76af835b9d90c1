package services

import (
	"context"
	"testing"

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

type CategoryServiceSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	categoryRepo   *repository_mocks.MockCategoryRepositoryInterface
	metrics        *service_mocks.MockMetricsRecorderInterface
	activity       *service_mocks.MockActivityLoggerInterface
	service        CategoryServiceInterface
	ctx            context.Context
	testUserID     uuid.UUID
	testCategoryID uuid.UUID
}

func (s *CategoryServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.categoryRepo = repository_mocks.NewMockCategoryRepositoryInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.activity = service_mocks.NewMockActivityLoggerInterface(s.ctrl)
	s.service = NewCategoryService(s.categoryRepo, s.metrics, s.activity, discardLogger())

	s.ctx = context.Background()
	s.testUserID = uuid.New()
	s.testCategoryID = uuid.New()
}

func (s *CategoryServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceSuite))
}

func (s *CategoryServiceSuite) TestListCategories_UnsignedTotals() {
	s.categoryRepo.EXPECT().ListWithTransactions(s.ctx, s.testUserID).Return([]models.Category{
		{
			ID:   s.testCategoryID,
			Name: "Groceries",
			Transactions: []models.Transaction{
				{Amount: decimal.NewFromInt(500), Type: models.TransactionTypeDebit},
				{Amount: decimal.NewFromInt(250), Type: models.TransactionTypeCredit},
			},
		},
		{ID: uuid.New(), Name: "Other"},
	}, nil)

	categories, err := s.service.ListCategories(s.ctx, s.testUserID)

	s.Require().NoError(err)
	s.Require().Len(categories, 2)
	s.Equal(int64(2), categories[0].TransactionCount)
	s.True(decimal.NewFromInt(750).Equal(categories[0].TotalAmount))
	s.Equal(int64(0), categories[1].TransactionCount)
	s.True(categories[1].TotalAmount.IsZero())
}

func (s *CategoryServiceSuite) TestListCategoryOptions() {
	s.categoryRepo.EXPECT().ListOwned(s.ctx, s.testUserID).Return([]models.Category{
		{ID: s.testCategoryID, Name: "Food"},
	}, nil)

	options, err := s.service.ListCategoryOptions(s.ctx, s.testUserID)

	s.Require().NoError(err)
	s.Equal([]models.NamedOption{{ID: s.testCategoryID.String(), Name: "Food"}}, options)
}

func (s *CategoryServiceSuite) TestCreateCategory_Success() {
	categoryType := " expense "
	s.categoryRepo.EXPECT().ExistsByName(s.ctx, s.testUserID, "Groceries", uuid.Nil).Return(false, nil)
	s.categoryRepo.EXPECT().Create(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, category *models.Category) error {
			category.ID = s.testCategoryID
			return nil
		})
	s.metrics.EXPECT().IncrementCounter("entity_created", map[string]string{"entity": "category"})
	s.activity.EXPECT().LogCategoryCreated(s.ctx, s.testUserID, s.testCategoryID, "Groceries")

	category, err := s.service.CreateCategory(s.ctx, s.testUserID, "  Groceries ", &categoryType)

	s.Require().NoError(err)
	s.Equal("Groceries", category.Name)
	s.Require().NotNil(category.Type)
	s.Equal("expense", *category.Type)
}

func (s *CategoryServiceSuite) TestCreateCategory_EmptyName() {
	category, err := s.service.CreateCategory(s.ctx, s.testUserID, "   ", nil)

	s.Nil(category)
	s.True(apperrors.HasCode(err, apperrors.ValidationCategoryName))
	s.Equal("Category name is required", apperrors.MessageOf(err, ""))
}

func (s *CategoryServiceSuite) TestCreateCategory_Duplicate() {
	s.categoryRepo.EXPECT().ExistsByName(s.ctx, s.testUserID, "groceries", uuid.Nil).Return(true, nil)
	s.metrics.EXPECT().IncrementCounter("business_rule_violation", map[string]string{"operation": "create_category"})
	s.activity.EXPECT().LogBusinessRuleViolation(s.ctx, "create_category", s.testUserID, gomock.Any())

	category, err := s.service.CreateCategory(s.ctx, s.testUserID, "groceries", nil)

	s.Nil(category)
	s.True(apperrors.HasCode(err, apperrors.CategoryAlreadyExists))
	s.Equal(apperrors.KindBusinessRule, apperrors.KindOf(err))
}

func (s *CategoryServiceSuite) TestCreateCategory_DuplicateCaughtByIndex() {
	s.categoryRepo.EXPECT().ExistsByName(s.ctx, s.testUserID, "Groceries", uuid.Nil).Return(false, nil)
	s.categoryRepo.EXPECT().Create(s.ctx, gomock.Any()).Return(repositories.ErrDuplicate)
	s.metrics.EXPECT().IncrementCounter("business_rule_violation", map[string]string{"operation": "create_category"})
	s.activity.EXPECT().LogBusinessRuleViolation(s.ctx, "create_category", s.testUserID, gomock.Any())

	category, err := s.service.CreateCategory(s.ctx, s.testUserID, "Groceries", nil)

	s.Nil(category)
	s.True(apperrors.HasCode(err, apperrors.CategoryAlreadyExists))
}

func (s *CategoryServiceSuite) TestUpdateCategory_DuplicateCaughtByIndex() {
	existing := &models.Category{ID: s.testCategoryID, UserID: s.testUserID, Name: "Food"}
	s.categoryRepo.EXPECT().FindOwned(s.ctx, s.testCategoryID, s.testUserID).Return(existing, nil)
	s.categoryRepo.EXPECT().ExistsByName(s.ctx, s.testUserID, "Dining", s.testCategoryID).Return(false, nil)
	s.categoryRepo.EXPECT().Update(s.ctx, existing).Return(repositories.ErrDuplicate)
	s.metrics.EXPECT().IncrementCounter("business_rule_violation", map[string]string{"operation": "update_category"})
	s.activity.EXPECT().LogBusinessRuleViolation(s.ctx, "update_category", s.testUserID, gomock.Any())

	category, err := s.service.UpdateCategory(s.ctx, s.testUserID, s.testCategoryID, "Dining")

	s.Nil(category)
	s.True(apperrors.HasCode(err, apperrors.CategoryAlreadyExists))
}

func (s *CategoryServiceSuite) TestUpdateCategory_NotOwnedWinsOverEmptyName() {
	s.categoryRepo.EXPECT().FindOwned(s.ctx, s.testCategoryID, s.testUserID).Return(nil, repositories.ErrNotFound)

	category, err := s.service.UpdateCategory(s.ctx, s.testUserID, s.testCategoryID, "  ")

	s.Nil(category)
	s.True(apperrors.HasCode(err, apperrors.CategoryNotFound))
}

func (s *CategoryServiceSuite) TestUpdateCategory_Success() {
	existing := &models.Category{ID: s.testCategoryID, UserID: s.testUserID, Name: "Food"}
	s.categoryRepo.EXPECT().FindOwned(s.ctx, s.testCategoryID, s.testUserID).Return(existing, nil)
	s.categoryRepo.EXPECT().ExistsByName(s.ctx, s.testUserID, "Dining", s.testCategoryID).Return(false, nil)
	s.categoryRepo.EXPECT().Update(s.ctx, existing).Return(nil)

	category, err := s.service.UpdateCategory(s.ctx, s.testUserID, s.testCategoryID, "Dining")

	s.Require().NoError(err)
	s.Equal("Dining", category.Name)
}

func (s *CategoryServiceSuite) TestUpdateCategory_NotOwned() {
	s.categoryRepo.EXPECT().FindOwned(s.ctx, s.testCategoryID, s.testUserID).Return(nil, repositories.ErrNotFound)

	category, err := s.service.UpdateCategory(s.ctx, s.testUserID, s.testCategoryID, "Dining")

	s.Nil(category)
	s.True(apperrors.HasCode(err, apperrors.CategoryNotFound))
}

func (s *CategoryServiceSuite) TestDeleteCategory_Success() {
	s.categoryRepo.EXPECT().FindOwned(s.ctx, s.testCategoryID, s.testUserID).Return(&models.Category{ID: s.testCategoryID}, nil)
	s.categoryRepo.EXPECT().CountTransactions(s.ctx, s.testCategoryID).Return(int64(0), nil)
	s.categoryRepo.EXPECT().DeleteOwned(s.ctx, s.testCategoryID, s.testUserID).Return(nil)
	s.metrics.EXPECT().IncrementCounter("entity_deleted", map[string]string{"entity": "category"})
	s.activity.EXPECT().LogCategoryDeleted(s.ctx, s.testUserID, s.testCategoryID)

	s.NoError(s.service.DeleteCategory(s.ctx, s.testUserID, s.testCategoryID))
}

func (s *CategoryServiceSuite) TestDeleteCategory_WithTransactions() {
	s.categoryRepo.EXPECT().FindOwned(s.ctx, s.testCategoryID, s.testUserID).Return(&models.Category{ID: s.testCategoryID}, nil)
	s.categoryRepo.EXPECT().CountTransactions(s.ctx, s.testCategoryID).Return(int64(1), nil)
	s.metrics.EXPECT().IncrementCounter("business_rule_violation", map[string]string{"operation": "delete_category"})
	s.activity.EXPECT().LogBusinessRuleViolation(s.ctx, "delete_category", s.testUserID, gomock.Any())

	err := s.service.DeleteCategory(s.ctx, s.testUserID, s.testCategoryID)

	s.True(apperrors.HasCode(err, apperrors.CategoryHasTransactions))
	s.Equal("Cannot delete category with transactions", apperrors.MessageOf(err, ""))
}

func (s *CategoryServiceSuite) TestDeleteCategory_NotFound() {
	s.categoryRepo.EXPECT().FindOwned(s.ctx, s.testCategoryID, s.testUserID).Return(nil, repositories.ErrNotFound)

	err := s.service.DeleteCategory(s.ctx, s.testUserID, s.testCategoryID)

	s.True(apperrors.HasCode(err, apperrors.CategoryNotFound))
}
