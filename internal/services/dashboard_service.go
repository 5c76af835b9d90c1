package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const dashboardRecentTransactions = 10

type dashboardService struct {
	accountRepo     repositories.AccountRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	userService     UserServiceInterface
	logger          *slog.Logger
	now             func() time.Time
}

func NewDashboardService(
	accountRepo repositories.AccountRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	userService UserServiceInterface,
	logger *slog.Logger,
) DashboardServiceInterface {
	return &dashboardService{
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		userService:     userService,
		logger:          logger,
		now:             time.Now,
	}
}

// GetSummary loads accounts, categories, recent transactions and the currency
// concurrently and folds them into the dashboard aggregates.
func (s *dashboardService) GetSummary(ctx context.Context, userID uuid.UUID) (*models.DashboardSummary, error) {
	var (
		accounts   []models.Account
		categories []models.Category
		recent     []models.Transaction
		total      int64
		currency   string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if accounts, err = s.accountRepo.ListWithTransactions(gctx, userID); err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if categories, err = s.categoryRepo.ListWithTransactions(gctx, userID); err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if recent, total, err = s.transactionRepo.ListPage(gctx, userID, dashboardRecentTransactions, 0); err != nil {
			return fmt.Errorf("failed to list recent transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		currency, err = s.userService.GetCurrency(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return BuildDashboard(
		accountsWithBalance(accounts),
		categoriesWithStats(categories),
		recent,
		total,
		currency,
		s.now(),
	), nil
}
