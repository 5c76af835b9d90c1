package services

import (
	"sort"
	"time"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AccountBalance folds an account's transactions into its balance:
// credits add, debits subtract.
func AccountBalance(txs []models.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for i := range txs {
		balance = balance.Add(txs[i].SignedAmount())
	}
	return balance
}

// CategoryStats returns the number of transactions and the sum of their
// amounts. Credits and debits both count positively.
func CategoryStats(txs []models.Transaction) (int64, decimal.Decimal) {
	total := decimal.Zero
	for i := range txs {
		total = total.Add(txs[i].Amount)
	}
	return int64(len(txs)), total
}

func accountsWithBalance(accounts []models.Account) []models.AccountWithBalance {
	out := make([]models.AccountWithBalance, 0, len(accounts))
	for _, account := range accounts {
		balance := AccountBalance(account.Transactions)
		account.Transactions = nil
		out = append(out, models.AccountWithBalance{Account: account, Balance: balance})
	}
	return out
}

func categoriesWithStats(categories []models.Category) []models.CategoryWithStats {
	out := make([]models.CategoryWithStats, 0, len(categories))
	for _, category := range categories {
		count, total := CategoryStats(category.Transactions)
		category.Transactions = nil
		out = append(out, models.CategoryWithStats{
			Category:         category,
			TransactionCount: count,
			TotalAmount:      total,
		})
	}
	return out
}

// BuildDashboard assembles the dashboard aggregates from already-folded
// accounts and categories.
func BuildDashboard(
	accounts []models.AccountWithBalance,
	categories []models.CategoryWithStats,
	recent []models.Transaction,
	transactionCount int64,
	currency string,
	now time.Time,
) *models.DashboardSummary {
	totalBalance := decimal.Zero
	for _, account := range accounts {
		totalBalance = totalBalance.Add(account.Balance)
	}

	totalSpending := decimal.Zero
	for _, category := range categories {
		totalSpending = totalSpending.Add(category.TotalAmount)
	}

	average := decimal.Zero
	if len(categories) > 0 {
		average = totalSpending.Div(decimal.NewFromInt(int64(len(categories)))).Round(2)
	}

	shares := make([]models.CategoryShare, 0, len(categories))
	for _, category := range categories {
		percentage := decimal.Zero
		if totalSpending.IsPositive() {
			percentage = category.TotalAmount.Div(totalSpending).Mul(hundred).Round(2)
		}
		shares = append(shares, models.CategoryShare{
			ID:               category.ID.String(),
			Name:             category.Name,
			TransactionCount: category.TransactionCount,
			TotalAmount:      category.TotalAmount,
			Percentage:       percentage,
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].TotalAmount.GreaterThan(shares[j].TotalAmount)
	})

	if accounts == nil {
		accounts = []models.AccountWithBalance{}
	}
	if recent == nil {
		recent = []models.Transaction{}
	}

	return &models.DashboardSummary{
		TotalBalance:       totalBalance,
		AccountCount:       len(accounts),
		Accounts:           accounts,
		TotalSpending:      totalSpending,
		AveragePerCategory: average,
		Categories:         shares,
		RecentTransactions: recent,
		TransactionCount:   transactionCount,
		Currency:           currency,
		GeneratedAt:        now,
	}
}
