package services

import (
	"testing"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txOf(amount int64, txType string) models.Transaction {
	return models.Transaction{Amount: decimal.NewFromInt(amount), Type: txType}
}

func TestAccountBalance(t *testing.T) {
	tests := []struct {
		name     string
		txs      []models.Transaction
		expected int64
	}{
		{name: "no transactions", txs: nil, expected: 0},
		{name: "single debit", txs: []models.Transaction{txOf(500, models.TransactionTypeDebit)}, expected: -500},
		{
			name: "debit then credit",
			txs: []models.Transaction{
				txOf(500, models.TransactionTypeDebit),
				txOf(1000, models.TransactionTypeCredit),
			},
			expected: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, decimal.NewFromInt(tt.expected).Equal(AccountBalance(tt.txs)))
		})
	}
}

func TestCategoryStats_CountsBothDirections(t *testing.T) {
	count, total := CategoryStats([]models.Transaction{
		txOf(500, models.TransactionTypeDebit),
		txOf(1000, models.TransactionTypeCredit),
	})

	assert.Equal(t, int64(2), count)
	assert.True(t, decimal.NewFromInt(1500).Equal(total))
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	food := models.CategoryWithStats{
		Category:         models.Category{ID: uuid.New(), Name: "Food"},
		TransactionCount: 1,
		TotalAmount:      decimal.NewFromInt(250),
	}
	rent := models.CategoryWithStats{
		Category:         models.Category{ID: uuid.New(), Name: "Rent"},
		TransactionCount: 2,
		TotalAmount:      decimal.NewFromInt(750),
	}
	accounts := []models.AccountWithBalance{
		{Account: models.Account{Name: "Main"}, Balance: decimal.NewFromInt(1000)},
		{Account: models.Account{Name: "Card"}, Balance: decimal.NewFromInt(-200)},
	}

	summary := BuildDashboard(accounts, []models.CategoryWithStats{food, rent}, nil, 3, "Rs", now)

	assert.True(t, decimal.NewFromInt(800).Equal(summary.TotalBalance))
	assert.Equal(t, 2, summary.AccountCount)
	assert.True(t, decimal.NewFromInt(1000).Equal(summary.TotalSpending))
	assert.True(t, decimal.NewFromInt(500).Equal(summary.AveragePerCategory))
	require.Len(t, summary.Categories, 2)
	assert.Equal(t, "Rent", summary.Categories[0].Name)
	assert.True(t, decimal.NewFromInt(75).Equal(summary.Categories[0].Percentage))
	assert.True(t, decimal.NewFromInt(25).Equal(summary.Categories[1].Percentage))
	assert.NotNil(t, summary.RecentTransactions)
	assert.Equal(t, int64(3), summary.TransactionCount)
	assert.Equal(t, "Rs", summary.Currency)
	assert.Equal(t, now, summary.GeneratedAt)
}

func TestBuildDashboard_NoSpending(t *testing.T) {
	empty := models.CategoryWithStats{Category: models.Category{ID: uuid.New(), Name: "Other"}}

	summary := BuildDashboard(nil, []models.CategoryWithStats{empty}, nil, 0, "Rs", time.Now())

	assert.True(t, summary.TotalBalance.IsZero())
	assert.True(t, summary.AveragePerCategory.IsZero())
	require.Len(t, summary.Categories, 1)
	assert.True(t, summary.Categories[0].Percentage.IsZero())
	assert.NotNil(t, summary.Accounts)
}
