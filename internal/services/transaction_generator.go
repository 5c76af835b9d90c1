package services

import (
	"strings"

	"finance-tracker/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

type transactionGenerator struct {
	faker *gofakeit.Faker
}

// NewTransactionGenerator creates a generator. A zero seed picks a random one.
func NewTransactionGenerator(seed uint64) TransactionGeneratorInterface {
	return &transactionGenerator{faker: gofakeit.New(seed)}
}

// Generate returns count inputs spread over the given accounts and categories.
// Salary-like categories produce credits; everything else is mostly debits.
func (g *transactionGenerator) Generate(accounts []models.Account, categories []models.Category, count int) []models.TransactionInput {
	if len(accounts) == 0 || len(categories) == 0 || count <= 0 {
		return nil
	}

	inputs := make([]models.TransactionInput, 0, count)
	for i := 0; i < count; i++ {
		account := accounts[g.faker.IntN(len(accounts))]
		category := categories[g.faker.IntN(len(categories))]

		txType := g.transactionType(category.Name)
		inputs = append(inputs, models.TransactionInput{
			AccountID:  account.ID,
			CategoryID: category.ID,
			Amount:     g.amount(category.Name, txType),
			Type:       txType,
			Method:     g.faker.RandomString([]string{models.PaymentMethodCash, models.PaymentMethodOnline}),
			Remarks:    g.faker.Company(),
		})
	}
	return inputs
}

// transactionType uses a 60/40 debit/credit split outside income categories
func (g *transactionGenerator) transactionType(categoryName string) string {
	if isIncomeCategory(categoryName) {
		return models.TransactionTypeCredit
	}
	if g.faker.Float64() < 0.60 {
		return models.TransactionTypeDebit
	}
	return models.TransactionTypeCredit
}

func (g *transactionGenerator) amount(categoryName, txType string) decimal.Decimal {
	minValue, maxValue := amountRange(categoryName)
	if txType == models.TransactionTypeCredit && !isIncomeCategory(categoryName) {
		minValue, maxValue = 10, 200
	}
	return decimal.NewFromFloat(g.faker.Float64Range(minValue, maxValue)).Round(2)
}

func amountRange(categoryName string) (float64, float64) {
	ranges := map[string][2]float64{
		"food":              {8, 120},
		"groceries":         {15, 250},
		"transportation":    {10, 80},
		"entertainment":     {10, 60},
		"shopping":          {25, 450},
		"bills & utilities": {50, 250},
		"healthcare":        {20, 300},
		"education":         {30, 200},
		"salary":            {2000, 8000},
	}

	if r, exists := ranges[strings.ToLower(categoryName)]; exists {
		return r[0], r[1]
	}
	return 10, 100
}

func isIncomeCategory(name string) bool {
	name = strings.ToLower(name)
	return name == "salary" || name == "income"
}
