package report_service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/opencivic/ledger/models"
	"github.com/opencivic/ledger/types"
)

func transaction(kind types.CategoryKind, amount string, date time.Time, categoryID int64) models.FinanceTransaction {
	t := models.FinanceTransaction{
		Kind:            kind,
		Amount:          decimal.RequireFromString(amount),
		Currency:        "USD",
		PaymentStatus:   types.PaymentStatusCompleted,
		TransactionDate: date,
	}

	if categoryID > 0 {
		t.CategoryID = sql.NullInt64{Int64: categoryID, Valid: true}
	}

	return t
}

func TestBucketMonthlyEmpty(t *testing.T) {
	assert.Empty(t, BucketMonthly(nil))
}

func TestBucketMonthlyChronological(t *testing.T) {
	transactions := []models.FinanceTransaction{
		transaction(types.KindExpense, "30", time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC), 0),
		transaction(types.KindIncome, "100", time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC), 0),
		transaction(types.KindIncome, "50", time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC), 0),
		transaction(types.KindExpense, "20", time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), 0),
	}

	buckets := BucketMonthly(transactions)

	assert.Len(t, buckets, 3)
	assert.Equal(t, "2025-11", buckets[0].Month)
	assert.Equal(t, "2026-01", buckets[1].Month)
	assert.Equal(t, "2026-02", buckets[2].Month)

	assert.True(t, buckets[0].Income.Equal(decimal.RequireFromString("50")))
	assert.True(t, buckets[0].Expenses.Equal(decimal.RequireFromString("30")))
	assert.True(t, buckets[1].Expenses.Equal(decimal.RequireFromString("20")))
	assert.True(t, buckets[2].Income.Equal(decimal.RequireFromString("100")))
}

func TestBucketMonthlyZeroPaddedKeys(t *testing.T) {
	transactions := []models.FinanceTransaction{
		transaction(types.KindIncome, "1", time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), 0),
		transaction(types.KindIncome, "1", time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), 0),
	}

	buckets := BucketMonthly(transactions)

	// Lexicographic order on yyyy-mm must stay chronological.
	assert.Equal(t, "2026-09", buckets[0].Month)
	assert.Equal(t, "2026-10", buckets[1].Month)
}

func TestBreakdownByCategory(t *testing.T) {
	now := time.Now()

	transactions := []models.FinanceTransaction{
		transaction(types.KindExpense, "40", now, 1),
		transaction(types.KindExpense, "10", now, 1),
		transaction(types.KindExpense, "25", now, 2),
	}

	slices := BreakdownByCategory(transactions, map[int64]string{1: "Utilities", 2: "Events"})

	assert.Len(t, slices, 2)
	assert.Equal(t, "Events", slices[0].Name)
	assert.True(t, slices[0].Value.Equal(decimal.RequireFromString("25")))
	assert.Equal(t, "Utilities", slices[1].Name)
	assert.True(t, slices[1].Value.Equal(decimal.RequireFromString("50")))
}

func TestBreakdownMergesSameNamedCategories(t *testing.T) {
	now := time.Now()

	transactions := []models.FinanceTransaction{
		transaction(types.KindExpense, "40", now, 1),
		transaction(types.KindExpense, "25", now, 2),
	}

	// Two distinct categories sharing one name collapse to one slice.
	slices := BreakdownByCategory(transactions, map[int64]string{1: "Events", 2: "Events"})

	assert.Len(t, slices, 1)
	assert.Equal(t, "Events", slices[0].Name)
	assert.True(t, slices[0].Value.Equal(decimal.RequireFromString("65")))
}

func TestBreakdownMergesUnknownIDsIntoUncategorized(t *testing.T) {
	now := time.Now()

	transactions := []models.FinanceTransaction{
		transaction(types.KindExpense, "15", now, 0),
		transaction(types.KindExpense, "30", now, 7),
	}

	// Category 7 was deleted; its transactions join the untagged ones.
	slices := BreakdownByCategory(transactions, map[int64]string{})

	assert.Len(t, slices, 1)
	assert.Equal(t, "uncategorized", slices[0].Name)
	assert.True(t, slices[0].Value.Equal(decimal.RequireFromString("45")))
}

func TestBreakdownFallsBackToUncategorized(t *testing.T) {
	now := time.Now()

	transactions := []models.FinanceTransaction{
		transaction(types.KindExpense, "15", now, 0),
		transaction(types.KindExpense, "5", now, 0),
		transaction(types.KindExpense, "30", now, 7),
	}

	slices := BreakdownByCategory(transactions, map[int64]string{7: "Maintenance"})

	assert.Len(t, slices, 2)
	assert.Equal(t, "Maintenance", slices[0].Name)
	assert.Equal(t, "uncategorized", slices[1].Name)
	assert.True(t, slices[1].Value.Equal(decimal.RequireFromString("20")))
}

func TestSameNamedCategoriesOfDifferentKindsNeverMerge(t *testing.T) {
	now := time.Now()

	// Category 1 is income "Events", category 2 is expense "Events".
	// Breakdown queries are kind-scoped, so each call only ever sees
	// one of them.
	income := []models.FinanceTransaction{
		transaction(types.KindIncome, "500", now, 1),
	}
	expense := []models.FinanceTransaction{
		transaction(types.KindExpense, "120", now, 2),
	}

	income_slices := BreakdownByCategory(income, map[int64]string{1: "Events"})
	expense_slices := BreakdownByCategory(expense, map[int64]string{2: "Events"})

	assert.Len(t, income_slices, 1)
	assert.Len(t, expense_slices, 1)
	assert.True(t, income_slices[0].Value.Equal(decimal.RequireFromString("500")))
	assert.True(t, expense_slices[0].Value.Equal(decimal.RequireFromString("120")))
}
