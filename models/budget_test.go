package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/opencivic/ledger/types"
)

func budgetWith(kind types.CategoryKind, planned string, actual string) Budget {
	return Budget{
		Kind:          kind,
		PlannedAmount: decimal.RequireFromString(planned),
		ActualAmount:  decimal.RequireFromString(actual),
	}
}

func TestBudgetProgressZeroPlanned(t *testing.T) {
	for _, kind := range []types.CategoryKind{types.KindIncome, types.KindExpense} {
		progress := budgetWith(kind, "0", "500").Progress()

		assert.True(t, progress.Percentage.IsZero())
	}
}

func TestBudgetProgressExpenseClassification(t *testing.T) {
	cases := []struct {
		planned        string
		actual         string
		percentage     string
		classification string
	}{
		{"1000", "0", "0", "healthy"},
		{"1000", "750", "75", "healthy"},
		{"1000", "800", "80", "watch"},
		{"1000", "900", "90", "watch"},
		{"1000", "950", "95", "tight"},
		{"1000", "1000", "100", "tight"},
		{"1000", "1250", "125", "over-budget"},
	}

	for _, c := range cases {
		progress := budgetWith(types.KindExpense, c.planned, c.actual).Progress()

		assert.True(t, progress.Percentage.Equal(decimal.RequireFromString(c.percentage)), "percentage %s != %s", progress.Percentage, c.percentage)
		assert.Equal(t, c.classification, progress.Classification)
	}
}

func TestBudgetProgressIncomeClassification(t *testing.T) {
	cases := []struct {
		planned        string
		actual         string
		classification string
	}{
		{"1000", "1000", "met"},
		{"1000", "1100", "met"},
		{"1000", "750", "on-track"},
		{"1000", "999", "on-track"},
		{"1000", "500", "behind"},
		{"1000", "749", "behind"},
		{"1000", "499", "at-risk"},
		{"1000", "0", "at-risk"},
	}

	for _, c := range cases {
		progress := budgetWith(types.KindIncome, c.planned, c.actual).Progress()

		assert.Equal(t, c.classification, progress.Classification)
	}
}

func TestBudgetPeriodValidation(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	budget := Budget{PeriodStart: start}

	assert.True(t, budget.ValidatePeriodEnd(start))
	assert.True(t, budget.ValidatePeriodEnd(start.AddDate(0, 3, 0)))
	assert.False(t, budget.ValidatePeriodEnd(start.AddDate(0, 0, -1)))
}

func TestBudgetKindValidation(t *testing.T) {
	budget := Budget{}

	assert.True(t, budget.ValidateKind(types.KindIncome))
	assert.True(t, budget.ValidateKind(types.KindExpense))
	assert.False(t, budget.ValidateKind("transfer"))
}
