package summary_service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/opencivic/ledger/models"
	"github.com/opencivic/ledger/types"
)

func transaction(kind types.CategoryKind, amount string, date time.Time) models.FinanceTransaction {
	return models.FinanceTransaction{
		Kind:            kind,
		Amount:          decimal.RequireFromString(amount),
		Currency:        "USD",
		PaymentStatus:   types.PaymentStatusCompleted,
		TransactionDate: date,
	}
}

func TestComputeEmptyOrg(t *testing.T) {
	summary := Compute(nil, nil)

	assert.True(t, summary.TotalIncome.IsZero())
	assert.True(t, summary.TotalExpenses.IsZero())
	assert.True(t, summary.NetBalance.IsZero())
	assert.True(t, summary.PendingAmount.IsZero())
	assert.EqualValues(t, 0, summary.TransactionCount)
}

func TestComputeSingleCompletedIncome(t *testing.T) {
	january := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	summary := Compute([]models.FinanceTransaction{
		transaction(types.KindIncome, "100", january),
	}, nil)

	assert.True(t, summary.TotalIncome.Equal(decimal.RequireFromString("100")))
	assert.True(t, summary.TotalExpenses.IsZero())
	assert.True(t, summary.NetBalance.Equal(decimal.RequireFromString("100")))
	assert.True(t, summary.PendingAmount.IsZero())
	assert.EqualValues(t, 1, summary.TransactionCount)
}

func TestComputeNetBalance(t *testing.T) {
	now := time.Now()

	summary := Compute([]models.FinanceTransaction{
		transaction(types.KindIncome, "250.50", now),
		transaction(types.KindIncome, "100", now),
		transaction(types.KindExpense, "75.25", now),
	}, nil)

	assert.True(t, summary.TotalIncome.Equal(decimal.RequireFromString("350.50")))
	assert.True(t, summary.TotalExpenses.Equal(decimal.RequireFromString("75.25")))
	assert.True(t, summary.NetBalance.Equal(decimal.RequireFromString("275.25")))
	assert.EqualValues(t, 3, summary.TransactionCount)
}

func TestComputePendingAmount(t *testing.T) {
	summary := Compute(nil, []models.Invoice{
		{
			Status:      types.InvoiceStatusSent,
			TotalAmount: decimal.RequireFromString("100"),
			AmountPaid:  decimal.Zero,
		},
		{
			Status:      types.InvoiceStatusPartial,
			TotalAmount: decimal.RequireFromString("80"),
			AmountPaid:  decimal.RequireFromString("30"),
		},
		{
			Status:      types.InvoiceStatusOverdue,
			TotalAmount: decimal.RequireFromString("45.50"),
			AmountPaid:  decimal.RequireFromString("5.50"),
		},
	})

	assert.True(t, summary.PendingAmount.Equal(decimal.RequireFromString("190")))
}

func TestPeriodDefaults(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	period := types.Period{}.OrDefault(now)

	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), period.TimeFrom)
	assert.Equal(t, now, period.TimeTo)

	explicit := types.Period{
		TimeFrom: now.AddDate(0, -1, 0),
		TimeTo:   now,
	}.OrDefault(now)

	assert.Equal(t, now.AddDate(0, -1, 0), explicit.TimeFrom)
}
