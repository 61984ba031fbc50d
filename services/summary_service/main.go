package summary_service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/opencivic/ledger/config"
	"github.com/opencivic/ledger/models"
	"github.com/opencivic/ledger/types"
)

var CacheExpiration = 5 * time.Minute

type Summary struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetBalance       decimal.Decimal `json:"net_balance"`
	PendingAmount    decimal.Decimal `json:"pending_amount"`
	TransactionCount int64           `json:"transaction_count"`
}

// Compute folds completed transactions and outstanding invoices into
// the period summary. Transactions are expected pre-filtered to the
// period and completed status; invoices to pending statuses. Empty
// inputs produce an all-zero summary.
func Compute(transactions []models.FinanceTransaction, invoices []models.Invoice) Summary {
	summary := Summary{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		NetBalance:    decimal.Zero,
		PendingAmount: decimal.Zero,
	}

	for _, transaction := range transactions {
		switch transaction.Kind {
		case types.KindIncome:
			summary.TotalIncome = summary.TotalIncome.Add(transaction.Amount)
		case types.KindExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(transaction.Amount)
		}
	}

	summary.TransactionCount = int64(len(transactions))
	summary.NetBalance = summary.TotalIncome.Sub(summary.TotalExpenses)

	for _, invoice := range invoices {
		summary.PendingAmount = summary.PendingAmount.Add(invoice.PendingAmount())
	}

	return summary
}

// Fetch returns the org's summary for the period, read through the
// per-org cache. Defaults to Jan 1 of this year through today.
func Fetch(orgID int64, period types.Period) (*Summary, error) {
	period = period.OrDefault(time.Now())

	key := config.CacheKey(orgID, "summary", []string{
		period.TimeFrom.Format("2006-01-02"),
		period.TimeTo.Format("2006-01-02"),
	})

	cached := &Summary{}
	if err := config.Redis.GetKey(key, cached); err == nil {
		return cached, nil
	}

	var transactions []models.FinanceTransaction
	result := config.DataBase.
		Where("org_id = ?", orgID).
		Where("payment_status = ?", types.PaymentStatusCompleted).
		Where("transaction_date >= ? AND transaction_date <= ?", period.TimeFrom, period.TimeTo).
		Find(&transactions)
	if result.Error != nil {
		return nil, result.Error
	}

	// Pending invoice balances are a point-in-time figure, not bounded
	// by the requested period.
	var invoices []models.Invoice
	result = config.DataBase.
		Where("org_id = ?", orgID).
		Where("status IN ?", models.PendingStatuses()).
		Find(&invoices)
	if result.Error != nil {
		return nil, result.Error
	}

	summary := Compute(transactions, invoices)

	if err := config.Redis.SetKey(key, summary, CacheExpiration); err == nil {
		if err := config.Redis.TagKey(orgID, key); err != nil {
			config.Logger.Errorf("Failed to tag summary cache key %s: %v", key, err)
		}
	}

	return &summary, nil
}
