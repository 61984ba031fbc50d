package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/validate"
	"github.com/shopspring/decimal"

	"github.com/opencivic/ledger/config"
	"github.com/opencivic/ledger/controllers/entities"
	"github.com/opencivic/ledger/types"
)

// Budget tracks planned vs. actual movement for a category over a
// fiscal period. ActualAmount is a stored field: orgs reconcile it by
// hand or ask for a recompute from completed transactions.
type Budget struct {
	ID            int64              `json:"id" gorm:"primaryKey"`
	UUID          uuid.UUID          `json:"uuid" gorm:"default:gen_random_uuid()"`
	OrgID         int64              `json:"org_id" validate:"required"`
	CategoryID    sql.NullInt64      `json:"category_id"`
	Name          string             `json:"name" validate:"required"`
	Kind          types.CategoryKind `json:"kind" validate:"required|ValidateKind"`
	PlannedAmount decimal.Decimal    `json:"planned_amount" gorm:"default:0.0" validate:"ValidatePlannedAmount"`
	ActualAmount  decimal.Decimal    `json:"actual_amount" gorm:"default:0.0" validate:"ValidateActualAmount"`
	Currency      string             `json:"currency" validate:"required|ValidateCurrency"`
	PeriodStart   time.Time          `json:"period_start" validate:"required"`
	PeriodEnd     time.Time          `json:"period_end" validate:"required|ValidatePeriodEnd"`
	FiscalYear    sql.NullInt64      `json:"fiscal_year"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func (b Budget) Message() map[string]string {
	invalid_message := "finance.budget.invalid_{field}"

	return validate.MS{
		"required":              invalid_message,
		"ValidateKind":          "finance.budget.invalid_kind",
		"ValidatePlannedAmount": "finance.budget.negative_planned_amount",
		"ValidateActualAmount":  "finance.budget.negative_actual_amount",
		"ValidateCurrency":      "finance.budget.invalid_currency",
		"ValidatePeriodEnd":     "finance.budget.period_end_before_start",
	}
}

func (b Budget) ValidateKind(Kind types.CategoryKind) bool {
	return Kind == types.KindIncome || Kind == types.KindExpense
}

func (b Budget) ValidatePlannedAmount(PlannedAmount decimal.Decimal) bool {
	return !PlannedAmount.IsNegative()
}

func (b Budget) ValidateActualAmount(ActualAmount decimal.Decimal) bool {
	return !ActualAmount.IsNegative()
}

func (b Budget) ValidateCurrency(Currency string) bool {
	return ValidCurrencyCode(Currency)
}

func (b Budget) ValidatePeriodEnd(PeriodEnd time.Time) bool {
	return !PeriodEnd.Before(b.PeriodStart)
}

type BudgetProgress struct {
	Percentage     decimal.Decimal `json:"percentage"`
	Classification string          `json:"classification"`
}

// Progress derives the spend/income ratio and its business
// classification. A zero planned amount always yields 0 percent.
func (b Budget) Progress() BudgetProgress {
	percentage := decimal.Zero

	if b.PlannedAmount.IsPositive() {
		percentage = b.ActualAmount.Div(b.PlannedAmount).Mul(decimal.NewFromInt(100))
	}

	return BudgetProgress{
		Percentage:     percentage,
		Classification: classify(b.Kind, percentage),
	}
}

// classify encodes the breakpoint policy. The numbers are business
// rules, not tunables.
func classify(kind types.CategoryKind, percentage decimal.Decimal) string {
	if kind == types.KindIncome {
		switch {
		case percentage.GreaterThanOrEqual(decimal.NewFromInt(100)):
			return "met"
		case percentage.GreaterThanOrEqual(decimal.NewFromInt(75)):
			return "on-track"
		case percentage.GreaterThanOrEqual(decimal.NewFromInt(50)):
			return "behind"
		default:
			return "at-risk"
		}
	}

	switch {
	case percentage.LessThanOrEqual(decimal.NewFromInt(75)):
		return "healthy"
	case percentage.LessThanOrEqual(decimal.NewFromInt(90)):
		return "watch"
	case percentage.LessThanOrEqual(decimal.NewFromInt(100)):
		return "tight"
	default:
		return "over-budget"
	}
}

func (b *Budget) ToJSON() entities.BudgetEntity {
	progress := b.Progress()

	return entities.BudgetEntity{
		ID:             b.ID,
		UUID:           b.UUID,
		CategoryID:     NullableID(b.CategoryID),
		Name:           b.Name,
		Kind:           b.Kind,
		PlannedAmount:  b.PlannedAmount,
		ActualAmount:   b.ActualAmount,
		Currency:       b.Currency,
		PeriodStart:    b.PeriodStart,
		PeriodEnd:      b.PeriodEnd,
		FiscalYear:     NullableID(b.FiscalYear),
		Percentage:     progress.Percentage,
		Classification: progress.Classification,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// RecalculateActual replaces the stored actual with the sum of
// completed transactions matching the budget's kind, category and
// period. Budgets without a category sum the whole kind.
func (b *Budget) RecalculateActual() error {
	var transactions []FinanceTransaction

	tx := config.DataBase.
		Where("org_id = ?", b.OrgID).
		Where("kind = ?", b.Kind).
		Where("payment_status = ?", types.PaymentStatusCompleted).
		Where("transaction_date >= ? AND transaction_date <= ?", b.PeriodStart, b.PeriodEnd)

	if b.CategoryID.Valid {
		tx = tx.Where("category_id = ?", b.CategoryID.Int64)
	}

	if result := tx.Find(&transactions); result.Error != nil {
		return result.Error
	}

	actual := decimal.Zero
	for _, transaction := range transactions {
		actual = actual.Add(transaction.Amount)
	}

	if result := config.DataBase.Model(b).Update("actual_amount", actual); result.Error != nil {
		return result.Error
	}

	b.ActualAmount = actual

	return nil
}

func FindBudget(orgID int64, id int64) (*Budget, error) {
	var budget *Budget

	if result := config.DataBase.Where("org_id = ?", orgID).First(&budget, "id = ?", id); result.Error != nil {
		return nil, WrapNotFound(result.Error)
	}

	return budget, nil
}
