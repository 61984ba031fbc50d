package helpers

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/opencivic/ledger/config"
	"github.com/opencivic/ledger/models"
	"github.com/opencivic/ledger/types"
)

type CreateBudgetParams struct {
	Name          string             `json:"name" form:"name" validate:"required"`
	Kind          types.CategoryKind `json:"kind" form:"kind" validate:"required"`
	CategoryID    int64              `json:"category_id" form:"category_id"`
	PlannedAmount decimal.Decimal    `json:"planned_amount" form:"planned_amount"`
	ActualAmount  decimal.Decimal    `json:"actual_amount" form:"actual_amount"`
	Currency      string             `json:"currency" form:"currency" validate:"required"`
	PeriodStart   int64              `json:"period_start" form:"period_start" validate:"required"`
	PeriodEnd     int64              `json:"period_end" form:"period_end" validate:"required"`
	FiscalYear    int64              `json:"fiscal_year" form:"fiscal_year"`
}

func (p CreateBudgetParams) Messages() map[string]string {
	return ValidateMessage("finance.budget")
}

// CreateBudget validates and persists one budget. The eligible
// category must share the budget's kind.
func (p CreateBudgetParams) CreateBudget(orgID int64, err_src *Errors) *models.Budget {
	budget := &models.Budget{
		OrgID:         orgID,
		Name:          p.Name,
		Kind:          p.Kind,
		PlannedAmount: p.PlannedAmount,
		ActualAmount:  p.ActualAmount,
		Currency:      p.Currency,
		PeriodStart:   time.Unix(p.PeriodStart, 0),
		PeriodEnd:     time.Unix(p.PeriodEnd, 0),
	}

	if p.FiscalYear > 0 {
		budget.FiscalYear = sql.NullInt64{Int64: p.FiscalYear, Valid: true}
	}

	Validate(budget, err_src)

	if p.CategoryID > 0 {
		category, err := models.FindCategory(orgID, p.CategoryID)
		if err != nil {
			err_src.Errors = append(err_src.Errors, "finance.budget.category_doesnt_exist")
			return nil
		}

		if category.Kind != budget.Kind {
			err_src.Errors = append(err_src.Errors, "finance.budget.category_kind_mismatch")
			return nil
		}

		budget.CategoryID = sql.NullInt64{Int64: p.CategoryID, Valid: true}
	}

	if err_src.Size() > 0 {
		return nil
	}

	if result := config.DataBase.Create(budget); result.Error != nil {
		err_src.Errors = append(err_src.Errors, "finance.budget.create_failed")
		return nil
	}

	return budget
}

type UpdateBudgetParams struct {
	Name          string          `json:"name" form:"name"`
	PlannedAmount decimal.Decimal `json:"planned_amount" form:"planned_amount"`
	ActualAmount  decimal.Decimal `json:"actual_amount" form:"actual_amount"`
	Currency      string          `json:"currency" form:"currency"`
	PeriodStart   int64           `json:"period_start" form:"period_start"`
	PeriodEnd     int64           `json:"period_end" form:"period_end"`
	FiscalYear    int64           `json:"fiscal_year" form:"fiscal_year"`
}

// ApplyBudget patches supplied fields and re-validates the record.
// Kind stays immutable, mirroring categories.
func (p UpdateBudgetParams) ApplyBudget(budget *models.Budget, err_src *Errors) *models.Budget {
	if len(p.Name) > 0 {
		budget.Name = p.Name
	}
	if !p.PlannedAmount.IsZero() {
		budget.PlannedAmount = p.PlannedAmount
	}
	if !p.ActualAmount.IsZero() {
		budget.ActualAmount = p.ActualAmount
	}
	if len(p.Currency) > 0 {
		budget.Currency = p.Currency
	}
	if p.PeriodStart > 0 {
		budget.PeriodStart = time.Unix(p.PeriodStart, 0)
	}
	if p.PeriodEnd > 0 {
		budget.PeriodEnd = time.Unix(p.PeriodEnd, 0)
	}
	if p.FiscalYear > 0 {
		budget.FiscalYear = sql.NullInt64{Int64: p.FiscalYear, Valid: true}
	}

	Validate(budget, err_src)

	if err_src.Size() > 0 {
		return nil
	}

	if result := config.DataBase.Save(budget); result.Error != nil {
		err_src.Errors = append(err_src.Errors, "finance.budget.update_failed")
		return nil
	}

	return budget
}
