package helpers

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/opencivic/ledger/config"
	"github.com/opencivic/ledger/models"
	"github.com/opencivic/ledger/types"
)

type CreateTransactionParams struct {
	Kind            types.CategoryKind  `json:"kind" form:"kind" validate:"required"`
	Amount          decimal.Decimal     `json:"amount" form:"amount"`
	Currency        string              `json:"currency" form:"currency" validate:"required"`
	PaymentStatus   types.PaymentStatus `json:"payment_status" form:"payment_status"`
	CategoryID      int64               `json:"category_id" form:"category_id"`
	MemberID        int64               `json:"member_id" form:"member_id"`
	Description     string              `json:"description" form:"description"`
	TransactionDate int64               `json:"transaction_date" form:"transaction_date" validate:"required"`
	DueDate         int64               `json:"due_date" form:"due_date"`
}

func (p CreateTransactionParams) Messages() map[string]string {
	return ValidateMessage("finance.transaction")
}

// BuildTransaction assembles and validates the model without writing
// it. Field errors and the category kind check accumulate into err_src.
func (p CreateTransactionParams) BuildTransaction(orgID int64, err_src *Errors) *models.FinanceTransaction {
	transaction := &models.FinanceTransaction{
		OrgID:           orgID,
		Kind:            p.Kind,
		Amount:          p.Amount,
		Currency:        p.Currency,
		PaymentStatus:   p.PaymentStatus,
		TransactionDate: time.Unix(p.TransactionDate, 0),
	}

	if len(p.PaymentStatus) == 0 {
		transaction.PaymentStatus = types.PaymentStatusPending
	}

	if len(p.Description) > 0 {
		transaction.Description = sql.NullString{String: p.Description, Valid: true}
	}

	if p.MemberID > 0 {
		transaction.MemberID = sql.NullInt64{Int64: p.MemberID, Valid: true}
	}

	if p.DueDate > 0 {
		transaction.DueDate = sql.NullTime{Time: time.Unix(p.DueDate, 0), Valid: true}
	}

	Validate(transaction, err_src)

	if p.CategoryID > 0 {
		category, err := models.FindCategory(orgID, p.CategoryID)
		if err != nil {
			err_src.Errors = append(err_src.Errors, "finance.transaction.category_doesnt_exist")
			return nil
		}

		if !transaction.MatchesCategory(category) {
			err_src.Errors = append(err_src.Errors, "finance.transaction.category_kind_mismatch")
			return nil
		}

		transaction.CategoryID = sql.NullInt64{Int64: p.CategoryID, Valid: true}
	}

	if err_src.Size() > 0 {
		return nil
	}

	return transaction
}

// CreateTransaction persists a validated transaction and drops the
// org's cached summaries and reports.
func (p CreateTransactionParams) CreateTransaction(orgID int64, err_src *Errors) *models.FinanceTransaction {
	transaction := p.BuildTransaction(orgID, err_src)
	if transaction == nil {
		return nil
	}

	if result := config.DataBase.Create(transaction); result.Error != nil {
		err_src.Errors = append(err_src.Errors, "finance.transaction.create_failed")
		return nil
	}

	InvalidateOrgCache(orgID)

	return transaction
}

type UpdateTransactionParams struct {
	Kind            types.CategoryKind  `json:"kind" form:"kind"`
	Amount          decimal.Decimal     `json:"amount" form:"amount"`
	Currency        string              `json:"currency" form:"currency"`
	PaymentStatus   types.PaymentStatus `json:"payment_status" form:"payment_status"`
	CategoryID      int64               `json:"category_id" form:"category_id"`
	MemberID        int64               `json:"member_id" form:"member_id"`
	Description     string              `json:"description" form:"description"`
	TransactionDate int64               `json:"transaction_date" form:"transaction_date"`
	DueDate         int64               `json:"due_date" form:"due_date"`
}

// ApplyTransaction patches only the supplied fields, re-validates the
// whole record, then writes it in place. A negative category_id clears
// the tag.
func (p UpdateTransactionParams) ApplyTransaction(transaction *models.FinanceTransaction, err_src *Errors) *models.FinanceTransaction {
	if len(p.Kind) > 0 {
		transaction.Kind = p.Kind
	}
	if !p.Amount.IsZero() {
		transaction.Amount = p.Amount
	}
	if len(p.Currency) > 0 {
		transaction.Currency = p.Currency
	}
	if len(p.PaymentStatus) > 0 {
		transaction.PaymentStatus = p.PaymentStatus
	}
	if len(p.Description) > 0 {
		transaction.Description = sql.NullString{String: p.Description, Valid: true}
	}
	if p.MemberID > 0 {
		transaction.MemberID = sql.NullInt64{Int64: p.MemberID, Valid: true}
	}
	if p.TransactionDate > 0 {
		transaction.TransactionDate = time.Unix(p.TransactionDate, 0)
	}
	if p.DueDate > 0 {
		transaction.DueDate = sql.NullTime{Time: time.Unix(p.DueDate, 0), Valid: true}
	}
	if p.CategoryID < 0 {
		transaction.CategoryID = sql.NullInt64{}
	}

	Validate(transaction, err_src)

	if p.CategoryID > 0 {
		category, err := models.FindCategory(transaction.OrgID, p.CategoryID)
		if err != nil {
			err_src.Errors = append(err_src.Errors, "finance.transaction.category_doesnt_exist")
			return nil
		}

		if !transaction.MatchesCategory(category) {
			err_src.Errors = append(err_src.Errors, "finance.transaction.category_kind_mismatch")
			return nil
		}

		transaction.CategoryID = sql.NullInt64{Int64: p.CategoryID, Valid: true}
	} else if transaction.CategoryID.Valid {
		// Kind patches must not leave a mismatched tag behind.
		category, err := models.FindCategory(transaction.OrgID, transaction.CategoryID.Int64)
		if err == nil && !transaction.MatchesCategory(category) {
			err_src.Errors = append(err_src.Errors, "finance.transaction.category_kind_mismatch")
			return nil
		}
	}

	if err_src.Size() > 0 {
		return nil
	}

	if result := config.DataBase.Save(transaction); result.Error != nil {
		err_src.Errors = append(err_src.Errors, "finance.transaction.update_failed")
		return nil
	}

	InvalidateOrgCache(transaction.OrgID)

	return transaction
}

// InvalidateOrgCache drops every cached summary and report of one org.
func InvalidateOrgCache(orgID int64) {
	if err := config.Redis.InvalidateTag(orgID); err != nil {
		config.Logger.Errorf("Failed to invalidate cache tag for org %d: %v", orgID, err)
	}
}
