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

// FinanceTransaction is a single recorded monetary movement. Amount is
// always positive; Kind says which direction it moves.
type FinanceTransaction struct {
	ID              int64               `json:"id" gorm:"primaryKey"`
	UUID            uuid.UUID           `json:"uuid" gorm:"default:gen_random_uuid()"`
	OrgID           int64               `json:"org_id" validate:"required"`
	CategoryID      sql.NullInt64       `json:"category_id"`
	MemberID        sql.NullInt64       `json:"member_id"`
	Kind            types.CategoryKind  `json:"kind" validate:"required|ValidateKind"`
	Amount          decimal.Decimal     `json:"amount" validate:"ValidateAmount"`
	Currency        string              `json:"currency" validate:"required|ValidateCurrency"`
	PaymentStatus   types.PaymentStatus `json:"payment_status" gorm:"default:pending" validate:"ValidatePaymentStatus"`
	Description     sql.NullString      `json:"description"`
	TransactionDate time.Time           `json:"transaction_date" validate:"required"`
	DueDate         sql.NullTime        `json:"due_date"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func (t FinanceTransaction) Message() map[string]string {
	invalid_message := "finance.transaction.invalid_{field}"

	return validate.MS{
		"required":              invalid_message,
		"ValidateKind":          "finance.transaction.invalid_kind",
		"ValidateAmount":        "finance.transaction.non_positive_amount",
		"ValidateCurrency":      "finance.transaction.invalid_currency",
		"ValidatePaymentStatus": "finance.transaction.invalid_payment_status",
	}
}

func (t FinanceTransaction) ValidateKind(Kind types.CategoryKind) bool {
	return Kind == types.KindIncome || Kind == types.KindExpense
}

func (t FinanceTransaction) ValidateAmount(Amount decimal.Decimal) bool {
	return Amount.IsPositive()
}

func (t FinanceTransaction) ValidateCurrency(Currency string) bool {
	return ValidCurrencyCode(Currency)
}

func (t FinanceTransaction) ValidatePaymentStatus(PaymentStatus types.PaymentStatus) bool {
	switch PaymentStatus {
	case "", types.PaymentStatusPending, types.PaymentStatusCompleted, types.PaymentStatusFailed, types.PaymentStatusRefunded, types.PaymentStatusCancelled:
		return true
	}

	return false
}

// ValidCurrencyCode accepts fixed three-letter uppercase codes.
func ValidCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}

	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}

	return true
}

// MatchesCategory reports whether the transaction may carry the given
// category. A nil category is always allowed; a set one must share the
// transaction's kind.
func (t FinanceTransaction) MatchesCategory(category *FinanceCategory) bool {
	if category == nil {
		return true
	}

	return category.Kind == t.Kind
}

func (t *FinanceTransaction) ToJSON() entities.TransactionEntity {
	return entities.TransactionEntity{
		ID:              t.ID,
		UUID:            t.UUID,
		CategoryID:      NullableID(t.CategoryID),
		MemberID:        NullableID(t.MemberID),
		Kind:            t.Kind,
		Amount:          t.Amount,
		Currency:        t.Currency,
		PaymentStatus:   t.PaymentStatus,
		Description:     t.Description.String,
		TransactionDate: t.TransactionDate,
		DueDate:         NullableTime(t.DueDate),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func FindTransaction(orgID int64, id int64) (*FinanceTransaction, error) {
	var transaction *FinanceTransaction

	if result := config.DataBase.Where("org_id = ?", orgID).First(&transaction, "id = ?", id); result.Error != nil {
		return nil, WrapNotFound(result.Error)
	}

	return transaction, nil
}
