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

// Invoice lifecycle:
//
//	draft -> sent -> {paid, partial, overdue}
//	partial/overdue may still reach paid; cancel is reachable from any
//	non-terminal state; paid and cancelled are terminal.
//
// Totals always satisfy total_amount = subtotal + tax - discount and
// amount_paid <= total_amount.
type Invoice struct {
	ID             int64               `json:"id" gorm:"primaryKey"`
	UUID           uuid.UUID           `json:"uuid" gorm:"default:gen_random_uuid()"`
	OrgID          int64               `json:"org_id" gorm:"uniqueIndex:idx_invoices_org_number" validate:"required"`
	MemberID       sql.NullInt64       `json:"member_id"`
	InvoiceNumber  string              `json:"invoice_number" gorm:"uniqueIndex:idx_invoices_org_number" validate:"required"`
	Status         types.InvoiceStatus `json:"status" gorm:"default:draft"`
	Subtotal       decimal.Decimal     `json:"subtotal" gorm:"default:0.0"`
	TaxAmount      decimal.Decimal     `json:"tax_amount" gorm:"default:0.0" validate:"ValidateTaxAmount"`
	DiscountAmount decimal.Decimal     `json:"discount_amount" gorm:"default:0.0" validate:"ValidateDiscountAmount"`
	TotalAmount    decimal.Decimal     `json:"total_amount" gorm:"default:0.0"`
	AmountPaid     decimal.Decimal     `json:"amount_paid" gorm:"default:0.0"`
	Currency       string              `json:"currency" validate:"required|ValidateCurrency"`
	IssueDate      time.Time           `json:"issue_date" validate:"required"`
	DueDate        sql.NullTime        `json:"due_date"`
	PaidDate       sql.NullTime        `json:"paid_date"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func (i Invoice) Message() map[string]string {
	invalid_message := "finance.invoice.invalid_{field}"

	return validate.MS{
		"required":               invalid_message,
		"ValidateCurrency":       "finance.invoice.invalid_currency",
		"ValidateTaxAmount":      "finance.invoice.negative_tax_amount",
		"ValidateDiscountAmount": "finance.invoice.negative_discount_amount",
	}
}

func (i Invoice) ValidateCurrency(Currency string) bool {
	return ValidCurrencyCode(Currency)
}

func (i Invoice) ValidateTaxAmount(TaxAmount decimal.Decimal) bool {
	return !TaxAmount.IsNegative()
}

func (i Invoice) ValidateDiscountAmount(DiscountAmount decimal.Decimal) bool {
	return !DiscountAmount.IsNegative()
}

var invoiceTransitions = map[types.InvoiceStatus][]types.InvoiceStatus{
	types.InvoiceStatusDraft:   {types.InvoiceStatusSent, types.InvoiceStatusCancelled},
	types.InvoiceStatusSent:    {types.InvoiceStatusPaid, types.InvoiceStatusPartial, types.InvoiceStatusOverdue, types.InvoiceStatusCancelled},
	types.InvoiceStatusPartial: {types.InvoiceStatusPaid, types.InvoiceStatusOverdue, types.InvoiceStatusCancelled},
	types.InvoiceStatusOverdue: {types.InvoiceStatusPaid, types.InvoiceStatusPartial, types.InvoiceStatusCancelled},
}

func (i Invoice) Terminal() bool {
	return i.Status == types.InvoiceStatusPaid || i.Status == types.InvoiceStatusCancelled
}

func (i Invoice) TransitionAllowed(to types.InvoiceStatus) bool {
	for _, next := range invoiceTransitions[i.Status] {
		if next == to {
			return true
		}
	}

	return false
}

// Apply mutates the invoice in memory according to an explicit action.
// Persistence and cache invalidation belong to the caller; a single
// database row update keeps the transition atomic.
func (i *Invoice) Apply(action types.InvoiceAction, amount decimal.Decimal, now time.Time) error {
	switch action {
	case types.ActionSend:
		if !i.TransitionAllowed(types.InvoiceStatusSent) {
			return ErrInvalidTransition
		}
		i.Status = types.InvoiceStatusSent
	case types.ActionPay:
		if !i.TransitionAllowed(types.InvoiceStatusPaid) {
			return ErrInvalidTransition
		}
		i.AmountPaid = i.TotalAmount
		i.Status = types.InvoiceStatusPaid
		i.PaidDate = sql.NullTime{Time: now, Valid: true}
	case types.ActionPayPartial:
		if !i.TransitionAllowed(types.InvoiceStatusPartial) && !i.TransitionAllowed(types.InvoiceStatusPaid) {
			return ErrInvalidTransition
		}
		if !amount.IsPositive() {
			return ErrInvalidTransition
		}

		paid := i.AmountPaid.Add(amount)
		if paid.GreaterThan(i.TotalAmount) {
			return ErrInvalidTransition
		}

		i.AmountPaid = paid
		if paid.Equal(i.TotalAmount) {
			i.Status = types.InvoiceStatusPaid
			i.PaidDate = sql.NullTime{Time: now, Valid: true}
		} else {
			i.Status = types.InvoiceStatusPartial
		}
	case types.ActionOverdue:
		if !i.TransitionAllowed(types.InvoiceStatusOverdue) {
			return ErrInvalidTransition
		}
		i.Status = types.InvoiceStatusOverdue
	case types.ActionCancel:
		if i.Terminal() {
			return ErrInvalidTransition
		}
		i.Status = types.InvoiceStatusCancelled
	default:
		return ErrInvalidTransition
	}

	return nil
}

// RecomputeTotals derives subtotal and total from a full item set.
func (i *Invoice) RecomputeTotals(items []InvoiceItem) {
	i.Subtotal = SubtotalOf(items)
	i.TotalAmount = i.Subtotal.Add(i.TaxAmount).Sub(i.DiscountAmount)
}

// PendingAmount is the unpaid remainder, zero once fully covered.
func (i Invoice) PendingAmount() decimal.Decimal {
	return i.TotalAmount.Sub(i.AmountPaid)
}

// PendingStatuses are the lifecycle states that count toward an org's
// outstanding balance.
func PendingStatuses() []types.InvoiceStatus {
	return []types.InvoiceStatus{
		types.InvoiceStatusSent,
		types.InvoiceStatusPartial,
		types.InvoiceStatusOverdue,
	}
}

// PendingStatus reports whether the invoice counts toward an org's
// outstanding balance.
func PendingStatus(status types.InvoiceStatus) bool {
	for _, pending := range PendingStatuses() {
		if pending == status {
			return true
		}
	}

	return false
}

func (i *Invoice) ToJSON(items []InvoiceItem) entities.InvoiceEntity {
	item_entities := make([]entities.InvoiceItemEntity, 0, len(items))
	for _, item := range items {
		item_entities = append(item_entities, item.ToJSON())
	}

	return entities.InvoiceEntity{
		ID:             i.ID,
		UUID:           i.UUID,
		MemberID:       NullableID(i.MemberID),
		InvoiceNumber:  i.InvoiceNumber,
		Status:         i.Status,
		Subtotal:       i.Subtotal,
		TaxAmount:      i.TaxAmount,
		DiscountAmount: i.DiscountAmount,
		TotalAmount:    i.TotalAmount,
		AmountPaid:     i.AmountPaid,
		PendingAmount:  i.PendingAmount(),
		Currency:       i.Currency,
		IssueDate:      i.IssueDate,
		DueDate:        NullableTime(i.DueDate),
		PaidDate:       NullableTime(i.PaidDate),
		Items:          item_entities,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func FindInvoice(orgID int64, id int64) (*Invoice, error) {
	var invoice *Invoice

	if result := config.DataBase.Where("org_id = ?", orgID).First(&invoice, "id = ?", id); result.Error != nil {
		return nil, WrapNotFound(result.Error)
	}

	return invoice, nil
}

func (i Invoice) Items() ([]InvoiceItem, error) {
	items := make([]InvoiceItem, 0)

	if result := config.DataBase.Order("id asc").Where("invoice_id = ?", i.ID).Find(&items); result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}
