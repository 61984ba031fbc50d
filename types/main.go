package types

import "time"

type CategoryKind = string

var (
	KindIncome  CategoryKind = "income"
	KindExpense CategoryKind = "expense"
)

type PaymentStatus = string

var (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

type InvoiceStatus = string

var (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusPartial   InvoiceStatus = "partial"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

type InvoiceAction = string

var (
	ActionSend       InvoiceAction = "send"
	ActionPay        InvoiceAction = "pay"
	ActionPayPartial InvoiceAction = "pay_partial"
	ActionOverdue    InvoiceAction = "overdue"
	ActionCancel     InvoiceAction = "cancel"
)

type OrderBy = string

var (
	OrderByAsc  OrderBy = "asc"
	OrderByDesc OrderBy = "desc"
)

// Period bounds a summary or report query. Zero fields fall back to
// Jan 1 of the current year through today.
type Period struct {
	TimeFrom time.Time
	TimeTo   time.Time
}

func (p Period) OrDefault(now time.Time) Period {
	if p.TimeFrom.IsZero() {
		p.TimeFrom = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	}
	if p.TimeTo.IsZero() {
		p.TimeTo = now
	}
	return p
}
