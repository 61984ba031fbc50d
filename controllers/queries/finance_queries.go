package queries

import (
	"github.com/opencivic/ledger/controllers/helpers"
	"github.com/opencivic/ledger/types"
)

type CategoryFilters struct {
	Kind types.CategoryKind `query:"kind" validate:"ValidateKind"`
}

func (t CategoryFilters) ValidateKind(val types.CategoryKind) bool {
	return helpers.ValidateKindFilter(val)
}

func (t CategoryFilters) Messages() map[string]string {
	return helpers.ValidateMessage("finance.category")
}

type TransactionFilters struct {
	Kind          types.CategoryKind  `query:"kind" validate:"ValidateKind"`
	PaymentStatus types.PaymentStatus `query:"payment_status" validate:"ValidatePaymentStatus"`
	CategoryID    int64               `query:"category_id" validate:"uint"`
	MemberID      int64               `query:"member_id" validate:"uint"`
	Limit         int                 `query:"limit" validate:"uint"`
	Page          int                 `query:"page" validate:"uint"`
	TimeFrom      int64               `query:"time_from" validate:"uint"`
	TimeTo        int64               `query:"time_to" validate:"uint"`
	OrderBy       types.OrderBy       `query:"order_by" validate:"ValidateOrderBy"`
}

func (t TransactionFilters) ValidateKind(val types.CategoryKind) bool {
	return helpers.ValidateKindFilter(val)
}

func (t TransactionFilters) ValidatePaymentStatus(val types.PaymentStatus) bool {
	return helpers.ValidatePaymentStatusFilter(val)
}

func (t TransactionFilters) ValidateOrderBy(val types.OrderBy) bool {
	return helpers.ValidateOrderBy(val)
}

func (t TransactionFilters) Messages() map[string]string {
	return helpers.ValidateMessage("finance.transaction")
}

type InvoiceFilters struct {
	Status   types.InvoiceStatus `query:"status" validate:"ValidateStatus"`
	MemberID int64               `query:"member_id" validate:"uint"`
	Limit    int                 `query:"limit" validate:"uint"`
	Page     int                 `query:"page" validate:"uint"`
	TimeFrom int64               `query:"time_from" validate:"uint"`
	TimeTo   int64               `query:"time_to" validate:"uint"`
	OrderBy  types.OrderBy       `query:"order_by" validate:"ValidateOrderBy"`
}

func (t InvoiceFilters) ValidateStatus(val types.InvoiceStatus) bool {
	return helpers.ValidateInvoiceStatusFilter(val)
}

func (t InvoiceFilters) ValidateOrderBy(val types.OrderBy) bool {
	return helpers.ValidateOrderBy(val)
}

func (t InvoiceFilters) Messages() map[string]string {
	return helpers.ValidateMessage("finance.invoice")
}

type BudgetFilters struct {
	Kind       types.CategoryKind `query:"kind" validate:"ValidateKind"`
	FiscalYear int64              `query:"fiscal_year" validate:"uint"`
}

func (t BudgetFilters) ValidateKind(val types.CategoryKind) bool {
	return helpers.ValidateKindFilter(val)
}

func (t BudgetFilters) Messages() map[string]string {
	return helpers.ValidateMessage("finance.budget")
}

type PeriodFilters struct {
	TimeFrom int64 `query:"time_from" validate:"uint"`
	TimeTo   int64 `query:"time_to" validate:"uint"`
}

func (t PeriodFilters) Messages() map[string]string {
	return helpers.ValidateMessage("finance.summary")
}

type ReportFilters struct {
	Kind     types.CategoryKind `query:"kind" validate:"ValidateKind"`
	TimeFrom int64              `query:"time_from" validate:"uint"`
	TimeTo   int64              `query:"time_to" validate:"uint"`
}

func (t ReportFilters) ValidateKind(val types.CategoryKind) bool {
	return helpers.ValidateKindFilter(val)
}

func (t ReportFilters) Messages() map[string]string {
	return helpers.ValidateMessage("finance.report")
}
