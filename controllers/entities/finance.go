package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/opencivic/ledger/types"
)

type CategoryEntity struct {
	ID        int64              `json:"id"`
	UUID      uuid.UUID          `json:"uuid"`
	Name      string             `json:"name"`
	Kind      types.CategoryKind `json:"kind"`
	Active    bool               `json:"active"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type TransactionEntity struct {
	ID              int64               `json:"id"`
	UUID            uuid.UUID           `json:"uuid"`
	CategoryID      *int64              `json:"category_id"`
	MemberID        *int64              `json:"member_id"`
	Kind            types.CategoryKind  `json:"kind"`
	Amount          decimal.Decimal     `json:"amount"`
	Currency        string              `json:"currency"`
	PaymentStatus   types.PaymentStatus `json:"payment_status"`
	Description     string              `json:"description,omitempty"`
	TransactionDate time.Time           `json:"transaction_date"`
	DueDate         *time.Time          `json:"due_date"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type InvoiceItemEntity struct {
	ID          int64           `json:"id"`
	UUID        uuid.UUID       `json:"uuid"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

type InvoiceEntity struct {
	ID             int64               `json:"id"`
	UUID           uuid.UUID           `json:"uuid"`
	MemberID       *int64              `json:"member_id"`
	InvoiceNumber  string              `json:"invoice_number"`
	Status         types.InvoiceStatus `json:"status"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	TaxAmount      decimal.Decimal     `json:"tax_amount"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	AmountPaid     decimal.Decimal     `json:"amount_paid"`
	PendingAmount  decimal.Decimal     `json:"pending_amount"`
	Currency       string              `json:"currency"`
	IssueDate      time.Time           `json:"issue_date"`
	DueDate        *time.Time          `json:"due_date"`
	PaidDate       *time.Time          `json:"paid_date"`
	Items          []InvoiceItemEntity `json:"items,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type BudgetEntity struct {
	ID             int64              `json:"id"`
	UUID           uuid.UUID          `json:"uuid"`
	CategoryID     *int64             `json:"category_id"`
	Name           string             `json:"name"`
	Kind           types.CategoryKind `json:"kind"`
	PlannedAmount  decimal.Decimal    `json:"planned_amount"`
	ActualAmount   decimal.Decimal    `json:"actual_amount"`
	Currency       string             `json:"currency"`
	PeriodStart    time.Time          `json:"period_start"`
	PeriodEnd      time.Time          `json:"period_end"`
	FiscalYear     *int64             `json:"fiscal_year"`
	Percentage     decimal.Decimal    `json:"percentage"`
	Classification string             `json:"classification"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
