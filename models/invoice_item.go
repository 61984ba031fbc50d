package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gookit/validate"
	"github.com/shopspring/decimal"

	"github.com/opencivic/ledger/controllers/entities"
)

// InvoiceItem is one billable line, owned by exactly one invoice.
// Amount is derived, never supplied by the caller.
type InvoiceItem struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	UUID        uuid.UUID       `json:"uuid" gorm:"default:gen_random_uuid()"`
	InvoiceID   int64           `json:"invoice_id" gorm:"index"`
	Description string          `json:"description" validate:"required"`
	Quantity    int64           `json:"quantity" validate:"ValidateQuantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"ValidateUnitPrice"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (i InvoiceItem) Message() map[string]string {
	invalid_message := "finance.invoice_item.invalid_{field}"

	return validate.MS{
		"required":          invalid_message,
		"ValidateQuantity":  "finance.invoice_item.non_positive_quantity",
		"ValidateUnitPrice": "finance.invoice_item.negative_unit_price",
	}
}

func (i InvoiceItem) ValidateQuantity(Quantity int64) bool {
	return Quantity > 0
}

func (i InvoiceItem) ValidateUnitPrice(UnitPrice decimal.Decimal) bool {
	return !UnitPrice.IsNegative()
}

// ComputeAmount sets Amount = Quantity × UnitPrice.
func (i *InvoiceItem) ComputeAmount() {
	i.Amount = i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

func (i *InvoiceItem) ToJSON() entities.InvoiceItemEntity {
	return entities.InvoiceItemEntity{
		ID:          i.ID,
		UUID:        i.UUID,
		Description: i.Description,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		Amount:      i.Amount,
	}
}

// SubtotalOf sums the derived amounts of a full item set.
func SubtotalOf(items []InvoiceItem) decimal.Decimal {
	subtotal := decimal.Zero

	for _, item := range items {
		subtotal = subtotal.Add(item.Amount)
	}

	return subtotal
}
