package helpers

import (
	"github.com/gookit/validate"

	"github.com/opencivic/ledger/types"
)

type Errors struct {
	Errors []string `json:"errors"`
}

func (e Errors) Size() int {
	return len(e.Errors)
}

func Validate(payload interface{}, err_src *Errors) {
	v := validate.Struct(payload)
	if !v.Validate() {
		for _, errs := range v.Errors.All() {
			for _, err := range errs {
				err_src.Errors = append(err_src.Errors, err)
			}
		}
	}
}

func ValidateMessage(scope string) map[string]string {
	invalid_message := scope + ".invalid_{field}"

	return validate.MS{
		"required": invalid_message,
	}
}

func ValidateOrderBy(val types.OrderBy) bool {
	return len(val) == 0 || val == types.OrderByAsc || val == types.OrderByDesc
}

func ValidateKindFilter(val types.CategoryKind) bool {
	return len(val) == 0 || val == types.KindIncome || val == types.KindExpense
}

func ValidatePaymentStatusFilter(val types.PaymentStatus) bool {
	switch val {
	case "", types.PaymentStatusPending, types.PaymentStatusCompleted, types.PaymentStatusFailed, types.PaymentStatusRefunded, types.PaymentStatusCancelled:
		return true
	}

	return false
}

func ValidateInvoiceStatusFilter(val types.InvoiceStatus) bool {
	switch val {
	case "", types.InvoiceStatusDraft, types.InvoiceStatusSent, types.InvoiceStatusPaid, types.InvoiceStatusPartial, types.InvoiceStatusOverdue, types.InvoiceStatusCancelled:
		return true
	}

	return false
}
