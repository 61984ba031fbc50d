package helpers

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/opencivic/ledger/config"
	"github.com/opencivic/ledger/models"
	"github.com/opencivic/ledger/types"
)

type InvoiceItemParams struct {
	Description string          `json:"description" form:"description" validate:"required"`
	Quantity    int64           `json:"quantity" form:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" form:"unit_price"`
}

type CreateInvoiceParams struct {
	MemberID       int64               `json:"member_id" form:"member_id"`
	InvoiceNumber  string              `json:"invoice_number" form:"invoice_number"`
	NumberPrefix   string              `json:"number_prefix" form:"number_prefix"`
	TaxAmount      decimal.Decimal     `json:"tax_amount" form:"tax_amount"`
	DiscountAmount decimal.Decimal     `json:"discount_amount" form:"discount_amount"`
	Currency       string              `json:"currency" form:"currency" validate:"required"`
	IssueDate      int64               `json:"issue_date" form:"issue_date"`
	DueDate        int64               `json:"due_date" form:"due_date"`
	Items          []InvoiceItemParams `json:"items" form:"items"`
}

func (p CreateInvoiceParams) Messages() map[string]string {
	return ValidateMessage("finance.invoice")
}

// GenerateInvoiceNumber builds PREFIX-yyyymm-XXXXXX. The suffix comes
// from a fresh uuid, but uniqueness is still enforced at create time.
func GenerateInvoiceNumber(prefix string, now time.Time) string {
	if len(prefix) == 0 {
		prefix = "INV"
	}

	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]

	return strings.ToUpper(prefix) + "-" + now.Format("200601") + "-" + suffix
}

func (p CreateInvoiceParams) buildItems(err_src *Errors) []models.InvoiceItem {
	if len(p.Items) == 0 {
		err_src.Errors = append(err_src.Errors, "finance.invoice.missing_items")
		return nil
	}

	items := make([]models.InvoiceItem, 0, len(p.Items))
	for _, item_params := range p.Items {
		item := models.InvoiceItem{
			Description: item_params.Description,
			Quantity:    item_params.Quantity,
			UnitPrice:   item_params.UnitPrice,
		}
		item.ComputeAmount()

		Validate(item, err_src)
		items = append(items, item)
	}

	if err_src.Size() > 0 {
		return nil
	}

	return items
}

// CreateInvoice writes the invoice and its full item set in one
// database transaction. Totals are recomputed server-side, and the
// invoice number is checked against the org inside the same
// transaction, so no orphan invoice and no duplicate number can land.
func (p CreateInvoiceParams) CreateInvoice(orgID int64, err_src *Errors) *models.Invoice {
	now := time.Now()

	number := p.InvoiceNumber
	if len(number) == 0 {
		number = GenerateInvoiceNumber(p.NumberPrefix, now)
	}

	issue_date := now
	if p.IssueDate > 0 {
		issue_date = time.Unix(p.IssueDate, 0)
	}

	invoice := &models.Invoice{
		OrgID:          orgID,
		InvoiceNumber:  number,
		Status:         types.InvoiceStatusDraft,
		TaxAmount:      p.TaxAmount,
		DiscountAmount: p.DiscountAmount,
		AmountPaid:     decimal.Zero,
		Currency:       p.Currency,
		IssueDate:      issue_date,
	}

	if p.MemberID > 0 {
		invoice.MemberID = sql.NullInt64{Int64: p.MemberID, Valid: true}
	}

	if p.DueDate > 0 {
		invoice.DueDate = sql.NullTime{Time: time.Unix(p.DueDate, 0), Valid: true}
	}

	items := p.buildItems(err_src)
	Validate(invoice, err_src)

	if err_src.Size() > 0 {
		return nil
	}

	invoice.RecomputeTotals(items)

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		var existing models.Invoice
		result := tx.Where("org_id = ? AND invoice_number = ?", orgID, invoice.InvoiceNumber).First(&existing)
		if result.Error == nil {
			return models.ErrConflict
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		if result := tx.Create(invoice); result.Error != nil {
			return result.Error
		}

		for index := range items {
			items[index].InvoiceID = invoice.ID
		}

		if result := tx.Create(&items); result.Error != nil {
			return result.Error
		}

		return nil
	})
	if err == models.ErrConflict {
		err_src.Errors = append(err_src.Errors, "finance.invoice.number_taken")
		return nil
	}
	if err != nil {
		err_src.Errors = append(err_src.Errors, "finance.invoice.create_failed")
		return nil
	}

	InvalidateOrgCache(orgID)

	return invoice
}

type TransitionInvoiceParams struct {
	Action types.InvoiceAction `json:"action" form:"action" validate:"required"`
	Amount decimal.Decimal     `json:"amount" form:"amount"`
}

func (p TransitionInvoiceParams) Messages() map[string]string {
	return ValidateMessage("finance.invoice")
}

func lockForUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// TransitionInvoice applies one state-machine action under a row lock
// and persists the result as a single update.
func TransitionInvoice(orgID int64, id int64, params TransitionInvoiceParams) (*models.Invoice, error) {
	var invoice *models.Invoice

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(lockForUpdate()).Where("org_id = ?", orgID).First(&invoice, "id = ?", id)
		if result.Error != nil {
			return models.WrapNotFound(result.Error)
		}

		if err := invoice.Apply(params.Action, params.Amount, time.Now()); err != nil {
			return err
		}

		return tx.Model(invoice).Updates(map[string]interface{}{
			"status":      invoice.Status,
			"amount_paid": invoice.AmountPaid,
			"paid_date":   invoice.PaidDate,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	InvalidateOrgCache(orgID)

	return invoice, nil
}

type UpdateInvoiceParams struct {
	MemberID       int64               `json:"member_id" form:"member_id"`
	TaxAmount      decimal.Decimal     `json:"tax_amount" form:"tax_amount"`
	DiscountAmount decimal.Decimal     `json:"discount_amount" form:"discount_amount"`
	Currency       string              `json:"currency" form:"currency"`
	IssueDate      int64               `json:"issue_date" form:"issue_date"`
	DueDate        int64               `json:"due_date" form:"due_date"`
	Items          []InvoiceItemParams `json:"items" form:"items"`
}

// ApplyInvoice patches invoice fields; when Items is supplied the full
// item set is replaced and totals recomputed, all inside one database
// transaction so the subtotal invariant can never be observed broken.
func (p UpdateInvoiceParams) ApplyInvoice(invoice *models.Invoice, err_src *Errors) *models.Invoice {
	if p.MemberID > 0 {
		invoice.MemberID = sql.NullInt64{Int64: p.MemberID, Valid: true}
	}
	if !p.TaxAmount.IsZero() {
		invoice.TaxAmount = p.TaxAmount
	}
	if !p.DiscountAmount.IsZero() {
		invoice.DiscountAmount = p.DiscountAmount
	}
	if len(p.Currency) > 0 {
		invoice.Currency = p.Currency
	}
	if p.IssueDate > 0 {
		invoice.IssueDate = time.Unix(p.IssueDate, 0)
	}
	if p.DueDate > 0 {
		invoice.DueDate = sql.NullTime{Time: time.Unix(p.DueDate, 0), Valid: true}
	}

	var items []models.InvoiceItem
	if len(p.Items) > 0 {
		items = p.buildReplacementItems(err_src)
	}

	Validate(invoice, err_src)

	if err_src.Size() > 0 {
		return nil
	}

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		if items != nil {
			if result := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}); result.Error != nil {
				return result.Error
			}

			for index := range items {
				items[index].InvoiceID = invoice.ID
			}

			if result := tx.Create(&items); result.Error != nil {
				return result.Error
			}

			invoice.RecomputeTotals(items)
		} else {
			current, err := invoice.Items()
			if err != nil {
				return err
			}
			invoice.RecomputeTotals(current)
		}

		if invoice.AmountPaid.GreaterThan(invoice.TotalAmount) {
			return models.ErrInvalidTransition
		}

		return tx.Save(invoice).Error
	})
	if err == models.ErrInvalidTransition {
		err_src.Errors = append(err_src.Errors, "finance.invoice.paid_exceeds_total")
		return nil
	}
	if err != nil {
		err_src.Errors = append(err_src.Errors, "finance.invoice.update_failed")
		return nil
	}

	InvalidateOrgCache(invoice.OrgID)

	return invoice
}

func (p UpdateInvoiceParams) buildReplacementItems(err_src *Errors) []models.InvoiceItem {
	create := CreateInvoiceParams{Items: p.Items}

	return create.buildItems(err_src)
}
