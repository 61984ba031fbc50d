package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gookit/validate"

	"github.com/opencivic/ledger/config"
	"github.com/opencivic/ledger/controllers/entities"
	"github.com/opencivic/ledger/types"
)

// FinanceCategory is the per-organization income/expense taxonomy.
// Kind is immutable after creation; updates never touch it.
type FinanceCategory struct {
	ID        int64              `json:"id" gorm:"primaryKey"`
	UUID      uuid.UUID          `json:"uuid" gorm:"default:gen_random_uuid()"`
	OrgID     int64              `json:"org_id" validate:"required"`
	Name      string             `json:"name" validate:"required"`
	Kind      types.CategoryKind `json:"kind" validate:"required|ValidateKind"`
	Active    bool               `json:"active" gorm:"default:true"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (c FinanceCategory) Message() map[string]string {
	invalid_message := "finance.category.invalid_{field}"

	return validate.MS{
		"required": invalid_message,
	}
}

func (c FinanceCategory) ValidateKind(Kind types.CategoryKind) bool {
	return Kind == types.KindIncome || Kind == types.KindExpense
}

func (c *FinanceCategory) ToJSON() entities.CategoryEntity {
	return entities.CategoryEntity{
		ID:        c.ID,
		UUID:      c.UUID,
		Name:      c.Name,
		Kind:      c.Kind,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ListCategories returns the org's categories, optionally restricted
// to one kind. An org with no categories gets an empty slice.
func ListCategories(orgID int64, kind types.CategoryKind) ([]FinanceCategory, error) {
	categories := make([]FinanceCategory, 0)

	tx := config.DataBase.Order("name asc").Where("org_id = ?", orgID)
	if len(kind) > 0 {
		tx = tx.Where("kind = ?", kind)
	}

	if result := tx.Find(&categories); result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

func FindCategory(orgID int64, id int64) (*FinanceCategory, error) {
	var category *FinanceCategory

	if result := config.DataBase.Where("org_id = ?", orgID).First(&category, "id = ?", id); result.Error != nil {
		return nil, WrapNotFound(result.Error)
	}

	return category, nil
}
