package helpers

import (
	"github.com/opencivic/ledger/config"
	"github.com/opencivic/ledger/models"
	"github.com/opencivic/ledger/types"
)

type CreateCategoryParams struct {
	Name string             `json:"name" form:"name" validate:"required"`
	Kind types.CategoryKind `json:"kind" form:"kind" validate:"required"`
}

func (p CreateCategoryParams) Messages() map[string]string {
	return ValidateMessage("finance.category")
}

func (p CreateCategoryParams) CreateCategory(orgID int64, err_src *Errors) *models.FinanceCategory {
	category := &models.FinanceCategory{
		OrgID:  orgID,
		Name:   p.Name,
		Kind:   p.Kind,
		Active: true,
	}

	Validate(category, err_src)

	if err_src.Size() > 0 {
		return nil
	}

	if result := config.DataBase.Create(category); result.Error != nil {
		err_src.Errors = append(err_src.Errors, "finance.category.create_failed")
		return nil
	}

	InvalidateOrgCache(orgID)

	return category
}

type UpdateCategoryParams struct {
	Name   string `json:"name" form:"name"`
	Active *bool  `json:"active" form:"active"`
}

// ApplyCategory patches name and active flag. Kind is immutable.
func (p UpdateCategoryParams) ApplyCategory(category *models.FinanceCategory, err_src *Errors) *models.FinanceCategory {
	if len(p.Name) > 0 {
		category.Name = p.Name
	}
	if p.Active != nil {
		category.Active = *p.Active
	}

	Validate(category, err_src)

	if err_src.Size() > 0 {
		return nil
	}

	if result := config.DataBase.Save(category); result.Error != nil {
		err_src.Errors = append(err_src.Errors, "finance.category.update_failed")
		return nil
	}

	InvalidateOrgCache(category.OrgID)

	return category
}
