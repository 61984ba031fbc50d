package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/opencivic/ledger/config"
	"github.com/opencivic/ledger/controllers/entities"
	"github.com/opencivic/ledger/controllers/helpers"
	"github.com/opencivic/ledger/controllers/queries"
	"github.com/opencivic/ledger/models"
)

func GetBudgets(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	params := new(queries.BudgetFilters)
	if err := c.QueryParser(params); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_query"},
		})
	}

	errors := new(helpers.Errors)
	helpers.Validate(params, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	var budgets []models.Budget

	tx := config.DataBase.Order("period_start desc").Where("org_id = ?", org_id)

	if len(params.Kind) > 0 {
		tx = tx.Where("kind = ?", params.Kind)
	}

	if params.FiscalYear > 0 {
		tx = tx.Where("fiscal_year = ?", params.FiscalYear)
	}

	if result := tx.Find(&budgets); result.Error != nil {
		return storeError(c, "finance.budget", result.Error)
	}

	budgets_json := make([]entities.BudgetEntity, 0, len(budgets))
	for index := range budgets {
		budgets_json = append(budgets_json, budgets[index].ToJSON())
	}

	return c.Status(200).JSON(budgets_json)
}

func CreateBudget(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	errors := new(helpers.Errors)
	payload := new(helpers.CreateBudgetParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	helpers.Validate(payload, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	budget := payload.CreateBudget(org_id, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	return c.Status(201).JSON(budget.ToJSON())
}

func UpdateBudget(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"finance.budget.invalid_id"},
		})
	}

	budget, err := models.FindBudget(org_id, id)
	if err != nil {
		return storeError(c, "finance.budget", err)
	}

	errors := new(helpers.Errors)
	payload := new(helpers.UpdateBudgetParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	budget = payload.ApplyBudget(budget, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	return c.Status(200).JSON(budget.ToJSON())
}

func DeleteBudget(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"finance.budget.invalid_id"},
		})
	}

	budget, err := models.FindBudget(org_id, id)
	if err != nil {
		return storeError(c, "finance.budget", err)
	}

	if result := config.DataBase.Delete(budget); result.Error != nil {
		return storeError(c, "finance.budget", result.Error)
	}

	return c.SendStatus(204)
}

func RecalculateBudget(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"finance.budget.invalid_id"},
		})
	}

	budget, err := models.FindBudget(org_id, id)
	if err != nil {
		return storeError(c, "finance.budget", err)
	}

	if err := budget.RecalculateActual(); err != nil {
		return storeError(c, "finance.budget", err)
	}

	return c.Status(200).JSON(budget.ToJSON())
}
