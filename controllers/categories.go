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

func GetCategories(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	params := new(queries.CategoryFilters)
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

	categories, err := models.ListCategories(org_id, params.Kind)
	if err != nil {
		return storeError(c, "finance.category", err)
	}

	categories_json := make([]entities.CategoryEntity, 0, len(categories))
	for index := range categories {
		categories_json = append(categories_json, categories[index].ToJSON())
	}

	return c.Status(200).JSON(categories_json)
}

func CreateCategory(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	errors := new(helpers.Errors)
	payload := new(helpers.CreateCategoryParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	helpers.Validate(payload, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	category := payload.CreateCategory(org_id, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	return c.Status(201).JSON(category.ToJSON())
}

func UpdateCategory(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"finance.category.invalid_id"},
		})
	}

	category, err := models.FindCategory(org_id, id)
	if err != nil {
		return storeError(c, "finance.category", err)
	}

	errors := new(helpers.Errors)
	payload := new(helpers.UpdateCategoryParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	category = payload.ApplyCategory(category, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	return c.Status(200).JSON(category.ToJSON())
}

func DeleteCategory(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"finance.category.invalid_id"},
		})
	}

	category, err := models.FindCategory(org_id, id)
	if err != nil {
		return storeError(c, "finance.category", err)
	}

	if result := config.DataBase.Delete(category); result.Error != nil {
		return storeError(c, "finance.category", result.Error)
	}

	helpers.InvalidateOrgCache(org_id)

	return c.SendStatus(204)
}
