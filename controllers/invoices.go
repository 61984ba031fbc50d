package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/opencivic/ledger/config"
	"github.com/opencivic/ledger/controllers/entities"
	"github.com/opencivic/ledger/controllers/helpers"
	"github.com/opencivic/ledger/controllers/queries"
	"github.com/opencivic/ledger/models"
	"github.com/opencivic/ledger/types"
)

func GetInvoices(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	params := new(queries.InvoiceFilters)
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

	if len(params.OrderBy) == 0 {
		params.OrderBy = types.OrderByDesc
	}

	var invoices []models.Invoice

	tx := config.DataBase.Order("issue_date "+params.OrderBy).Where("org_id = ?", org_id)

	if len(params.Status) > 0 {
		tx = tx.Where("status = ?", params.Status)
	}

	if params.MemberID > 0 {
		tx = tx.Where("member_id = ?", params.MemberID)
	}

	if params.TimeFrom > 0 {
		time_from := time.Unix(params.TimeFrom, 0)
		tx = tx.Where("issue_date >= ?", time_from)
	}

	if params.TimeTo > 0 {
		time_to := time.Unix(params.TimeTo, 0)
		tx = tx.Where("issue_date < ?", time_to)
	}

	if params.Limit > 0 {
		tx = tx.Limit(params.Limit)

		if params.Page > 1 {
			tx = tx.Offset((params.Page - 1) * params.Limit)
		}
	}

	if result := tx.Find(&invoices); result.Error != nil {
		return storeError(c, "finance.invoice", result.Error)
	}

	invoices_json := make([]entities.InvoiceEntity, 0, len(invoices))
	for index := range invoices {
		invoices_json = append(invoices_json, invoices[index].ToJSON(nil))
	}

	return c.Status(200).JSON(invoices_json)
}

func GetInvoice(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"finance.invoice.invalid_id"},
		})
	}

	invoice, err := models.FindInvoice(org_id, id)
	if err != nil {
		return storeError(c, "finance.invoice", err)
	}

	items, err := invoice.Items()
	if err != nil {
		return storeError(c, "finance.invoice", err)
	}

	return c.Status(200).JSON(invoice.ToJSON(items))
}

func CreateInvoice(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	errors := new(helpers.Errors)
	payload := new(helpers.CreateInvoiceParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	helpers.Validate(payload, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	invoice := payload.CreateInvoice(org_id, errors)
	if errors.Size() > 0 {
		for _, code := range errors.Errors {
			if code == "finance.invoice.number_taken" {
				return c.Status(409).JSON(errors)
			}
		}

		return c.Status(422).JSON(errors)
	}

	items, err := invoice.Items()
	if err != nil {
		return storeError(c, "finance.invoice", err)
	}

	return c.Status(201).JSON(invoice.ToJSON(items))
}

func UpdateInvoice(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"finance.invoice.invalid_id"},
		})
	}

	invoice, err := models.FindInvoice(org_id, id)
	if err != nil {
		return storeError(c, "finance.invoice", err)
	}

	errors := new(helpers.Errors)
	payload := new(helpers.UpdateInvoiceParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	invoice = payload.ApplyInvoice(invoice, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	items, err := invoice.Items()
	if err != nil {
		return storeError(c, "finance.invoice", err)
	}

	return c.Status(200).JSON(invoice.ToJSON(items))
}

func TransitionInvoice(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"finance.invoice.invalid_id"},
		})
	}

	errors := new(helpers.Errors)
	payload := new(helpers.TransitionInvoiceParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	helpers.Validate(payload, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	invoice, err := helpers.TransitionInvoice(org_id, id, *payload)
	if err != nil {
		return storeError(c, "finance.invoice", err)
	}

	return c.Status(200).JSON(invoice.ToJSON(nil))
}
