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

func GetTransactions(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	params := new(queries.TransactionFilters)
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

	var transactions []models.FinanceTransaction

	tx := config.DataBase.Order("transaction_date "+params.OrderBy).Where("org_id = ?", org_id)

	if len(params.Kind) > 0 {
		tx = tx.Where("kind = ?", params.Kind)
	}

	if len(params.PaymentStatus) > 0 {
		tx = tx.Where("payment_status = ?", params.PaymentStatus)
	}

	if params.CategoryID > 0 {
		tx = tx.Where("category_id = ?", params.CategoryID)
	}

	if params.MemberID > 0 {
		tx = tx.Where("member_id = ?", params.MemberID)
	}

	if params.TimeFrom > 0 {
		time_from := time.Unix(params.TimeFrom, 0)
		tx = tx.Where("transaction_date >= ?", time_from)
	}

	if params.TimeTo > 0 {
		time_to := time.Unix(params.TimeTo, 0)
		tx = tx.Where("transaction_date < ?", time_to)
	}

	if params.Limit > 0 {
		tx = tx.Limit(params.Limit)

		if params.Page > 1 {
			tx = tx.Offset((params.Page - 1) * params.Limit)
		}
	}

	if result := tx.Find(&transactions); result.Error != nil {
		return storeError(c, "finance.transaction", result.Error)
	}

	transactions_json := make([]entities.TransactionEntity, 0, len(transactions))
	for index := range transactions {
		transactions_json = append(transactions_json, transactions[index].ToJSON())
	}

	return c.Status(200).JSON(transactions_json)
}

func CreateTransaction(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	errors := new(helpers.Errors)
	payload := new(helpers.CreateTransactionParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	helpers.Validate(payload, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	transaction := payload.CreateTransaction(org_id, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	return c.Status(201).JSON(transaction.ToJSON())
}

func UpdateTransaction(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"finance.transaction.invalid_id"},
		})
	}

	transaction, err := models.FindTransaction(org_id, id)
	if err != nil {
		return storeError(c, "finance.transaction", err)
	}

	errors := new(helpers.Errors)
	payload := new(helpers.UpdateTransactionParams)

	if err := c.BodyParser(payload); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	transaction = payload.ApplyTransaction(transaction, errors)
	if errors.Size() > 0 {
		return c.Status(422).JSON(errors)
	}

	return c.Status(200).JSON(transaction.ToJSON())
}

func DeleteTransaction(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"finance.transaction.invalid_id"},
		})
	}

	transaction, err := models.FindTransaction(org_id, id)
	if err != nil {
		return storeError(c, "finance.transaction", err)
	}

	if result := config.DataBase.Delete(transaction); result.Error != nil {
		return storeError(c, "finance.transaction", result.Error)
	}

	helpers.InvalidateOrgCache(org_id)

	return c.SendStatus(204)
}
