package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/opencivic/ledger/controllers/helpers"
	"github.com/opencivic/ledger/controllers/queries"
	"github.com/opencivic/ledger/services/summary_service"
)

func GetSummary(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	params := new(queries.PeriodFilters)
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

	summary, err := summary_service.Fetch(org_id, periodFromRange(params.TimeFrom, params.TimeTo))
	if err != nil {
		return storeError(c, "finance.summary", err)
	}

	return c.Status(200).JSON(summary)
}
