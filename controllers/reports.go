package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/opencivic/ledger/controllers/helpers"
	"github.com/opencivic/ledger/controllers/queries"
	"github.com/opencivic/ledger/services/report_service"
	"github.com/opencivic/ledger/types"
)

func GetMonthlyReport(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	params := new(queries.ReportFilters)
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

	buckets, err := report_service.FetchMonthly(org_id, periodFromRange(params.TimeFrom, params.TimeTo))
	if err != nil {
		return storeError(c, "finance.report", err)
	}

	return c.Status(200).JSON(buckets)
}

func GetCategoryReport(c *fiber.Ctx) error {
	org_id := CurrentOrgID(c)

	params := new(queries.ReportFilters)
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

	kind := params.Kind
	if len(kind) == 0 {
		kind = types.KindExpense
	}

	slices, err := report_service.FetchCategoryBreakdown(org_id, periodFromRange(params.TimeFrom, params.TimeTo), kind)
	if err != nil {
		return storeError(c, "finance.report", err)
	}

	return c.Status(200).JSON(slices)
}
