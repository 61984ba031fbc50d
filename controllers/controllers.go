package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/opencivic/ledger/controllers/helpers"
	"github.com/opencivic/ledger/models"
	"github.com/opencivic/ledger/types"
)

func GetTimestamp(c *fiber.Ctx) error {
	return c.Status(200).JSON(time.Now().Unix())
}

func CurrentOrgID(c *fiber.Ctx) int64 {
	org_id, ok := c.Locals("CurrentOrgID").(int64)
	if !ok {
		return 0
	}

	return org_id
}

func CurrentUser(c *fiber.Ctx) *models.Member {
	member, ok := c.Locals("CurrentUser").(*models.Member)
	if !ok {
		return nil
	}

	return member
}

// storeError maps ledger errors onto the response contract: 404 for
// missing records, 409 for conflicts, 422 for rejected transitions.
func storeError(c *fiber.Ctx, scope string, err error) error {
	switch err {
	case models.ErrNotFound:
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{scope + ".doesnt_exist"},
		})
	case models.ErrConflict:
		return c.Status(409).JSON(helpers.Errors{
			Errors: []string{scope + ".conflict"},
		})
	case models.ErrInvalidTransition:
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{scope + ".invalid_transition"},
		})
	default:
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}
}

func periodFromRange(time_from int64, time_to int64) types.Period {
	period := types.Period{}

	if time_from > 0 {
		period.TimeFrom = time.Unix(time_from, 0)
	}
	if time_to > 0 {
		period.TimeTo = time.Unix(time_to, 0)
	}

	return period
}
