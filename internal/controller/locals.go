package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// companyIdFromCtx reads the company id the JWT middleware stored in locals.
// A route reached without the middleware gets a 401, not a panic.
func companyIdFromCtx(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("company_id").(string)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing authentication context")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid authentication context")
	}
	return id, nil
}
