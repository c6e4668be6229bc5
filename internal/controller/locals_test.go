package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func guardedApp(prepare func(ctx *fiber.Ctx)) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", func(ctx *fiber.Ctx) error {
		if prepare != nil {
			prepare(ctx)
		}
		companyId, err := companyIdFromCtx(ctx)
		if err != nil {
			return err
		}
		return ctx.SendString(companyId.String())
	})
	return app
}

// A route reached without the JWT middleware must answer 401, not panic.
func TestCompanyIdFromCtxMissing(t *testing.T) {
	app := guardedApp(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCompanyIdFromCtxMalformed(t *testing.T) {
	app := guardedApp(func(ctx *fiber.Ctx) {
		ctx.Locals("company_id", "not-a-uuid")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCompanyIdFromCtxValid(t *testing.T) {
	companyId := uuid.New()
	app := guardedApp(func(ctx *fiber.Ctx) {
		ctx.Locals("company_id", companyId.String())
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
