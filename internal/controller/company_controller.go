package controller

import (
	"tribe-chatbot-be/internal/dto"
	"tribe-chatbot-be/internal/pkg/serverutils"
	"tribe-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICompanyController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type companyController struct {
	service service.ICompanyService
}

func NewCompanyController(service service.ICompanyService) ICompanyController {
	return &companyController{service: service}
}

func (c *companyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/company/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Show)
	h.Put("", c.Update)
	h.Delete("", c.Delete)
}

func (c *companyController) Show(ctx *fiber.Ctx) error {
	companyId, err := companyIdFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Show(ctx.Context(), companyId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get company", res))
}

func (c *companyController) Update(ctx *fiber.Ctx) error {
	companyId, err := companyIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateCompanyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = companyId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update company", res))
}

func (c *companyController) Delete(ctx *fiber.Ctx) error {
	companyId, err := companyIdFromCtx(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.Context(), companyId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete company", nil))
}
