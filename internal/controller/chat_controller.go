package controller

import (
	"tribe-chatbot-be/internal/dto"
	"tribe-chatbot-be/internal/pkg/serverutils"
	"tribe-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// chatController exposes the public widget endpoints. No JWT here: visitors
// are anonymous and scoped by their session.
type IChatController interface {
	RegisterRoutes(r fiber.Router)
	StartSession(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService    service.IChatService
	visitorService service.IVisitorService
}

func NewChatController(chatService service.IChatService, visitorService service.IVisitorService) IChatController {
	return &chatController{
		chatService:    chatService,
		visitorService: visitorService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post(":chatbotId/session", c.StartSession)
	h.Post(":chatbotId/message", c.SendMessage)
	h.Get("session/:sessionId/history", c.History)
}

func (c *chatController) StartSession(ctx *fiber.Ctx) error {
	chatbotId, err := uuid.Parse(ctx.Params("chatbotId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chatbot id")
	}

	anonymousId := ctx.Query("visitor_anonymous_id")

	res, err := c.visitorService.StartSession(ctx.Context(), chatbotId, anonymousId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session started", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	chatbotId, err := uuid.Parse(ctx.Params("chatbotId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chatbot id")
	}

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendMessage(ctx.Context(), chatbotId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.chatService.History(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}
