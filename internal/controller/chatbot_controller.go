package controller

import (
	"io"

	"tribe-chatbot-be/internal/dto"
	"tribe-chatbot-be/internal/pkg/serverutils"
	"tribe-chatbot-be/internal/service"
	"tribe-chatbot-be/pkg/extract"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	TrainFromFiles(ctx *fiber.Ctx) error
	TrainFromURL(ctx *fiber.Ctx) error
	Query(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService  service.IChatbotService
	trainingService service.ITrainingService
	chatService     service.IChatService
}

func NewChatbotController(
	chatbotService service.IChatbotService,
	trainingService service.ITrainingService,
	chatService service.IChatService,
) IChatbotController {
	return &chatbotController{
		chatbotService:  chatbotService,
		trainingService: trainingService,
		chatService:     chatService,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chatbot/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/train/files", c.TrainFromFiles)
	h.Post(":id/train/url", c.TrainFromURL)
	h.Post(":id/query", c.Query)
}

func (c *chatbotController) Create(ctx *fiber.Ctx) error {
	companyId, err := companyIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateChatbotRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.Create(ctx.Context(), companyId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create chatbot", res))
}

func (c *chatbotController) GetAll(ctx *fiber.Ctx) error {
	companyId, err := companyIdFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatbotService.GetAll(ctx.Context(), companyId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all chatbot", res))
}

func (c *chatbotController) Show(ctx *fiber.Ctx) error {
	companyId, err := companyIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chatbot id")
	}

	res, err := c.chatbotService.Show(ctx.Context(), companyId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chatbot", res))
}

func (c *chatbotController) Update(ctx *fiber.Ctx) error {
	companyId, err := companyIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chatbot id")
	}

	var req dto.UpdateChatbotRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.Update(ctx.Context(), companyId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update chatbot", res))
}

func (c *chatbotController) Delete(ctx *fiber.Ctx) error {
	companyId, err := companyIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chatbot id")
	}

	if err := c.chatbotService.Delete(ctx.Context(), companyId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete chatbot", nil))
}

func (c *chatbotController) TrainFromFiles(ctx *fiber.Ctx) error {
	companyId, err := companyIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chatbot id")
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "expected multipart form")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no files uploaded")
	}

	docs := make([]extract.Document, 0, len(files))
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return err
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return err
		}
		docs = append(docs, extract.Document{Name: fileHeader.Filename, Data: data})
	}

	res, err := c.trainingService.TrainFromFiles(ctx.Context(), companyId, id, docs)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Training finished", res))
}

func (c *chatbotController) TrainFromURL(ctx *fiber.Ctx) error {
	companyId, err := companyIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chatbot id")
	}

	var req dto.TrainFromURLRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.trainingService.TrainFromURL(ctx.Context(), companyId, id, req.URL)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Training finished", res))
}

func (c *chatbotController) Query(ctx *fiber.Ctx) error {
	companyId, err := companyIdFromCtx(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chatbot id")
	}

	// Ownership check; the query itself only needs the chatbot id.
	if _, err := c.chatbotService.Show(ctx.Context(), companyId, id); err != nil {
		return err
	}

	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Query(ctx.Context(), id, req.Question, nil)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success query chatbot", res))
}
