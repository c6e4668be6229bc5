package serverutils

import (
	"errors"

	"tribe-chatbot-be/internal/service"
	"tribe-chatbot-be/pkg/embedding"
	"tribe-chatbot-be/pkg/extract"
	"tribe-chatbot-be/pkg/llm"
	"tribe-chatbot-be/pkg/vectorstore"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors returned by controllers into JSON
// error responses. Sentinel errors from the service and pipeline packages map
// to specific statuses; anything unknown is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := statusFor(err)
		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}

func statusFor(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrSessionExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, vectorstore.ErrCollectionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, vectorstore.ErrDimensionMismatch):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrTenantNotTrained):
		// Distinct from 404: the chatbot exists, it just has no knowledge yet.
		return fiber.StatusPreconditionFailed
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, embedding.ErrBackend), errors.Is(err, llm.ErrBackend):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
