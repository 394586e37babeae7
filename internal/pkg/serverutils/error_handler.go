package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"rag-assistant-be/internal/repository/contract"
	"rag-assistant-be/internal/service"
)

// ErrorHandlerMiddleware maps service errors onto HTTP status codes so
// controllers can return errors unwrapped.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := "internal server error"

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.Is(err, contract.ErrDocumentNotFound),
			errors.Is(err, contract.ErrConversationNotFound):
			code = fiber.StatusNotFound
			message = err.Error()
		case errors.Is(err, service.ErrIngestionFailed):
			code = fiber.StatusUnprocessableEntity
			message = err.Error()
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
