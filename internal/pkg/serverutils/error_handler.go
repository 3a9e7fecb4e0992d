package serverutils

import (
	"errors"

	"invention-disclosure-be/internal/service"
	"invention-disclosure-be/pkg/disclosure"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates domain errors into HTTP responses so
// controllers can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		switch {
		case errors.Is(err, service.ErrConversationNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, disclosure.ErrUnrecognizedSection):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, disclosure.ErrPlaceholderNotFound):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, service.ErrUnsupportedFileType):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, service.ErrNoRecipient):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
		}
	}
}
