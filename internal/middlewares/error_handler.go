package middlewares

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/takoapp/tako/internal/handlers/api"
)

// ErrorHandler is the fiber fallback for errors that escape the handlers.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	if code == fiber.StatusInternalServerError {
		slog.Error("unhandled error", "path", ctx.Path(), "code", code, "error", err)
		return ctx.Status(code).JSON(api.NewErrorResponse(code, "Internal server error"))
	}
	return ctx.Status(code).JSON(api.NewErrorResponse(code, err.Error()))
}
