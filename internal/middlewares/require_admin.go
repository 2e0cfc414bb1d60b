package middlewares

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/takoapp/tako/internal/handlers/api"
	"github.com/takoapp/tako/internal/tokens"
)

const AdminSessionKey = "adminSession"

// TokenVerifier is the token verification collaborator.
type TokenVerifier interface {
	Verify(ctx context.Context, tokenStr string, wantType string) (*tokens.Session, error)
}

// RequireAdmin rejects requests that do not carry a valid admin bearer
// token before the route handler runs.
func RequireAdmin(verifier TokenVerifier) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimPrefix(ctx.Get(fiber.HeaderAuthorization), "Bearer ")
		if tokenStr == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(
				api.NewErrorResponse(fiber.StatusUnauthorized, "Admin token required"),
			)
		}
		session, err := verifier.Verify(ctx.Context(), tokenStr, tokens.TokenTypeAdmin)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(
				api.NewErrorResponse(fiber.StatusUnauthorized, "Admin token required"),
			)
		}
		ctx.Locals(AdminSessionKey, session)
		return ctx.Next()
	}
}
