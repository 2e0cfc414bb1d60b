package api

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/takoapp/tako/internal/auth"
	"github.com/takoapp/tako/model"
)

// AdminService is the consumer-side view of auth.AdminService.
type AdminService interface {
	Authenticate(ctx context.Context, email, password, clientIP string) (*model.Admin, string, error)
}

type AdminHandler struct {
	adminService AdminService
	resolver     ClientIPResolver
}

func NewAdminHandler(adminService AdminService, resolver ClientIPResolver) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		resolver:     resolver,
	}
}

type adminAuthRequest struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

type adminInfoResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type adminAuthResponse struct {
	Token string            `json:"token"`
	Admin adminInfoResponse `json:"admin"`
}

// PostAuthWithPassword handles POST /admins/auth-with-password.
func (h *AdminHandler) PostAuthWithPassword(ctx *fiber.Ctx) error {
	var body adminAuthRequest
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(
			NewErrorResponse(fiber.StatusBadRequest, "Invalid request body"),
		)
	}
	if body.Identity == "" || body.Password == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(
			NewErrorResponse(fiber.StatusBadRequest, "Identity and password cannot be empty"),
		)
	}

	admin, token, err := h.adminService.Authenticate(ctx.Context(), body.Identity, body.Password, h.resolver.ClientIP(ctx))
	if err != nil {
		if errors.Is(err, auth.ErrAdminCredentials) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(
				NewErrorResponse(fiber.StatusUnauthorized, "Authentication failed"),
			)
		}
		slog.Error("Admin authentication error", "error", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(
			NewErrorResponse(fiber.StatusInternalServerError, "Internal server error"),
		)
	}

	return ctx.Status(fiber.StatusOK).JSON(NewDataResponse(adminAuthResponse{
		Token: token,
		Admin: adminInfoResponse{
			ID:    admin.ID,
			Email: admin.Email,
		},
	}))
}
