package api

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/takoapp/tako/internal/auth"
	"github.com/takoapp/tako/internal/config"
)

// IPAuthService is the consumer-side view of auth.IPAuthService.
type IPAuthService interface {
	Authenticate(ctx context.Context, req auth.IPAuthRequest) (*auth.AuthResult, error)
}

// ClientIPResolver yields the caller's real address for a request.
type ClientIPResolver interface {
	ClientIP(ctx *fiber.Ctx) string
}

type RecordAuthHandler struct {
	ipAuthService IPAuthService
	resolver      ClientIPResolver
}

func NewRecordAuthHandler(ipAuthService IPAuthService, resolver ClientIPResolver) *RecordAuthHandler {
	return &RecordAuthHandler{
		ipAuthService: ipAuthService,
		resolver:      resolver,
	}
}

type recordAuthRequest struct {
	Identity      string `json:"identity"`
	IdentityField string `json:"identityField"`
	IPsField      string `json:"ipsField"`
}

type recordResponse struct {
	ID         uint           `json:"id"`
	Collection string         `json:"collection"`
	Data       map[string]any `json:"data"`
}

type recordAuthResponse struct {
	Token  string         `json:"token"`
	Record recordResponse `json:"record"`
}

// PostAuthWithIP handles POST /collections/:collection/auth-with-ip.
func (h *RecordAuthHandler) PostAuthWithIP(ctx *fiber.Ctx) error {
	var body recordAuthRequest
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(
			NewErrorResponse(fiber.StatusBadRequest, "Invalid request body"),
		)
	}
	if body.Identity == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(
			NewErrorResponse(fiber.StatusBadRequest, "Identity cannot be empty"),
		)
	}
	if body.IdentityField == "" {
		body.IdentityField = config.DefaultIdentityField
	}
	if body.IPsField == "" {
		body.IPsField = config.DefaultIPsField
	}

	result, err := h.ipAuthService.Authenticate(ctx.Context(), auth.IPAuthRequest{
		Collection:    ctx.Params("collection"),
		Identity:      body.Identity,
		IdentityField: body.IdentityField,
		IPsField:      body.IPsField,
		ClientIP:      h.resolver.ClientIP(ctx),
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrCollectionNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(
				NewErrorResponse(fiber.StatusNotFound, "Collection not found"),
			)
		case errors.Is(err, auth.ErrUnknownField):
			return ctx.Status(fiber.StatusBadRequest).JSON(
				NewErrorResponse(fiber.StatusBadRequest, err.Error()),
			)
		case errors.Is(err, auth.ErrUnauthorized):
			return ctx.Status(fiber.StatusUnauthorized).JSON(
				NewErrorResponse(fiber.StatusUnauthorized, "Authentication failed"),
			)
		default:
			slog.Error("IP authentication error", "collection", ctx.Params("collection"), "error", err)
			return ctx.Status(fiber.StatusInternalServerError).JSON(
				NewErrorResponse(fiber.StatusInternalServerError, "Internal server error"),
			)
		}
	}

	return ctx.Status(fiber.StatusOK).JSON(NewDataResponse(recordAuthResponse{
		Token: result.Token,
		Record: recordResponse{
			ID:         result.Record.ID,
			Collection: result.Session.Collection,
			Data:       result.Record.Data,
		},
	}))
}
