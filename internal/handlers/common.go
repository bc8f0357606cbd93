package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"farm-backend/internal/services"
	"farm-backend/internal/utils"

	"github.com/gofiber/fiber/v3"
)

// requireUserID pulls the authenticated user from the gateway header.
func requireUserID(c fiber.Ctx) (string, bool) {
	userID := c.Get("X-User-ID")
	return userID, userID != ""
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(
		utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
}

// respondServiceError maps the service sentinel errors onto HTTP statuses.
// Anything unexpected is logged and reported as a 500.
func respondServiceError(c fiber.Ctx, err error, logMsg string) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("VALIDATION_FAILED", err.Error()))
	case errors.Is(err, services.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(
			utils.CreateErrorResponse("NOT_FOUND", err.Error()))
	case errors.Is(err, services.ErrForbidden):
		return c.Status(http.StatusForbidden).JSON(
			utils.CreateErrorResponse("FORBIDDEN", err.Error()))
	case errors.Is(err, services.ErrInvalidState):
		return c.Status(http.StatusConflict).JSON(
			utils.CreateErrorResponse("INVALID_STATE", err.Error()))
	default:
		slog.Error(logMsg, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("INTERNAL_ERROR", logMsg))
	}
}
