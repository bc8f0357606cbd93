package handlers

import (
	"net/http"

	"farm-backend/internal/services"
	"farm-backend/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) Register(app *fiber.App) {
	group := app.Group("/api/v1/notifications")

	group.Get("/", h.List)
	group.Patch("/:id/read", h.MarkRead)
	group.Post("/read-all", h.MarkAllRead)
}

// List returns the caller's notifications, optionally unread only
func (h *NotificationHandler) List(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.notificationService.List(c.Context(), userID, unreadOnly)
	if err != nil {
		return respondServiceError(c, err, "Failed to list notifications")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(notifications, len(notifications)))
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid notification ID format"))
	}

	if err := h.notificationService.MarkRead(c.Context(), userID, id); err != nil {
		return respondServiceError(c, err, "Failed to mark notification read")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"read": true,
	}))
}

// MarkAllRead marks every unread notification as read
func (h *NotificationHandler) MarkAllRead(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	count, err := h.notificationService.MarkAllRead(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "Failed to mark notifications read")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"marked_read": count,
	}))
}
