package handlers

import (
	"net/http"

	"farm-backend/internal/models"
	"farm-backend/internal/services"
	"farm-backend/internal/utils"

	"github.com/gofiber/fiber/v3"
)

type AgronomyHandler struct {
	chatService *services.ChatService
}

func NewAgronomyHandler(chatService *services.ChatService) *AgronomyHandler {
	return &AgronomyHandler{chatService: chatService}
}

func (h *AgronomyHandler) Register(app *fiber.App) {
	group := app.Group("/api/v1/agronomy")

	group.Post("/chat", h.Chat)
	group.Get("/history", h.History)
}

// Chat answers an agronomy question with the keyword rules
func (h *AgronomyHandler) Chat(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req models.ChatRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	record, err := h.chatService.Ask(c.Context(), userID, &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to answer chat query")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(record))
}

// History returns the caller's recent chat interactions
func (h *AgronomyHandler) History(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	records, err := h.chatService.History(c.Context(), userID, queryInt(c, "limit", 20))
	if err != nil {
		return respondServiceError(c, err, "Failed to get chat history")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(records, len(records)))
}
