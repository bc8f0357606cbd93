package handlers

import (
	"io"
	"net/http"

	"farm-backend/internal/models"
	"farm-backend/internal/services"
	"farm-backend/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const maxPhotoBytes = 10 << 20 // 10 MiB

type JournalHandler struct {
	journalService *services.JournalService
}

func NewJournalHandler(journalService *services.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

func (h *JournalHandler) Register(app *fiber.App) {
	group := app.Group("/api/v1/journal")

	group.Post("/entries", h.CreateEntry)
	group.Get("/entries", h.ListEntries)
	group.Get("/entries/:id", h.GetEntry)
	group.Put("/entries/:id", h.UpdateEntry)
	group.Delete("/entries/:id", h.DeleteEntry)
	group.Post("/entries/:id/photo", h.AttachPhoto)

	group.Post("/activities", h.AddActivity)
	group.Get("/activities", h.ListActivities)
}

// CreateEntry records a diary entry
func (h *JournalHandler) CreateEntry(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req services.CreateJournalEntryRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	entry, err := h.journalService.CreateEntry(c.Context(), userID, &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to create journal entry")
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(entry))
}

// ListEntries returns the caller's entries, optionally filtered by type
func (h *JournalHandler) ListEntries(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var entryType *models.JournalEntryType
	if raw := c.Query("entry_type"); raw != "" {
		t := models.JournalEntryType(raw)
		entryType = &t
	}

	entries, err := h.journalService.ListEntries(c.Context(), userID, entryType)
	if err != nil {
		return respondServiceError(c, err, "Failed to list journal entries")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(entries, len(entries)))
}

// GetEntry returns one entry with a presigned photo URL
func (h *JournalHandler) GetEntry(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid entry ID format"))
	}

	entry, err := h.journalService.GetEntry(c.Context(), userID, entryID)
	if err != nil {
		return respondServiceError(c, err, "Failed to get journal entry")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(entry))
}

// UpdateEntry updates one entry
func (h *JournalHandler) UpdateEntry(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid entry ID format"))
	}

	var req services.CreateJournalEntryRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	entry, err := h.journalService.UpdateEntry(c.Context(), userID, entryID, &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to update journal entry")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(entry))
}

// DeleteEntry removes one entry, photo included
func (h *JournalHandler) DeleteEntry(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid entry ID format"))
	}

	if err := h.journalService.DeleteEntry(c.Context(), userID, entryID); err != nil {
		return respondServiceError(c, err, "Failed to delete journal entry")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"deleted": true,
	}))
}

// AttachPhoto uploads a multipart photo for one entry
func (h *JournalHandler) AttachPhoto(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid entry ID format"))
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "photo file is required"))
	}
	if fileHeader.Size > maxPhotoBytes {
		return c.Status(http.StatusRequestEntityTooLarge).JSON(
			utils.CreateErrorResponse("FILE_TOO_LARGE", "Photo must be 10MB or smaller"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Failed to open uploaded photo"))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Failed to read uploaded photo"))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	entry, err := h.journalService.AttachPhoto(c.Context(), userID, entryID, data, contentType)
	if err != nil {
		return respondServiceError(c, err, "Failed to attach photo")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(entry))
}

// AddActivity records a structured field activity
func (h *JournalHandler) AddActivity(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req services.CreateActivityRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	activity, err := h.journalService.AddActivity(c.Context(), userID, &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to add field activity")
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(activity))
}

// ListActivities returns the caller's field activities
func (h *JournalHandler) ListActivities(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	activities, err := h.journalService.ListActivities(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "Failed to list field activities")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(activities, len(activities)))
}
