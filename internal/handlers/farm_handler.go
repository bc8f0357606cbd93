package handlers

import (
	"net/http"

	"farm-backend/internal/services"
	"farm-backend/internal/utils"

	"github.com/gofiber/fiber/v3"
)

type FarmHandler struct {
	farmService *services.FarmService
}

func NewFarmHandler(farmService *services.FarmService) *FarmHandler {
	return &FarmHandler{farmService: farmService}
}

func (h *FarmHandler) Register(app *fiber.App) {
	group := app.Group("/api/v1/farms")

	group.Post("/", h.CreateFarm)
	group.Get("/me", h.GetMyFarm)
	group.Put("/me", h.UpdateFarm)
	group.Delete("/me", h.DeleteFarm)

	group.Post("/harvests", h.AddHarvest)
	group.Get("/harvests", h.ListHarvests)
	group.Post("/expenses", h.AddExpense)
	group.Get("/expenses", h.ListExpenses)
	group.Get("/analytics", h.GetAnalytics)
}

// CreateFarm registers the caller's farm profile
func (h *FarmHandler) CreateFarm(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req services.CreateFarmRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	farm, err := h.farmService.CreateFarm(c.Context(), userID, &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to create farm")
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(farm))
}

// GetMyFarm returns the caller's farm profile
func (h *FarmHandler) GetMyFarm(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	farm, err := h.farmService.GetMyFarm(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "Failed to get farm")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(farm))
}

// UpdateFarm updates the caller's farm profile
func (h *FarmHandler) UpdateFarm(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req services.CreateFarmRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	farm, err := h.farmService.UpdateFarm(c.Context(), userID, &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to update farm")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(farm))
}

// DeleteFarm removes the caller's farm profile
func (h *FarmHandler) DeleteFarm(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.farmService.DeleteFarm(c.Context(), userID); err != nil {
		return respondServiceError(c, err, "Failed to delete farm")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"deleted": true,
	}))
}

// AddHarvest records a harvest for the caller's farm
func (h *FarmHandler) AddHarvest(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req services.CreateHarvestRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	harvest, err := h.farmService.AddHarvest(c.Context(), userID, &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to add harvest")
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(harvest))
}

// ListHarvests returns the caller's harvest records
func (h *FarmHandler) ListHarvests(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	harvests, err := h.farmService.ListHarvests(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "Failed to list harvests")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(harvests, len(harvests)))
}

// AddExpense records an expense for the caller's farm
func (h *FarmHandler) AddExpense(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req services.CreateExpenseRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	expense, err := h.farmService.AddExpense(c.Context(), userID, &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to add expense")
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(expense))
}

// ListExpenses returns the caller's expense records
func (h *FarmHandler) ListExpenses(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	expenses, err := h.farmService.ListExpenses(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "Failed to list expenses")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(expenses, len(expenses)))
}

// GetAnalytics returns aggregated harvests and expenses
func (h *FarmHandler) GetAnalytics(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	analytics, err := h.farmService.GetAnalytics(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "Failed to get farm analytics")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(analytics))
}
