package handlers

import (
	"net/http"

	"farm-backend/internal/models"
	"farm-backend/internal/services"
	"farm-backend/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MarketHandler struct {
	marketService *services.MarketService
}

func NewMarketHandler(marketService *services.MarketService) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

func (h *MarketHandler) Register(app *fiber.App) {
	group := app.Group("/api/v1/market")

	group.Post("/prices", h.UpsertPrice)
	group.Get("/prices", h.ListPrices)
	group.Get("/prices/latest", h.GetLatestPrice)
	group.Get("/prices/trend", h.GetTrend)
	group.Get("/forecast", h.GetForecast)
	group.Get("/best-time-to-sell", h.GetSellAdvice)

	group.Post("/alerts", h.CreateAlert)
	group.Get("/alerts", h.ListAlerts)
	group.Delete("/alerts/:id", h.DeactivateAlert)
}

// UpsertPrice ingests one price quote
func (h *MarketHandler) UpsertPrice(c fiber.Ctx) error {
	var req models.UpsertMarketPriceRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	price, err := h.marketService.UpsertPrice(c.Context(), &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to upsert market price")
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(price))
}

// ListPrices returns quotes for a crop+market over a trailing period
func (h *MarketHandler) ListPrices(c fiber.Ctx) error {
	prices, err := h.marketService.ListPrices(c.Context(),
		c.Query("crop"), c.Query("market", "national"), queryInt(c, "days", 30))
	if err != nil {
		return respondServiceError(c, err, "Failed to list market prices")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(prices, len(prices)))
}

// GetLatestPrice returns the newest quote for a crop+market
func (h *MarketHandler) GetLatestPrice(c fiber.Ctx) error {
	crop := c.Query("crop")
	if crop == "" {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("VALIDATION_FAILED", "crop parameter is required"))
	}

	price, err := h.marketService.GetLatestPrice(c.Context(), crop, c.Query("market", "national"))
	if err != nil {
		return respondServiceError(c, err, "Failed to get latest price")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(price))
}

// GetTrend returns the trend analysis for a crop+market
func (h *MarketHandler) GetTrend(c fiber.Ctx) error {
	crop := c.Query("crop")
	if crop == "" {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("VALIDATION_FAILED", "crop parameter is required"))
	}

	trend, err := h.marketService.GetTrend(c.Context(), crop, c.Query("market", "national"), queryInt(c, "days", 30))
	if err != nil {
		return respondServiceError(c, err, "Failed to get price trend")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(trend))
}

// GetForecast returns the naive price forecast for a crop+market
func (h *MarketHandler) GetForecast(c fiber.Ctx) error {
	crop := c.Query("crop")
	if crop == "" {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("VALIDATION_FAILED", "crop parameter is required"))
	}

	forecast, err := h.marketService.GetForecast(c.Context(), crop, c.Query("market", "national"), queryInt(c, "days", 7))
	if err != nil {
		return respondServiceError(c, err, "Failed to get price forecast")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(forecast))
}

// GetSellAdvice recommends whether to sell now or wait
func (h *MarketHandler) GetSellAdvice(c fiber.Ctx) error {
	crop := c.Query("crop")
	if crop == "" {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("VALIDATION_FAILED", "crop parameter is required"))
	}

	advice, err := h.marketService.GetSellAdvice(c.Context(), crop, c.Query("market", "national"))
	if err != nil {
		return respondServiceError(c, err, "Failed to get sell advice")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(advice))
}

// CreateAlert registers a price alert for the caller
func (h *MarketHandler) CreateAlert(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req services.CreateAlertRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	alert, err := h.marketService.CreateAlert(c.Context(), userID, &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to create price alert")
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(alert))
}

// ListAlerts returns the caller's price alerts
func (h *MarketHandler) ListAlerts(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	alerts, err := h.marketService.ListAlerts(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "Failed to list price alerts")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(alerts, len(alerts)))
}

// DeactivateAlert turns one of the caller's alerts off
func (h *MarketHandler) DeactivateAlert(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	alertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid alert ID format"))
	}

	if err := h.marketService.DeactivateAlert(c.Context(), userID, alertID); err != nil {
		return respondServiceError(c, err, "Failed to deactivate price alert")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"deactivated": true,
	}))
}
