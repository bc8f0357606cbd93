package handlers

import (
	"net/http"
	"strconv"

	"farm-backend/internal/models"
	"farm-backend/internal/services"
	"farm-backend/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ClimateHandler struct {
	climateService *services.ClimateService
}

func NewClimateHandler(climateService *services.ClimateService) *ClimateHandler {
	return &ClimateHandler{climateService: climateService}
}

func (h *ClimateHandler) Register(app *fiber.App) {
	group := app.Group("/api/v1/climate")

	group.Post("/weather", h.UpsertWeather)
	group.Get("/weather/history", h.GetWeatherHistory)
	group.Get("/weather/forecasts", h.GetWeatherForecasts)

	group.Post("/ndvi", h.RecordNDVI)
	group.Get("/ndvi", h.ListNDVI)

	group.Post("/risk/assess", h.RunRiskAssessment)
	group.Get("/risk/latest", h.GetLatestAssessment)
	group.Get("/risk/history", h.GetAssessmentHistory)

	group.Get("/analytics", h.GetAnalytics)

	group.Get("/alerts", h.ListAlerts)
	group.Patch("/alerts/:id/read", h.MarkAlertRead)
}

// UpsertWeather ingests one weather observation or forecast
func (h *ClimateHandler) UpsertWeather(c fiber.Ctx) error {
	var req models.UpsertWeatherRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	obs, err := h.climateService.UpsertWeather(c.Context(), &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to upsert weather")
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(obs))
}

// GetWeatherHistory returns historical readings for the caller's farm
func (h *ClimateHandler) GetWeatherHistory(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	days := queryInt(c, "days", 30)
	observations, err := h.climateService.GetWeatherHistory(c.Context(), userID, days)
	if err != nil {
		return respondServiceError(c, err, "Failed to get weather history")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(observations, len(observations)))
}

// GetWeatherForecasts returns upcoming forecast rows for the caller's farm
func (h *ClimateHandler) GetWeatherForecasts(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	observations, err := h.climateService.GetWeatherForecasts(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "Failed to get weather forecasts")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(observations, len(observations)))
}

// RecordNDVI stores one satellite measurement
func (h *ClimateHandler) RecordNDVI(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req models.CreateNDVIRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	record, err := h.climateService.RecordNDVI(c.Context(), userID, &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to record NDVI")
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(record))
}

// ListNDVI returns recent NDVI records for the caller's farm
func (h *ClimateHandler) ListNDVI(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	records, err := h.climateService.ListNDVI(c.Context(), userID, queryInt(c, "limit", 30))
	if err != nil {
		return respondServiceError(c, err, "Failed to list NDVI records")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(records, len(records)))
}

// RunRiskAssessment scores the trailing window and stores today's assessment
// covering the requested forward period
func (h *ClimateHandler) RunRiskAssessment(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	assessment, err := h.climateService.RunRiskAssessment(c.Context(), userID, queryInt(c, "days_ahead", 30))
	if err != nil {
		return respondServiceError(c, err, "Failed to run risk assessment")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(assessment))
}

// GetLatestAssessment returns the most recent assessment
func (h *ClimateHandler) GetLatestAssessment(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	assessment, err := h.climateService.GetLatestAssessment(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "Failed to get latest assessment")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(assessment))
}

// GetAssessmentHistory returns assessments over a trailing period
func (h *ClimateHandler) GetAssessmentHistory(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	assessments, err := h.climateService.GetAssessmentHistory(c.Context(), userID, queryInt(c, "days", 90))
	if err != nil {
		return respondServiceError(c, err, "Failed to get assessment history")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(assessments, len(assessments)))
}

// GetAnalytics aggregates weather, NDVI and risk for the caller's farm
func (h *ClimateHandler) GetAnalytics(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	analytics, err := h.climateService.GetAnalytics(c.Context(), userID, queryInt(c, "days", 30))
	if err != nil {
		return respondServiceError(c, err, "Failed to get climate analytics")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(analytics))
}

// ListAlerts returns active weather alerts for the caller
func (h *ClimateHandler) ListAlerts(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	alerts, err := h.climateService.ListAlerts(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "Failed to list weather alerts")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(alerts, len(alerts)))
}

// MarkAlertRead marks one of the caller's alerts as read
func (h *ClimateHandler) MarkAlertRead(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	alertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid alert ID format"))
	}

	if err := h.climateService.MarkAlertRead(c.Context(), userID, alertID); err != nil {
		return respondServiceError(c, err, "Failed to mark alert read")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"read": true,
	}))
}

func queryInt(c fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
