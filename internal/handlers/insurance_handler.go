package handlers

import (
	"net/http"

	"farm-backend/internal/models"
	"farm-backend/internal/services"
	"farm-backend/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type InsuranceHandler struct {
	insuranceService *services.InsuranceService
}

func NewInsuranceHandler(insuranceService *services.InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{insuranceService: insuranceService}
}

func (h *InsuranceHandler) Register(app *fiber.App) {
	group := app.Group("/api/v1/insurance")

	group.Post("/policies", h.CreatePolicy)
	group.Get("/policies", h.ListPolicies)
	group.Get("/policies/:id", h.GetPolicy)
	group.Post("/policies/:id/cancel", h.CancelPolicy)
	group.Post("/policies/:id/evaluate", h.EvaluateTriggers)
	group.Get("/policies/:id/payments", h.ListPayments)

	group.Post("/payments", h.RecordPayment)

	group.Post("/claims", h.FileClaim)
	group.Get("/claims", h.ListClaims)
	group.Patch("/claims/:id/status", h.UpdateClaimStatus)

	group.Post("/recommendations/generate", h.GenerateRecommendations)
	group.Get("/recommendations", h.ListRecommendations)

	group.Get("/analytics", h.GetAnalytics)
}

// CreatePolicy registers a policy with its triggers
func (h *InsuranceHandler) CreatePolicy(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req models.CreatePolicyRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	policy, err := h.insuranceService.CreatePolicy(c.Context(), userID, &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to create policy")
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(policy))
}

// ListPolicies returns the caller's policies
func (h *InsuranceHandler) ListPolicies(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	policies, err := h.insuranceService.ListPolicies(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "Failed to list policies")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(policies, len(policies)))
}

// GetPolicy returns one policy with its triggers
func (h *InsuranceHandler) GetPolicy(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	policyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid policy ID format"))
	}

	policy, triggers, err := h.insuranceService.GetPolicy(c.Context(), userID, policyID)
	if err != nil {
		return respondServiceError(c, err, "Failed to get policy")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"policy":   policy,
		"triggers": triggers,
	}))
}

// CancelPolicy cancels one of the caller's policies
func (h *InsuranceHandler) CancelPolicy(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	policyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid policy ID format"))
	}

	if err := h.insuranceService.CancelPolicy(c.Context(), userID, policyID); err != nil {
		return respondServiceError(c, err, "Failed to cancel policy")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"cancelled": true,
	}))
}

// EvaluateTriggers evaluates every pending trigger of a policy and fires the
// ones whose condition holds
func (h *InsuranceHandler) EvaluateTriggers(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	policyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid policy ID format"))
	}

	activations, err := h.insuranceService.EvaluatePolicyTriggers(c.Context(), userID, policyID)
	if err != nil {
		return respondServiceError(c, err, "Failed to evaluate policy triggers")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(evaluationResult(policyID, activations)))
}

// evaluationResult shapes the trigger-evaluation response. Nothing firing is
// a normal outcome and the payload says so explicitly.
func evaluationResult(policyID uuid.UUID, activations []models.TriggerActivation) map[string]any {
	if activations == nil {
		activations = []models.TriggerActivation{}
	}

	result := map[string]any{
		"policy_id":   policyID,
		"activations": activations,
		"fired":       len(activations),
	}
	if len(activations) == 0 {
		result["message"] = "no triggers activated"
	}

	return result
}

// ListPayments returns premium payments for one policy
func (h *InsuranceHandler) ListPayments(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	policyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid policy ID format"))
	}

	payments, err := h.insuranceService.ListPayments(c.Context(), userID, policyID)
	if err != nil {
		return respondServiceError(c, err, "Failed to list payments")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(payments, len(payments)))
}

// RecordPayment stores a premium payment
func (h *InsuranceHandler) RecordPayment(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req models.RecordPaymentRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	payment, err := h.insuranceService.RecordPayment(c.Context(), userID, &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to record payment")
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(payment))
}

// FileClaim files a manual claim
func (h *InsuranceHandler) FileClaim(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req models.CreateClaimRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	claim, err := h.insuranceService.FileManualClaim(c.Context(), userID, &req)
	if err != nil {
		return respondServiceError(c, err, "Failed to file claim")
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(claim))
}

// ListClaims returns claims across the caller's policies
func (h *InsuranceHandler) ListClaims(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	claims, err := h.insuranceService.ListClaims(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "Failed to list claims")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(claims, len(claims)))
}

type updateClaimStatusRequest struct {
	Status     models.ClaimStatus `json:"status"`
	AdminNotes string             `json:"admin_notes"`
}

// UpdateClaimStatus is the admin review step for manual claims
func (h *InsuranceHandler) UpdateClaimStatus(c fiber.Ctx) error {
	claimID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_UUID", "Invalid claim ID format"))
	}

	var req updateClaimStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	claim, err := h.insuranceService.UpdateClaimStatus(c.Context(), claimID, req.Status, req.AdminNotes)
	if err != nil {
		return respondServiceError(c, err, "Failed to update claim status")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(claim))
}

// GenerateRecommendations regenerates rule-based policy suggestions
func (h *InsuranceHandler) GenerateRecommendations(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	recs, err := h.insuranceService.GenerateRecommendations(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "Failed to generate recommendations")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(recs, len(recs)))
}

// ListRecommendations returns stored recommendations
func (h *InsuranceHandler) ListRecommendations(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	recs, err := h.insuranceService.ListRecommendations(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "Failed to list recommendations")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateListResponse(recs, len(recs)))
}

// GetAnalytics aggregates the caller's insurance position
func (h *InsuranceHandler) GetAnalytics(c fiber.Ctx) error {
	userID, ok := requireUserID(c)
	if !ok {
		return unauthorized(c)
	}

	analytics, err := h.insuranceService.GetAnalytics(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err, "Failed to get insurance analytics")
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(analytics))
}
