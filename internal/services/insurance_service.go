package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"farm-backend/internal/event"
	"farm-backend/internal/models"
	"farm-backend/internal/repository"
	"farm-backend/internal/utils"

	"github.com/google/uuid"
)

// Recommendation rules derived from the latest risk assessment.
const (
	droughtCoverPerAcre    = 50000.0
	floodCoverPerAcre      = 45000.0
	multiPerilCoverPerAcre = 60000.0

	droughtPremiumRate    = 0.05
	floodPremiumRate      = 0.04
	multiPerilPremiumRate = 0.07
)

// InsuranceService covers policies, triggers, claims, payments and
// recommendations.
type InsuranceService struct {
	farmRepo         *repository.FarmRepository
	policyRepo       *repository.PolicyRepository
	claimRepo        *repository.ClaimRepository
	weatherRepo      *repository.WeatherRepository
	climateRepo      *repository.ClimateRepository
	notificationRepo *repository.NotificationRepository
	publisher        *event.NotificationPublisher
}

func NewInsuranceService(
	farmRepo *repository.FarmRepository,
	policyRepo *repository.PolicyRepository,
	claimRepo *repository.ClaimRepository,
	weatherRepo *repository.WeatherRepository,
	climateRepo *repository.ClimateRepository,
	notificationRepo *repository.NotificationRepository,
	publisher *event.NotificationPublisher,
) *InsuranceService {
	return &InsuranceService{
		farmRepo:         farmRepo,
		policyRepo:       policyRepo,
		claimRepo:        claimRepo,
		weatherRepo:      weatherRepo,
		climateRepo:      climateRepo,
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// CreatePolicy registers a policy with its triggers for the caller's farm.
// The policy starts as an unpaid draft; a confirmed premium payment
// activates it.
func (s *InsuranceService) CreatePolicy(ctx context.Context, userID string, req *models.CreatePolicyRequest) (*models.InsurancePolicy, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	policy := newPolicyFromRequest(farm.ID, req)

	if err := s.policyRepo.Create(ctx, policy); err != nil {
		return nil, err
	}

	for _, triggerReq := range req.Triggers {
		trigger := &models.PolicyTrigger{
			ID:                    uuid.New(),
			PolicyID:              policy.ID,
			TriggerType:           triggerReq.TriggerType,
			ThresholdValue:        triggerReq.ThresholdValue,
			MeasurementPeriodDays: triggerReq.MeasurementPeriodDays,
			PayoutPercentage:      triggerReq.PayoutPercentage,
		}
		if err := s.policyRepo.CreateTrigger(ctx, trigger); err != nil {
			return nil, err
		}
	}

	slog.Info("policy created",
		"policy_id", policy.ID,
		"policy_number", policy.PolicyNumber,
		"farm_id", farm.ID,
		"triggers", len(req.Triggers),
	)

	return policy, nil
}

// newPolicyFromRequest builds the draft policy a creation request describes.
// Drafts cannot pay out until a confirmed premium payment activates them.
func newPolicyFromRequest(farmID uuid.UUID, req *models.CreatePolicyRequest) *models.InsurancePolicy {
	return &models.InsurancePolicy{
		ID:               uuid.New(),
		FarmID:           farmID,
		PolicyNumber:     generatePolicyNumber(),
		PolicyType:       req.PolicyType,
		CoverageAmount:   req.CoverageAmount,
		PremiumAmount:    req.PremiumAmount,
		PaymentFrequency: req.PaymentFrequency,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Status:           models.PolicyDraft,
		IsPaid:           false,
	}
}

// GetPolicy returns one of the caller's policies with its triggers.
func (s *InsuranceService) GetPolicy(ctx context.Context, userID string, policyID uuid.UUID) (*models.InsurancePolicy, []models.PolicyTrigger, error) {
	policy, err := s.ownedPolicy(ctx, userID, policyID)
	if err != nil {
		return nil, nil, err
	}

	triggers, err := s.policyRepo.GetTriggersByPolicyID(ctx, policy.ID)
	if err != nil {
		return nil, nil, err
	}

	return policy, triggers, nil
}

// ListPolicies returns all policies of the caller's farm.
func (s *InsuranceService) ListPolicies(ctx context.Context, userID string) ([]models.InsurancePolicy, error) {
	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.policyRepo.GetByFarmID(ctx, farm.ID)
}

// CancelPolicy cancels one of the caller's policies. Claimed and expired
// policies stay as they are.
func (s *InsuranceService) CancelPolicy(ctx context.Context, userID string, policyID uuid.UUID) error {
	policy, err := s.ownedPolicy(ctx, userID, policyID)
	if err != nil {
		return err
	}

	if policy.Status != models.PolicyActive && policy.Status != models.PolicyDraft {
		return fmt.Errorf("%w: policy is %s", ErrInvalidState, policy.Status)
	}

	return s.policyRepo.UpdateStatus(ctx, policy.ID, models.PolicyCancelled)
}

// RecordPayment stores a premium payment and, when confirmed, marks the
// policy paid.
func (s *InsuranceService) RecordPayment(ctx context.Context, userID string, req *models.RecordPaymentRequest) (*models.PremiumPayment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	policyID, err := uuid.Parse(req.PolicyID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid policy_id", ErrValidation)
	}

	policy, err := s.ownedPolicy(ctx, userID, policyID)
	if err != nil {
		return nil, err
	}

	paymentDate := req.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	payment := &models.PremiumPayment{
		ID:             uuid.New(),
		PolicyID:       policy.ID,
		Amount:         req.Amount,
		PaymentDate:    paymentDate,
		PaymentMethod:  req.PaymentMethod,
		TransactionRef: req.TransactionRef,
		IsConfirmed:    req.IsConfirmed,
	}

	if err := s.policyRepo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	if payment.IsConfirmed {
		if err := s.policyRepo.MarkPaid(ctx, policy.ID, paymentDate); err != nil {
			return nil, err
		}
		s.publishEvent(ctx, event.NotificationEventPushModel{
			EventType:  event.EventPaymentConfirmed,
			Title:      "Premium payment confirmed",
			Body:       fmt.Sprintf("Payment of %.2f KES received for policy %s", payment.Amount, policy.PolicyNumber),
			LstUserIds: []string{userID},
			Data:       map[string]any{"policy_id": policy.ID.String()},
		})
	}

	slog.Info("premium payment recorded",
		"policy_id", policy.ID,
		"amount", payment.Amount,
		"confirmed", payment.IsConfirmed,
	)

	return payment, nil
}

// EvaluatePolicyTriggers evaluates every pending trigger of a policy against
// its trailing weather window and fires the ones whose condition holds. Each
// firing marks the trigger, creates an approved claim and flips the policy
// to claimed, all inside one transaction. An invalid policy is rejected with
// zero side effects.
func (s *InsuranceService) EvaluatePolicyTriggers(ctx context.Context, userID string, policyID uuid.UUID) ([]models.TriggerActivation, error) {
	policy, err := s.ownedPolicy(ctx, userID, policyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !policy.IsValid(now) {
		return nil, fmt.Errorf("%w: policy is not active, paid and within its coverage window", ErrInvalidState)
	}

	farm, err := s.farmRepo.GetByID(ctx, policy.FarmID)
	if err != nil {
		return nil, err
	}
	if !farm.HasCoordinates() {
		return nil, fmt.Errorf("%w: farm has no coordinates", ErrInvalidState)
	}

	triggers, err := s.policyRepo.GetTriggersByPolicyID(ctx, policy.ID)
	if err != nil {
		return nil, err
	}

	today := now.Truncate(24 * time.Hour)
	windows := make(map[uuid.UUID][]models.WeatherObservation, len(triggers))
	for _, trigger := range triggers {
		if trigger.IsTriggered {
			continue
		}
		window, err := s.weatherRepo.GetHistoricalWindow(ctx, *farm.Latitude, *farm.Longitude,
			today.AddDate(0, 0, -trigger.MeasurementPeriodDays), today)
		if err != nil {
			return nil, err
		}
		windows[trigger.ID] = window
	}

	outcomes := EvaluateTriggers(triggers, windows)

	var activations []models.TriggerActivation
	for _, outcome := range outcomes {
		if !outcome.Activated {
			continue
		}

		activation, err := s.fireTrigger(ctx, policy, outcome, now)
		if err != nil {
			return nil, err
		}
		if activation == nil {
			// Lost the race against a concurrent evaluation.
			continue
		}

		activations = append(activations, *activation)
	}

	slog.Info("policy triggers evaluated",
		"policy_id", policy.ID,
		"evaluated", len(outcomes),
		"fired", len(activations),
	)

	return activations, nil
}

// fireTrigger performs the transactional firing of one activated trigger.
// The conditional trigger update makes the whole operation first-writer-wins:
// losing the race returns nil without error.
func (s *InsuranceService) fireTrigger(ctx context.Context, policy *models.InsurancePolicy, outcome TriggerOutcome, now time.Time) (*models.TriggerActivation, error) {
	tx, err := s.policyRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	fired, err := s.policyRepo.MarkTriggeredTx(ctx, tx, outcome.Trigger.ID, now)
	if err != nil {
		return nil, err
	}
	if !fired {
		return nil, nil
	}

	claimAmount := CalculatePayout(policy.CoverageAmount, outcome.Trigger.PayoutPercentage)
	processedAt := now
	claim := &models.InsuranceClaim{
		ID:          uuid.New(),
		PolicyID:    policy.ID,
		ClaimNumber: generateClaimNumber(),
		ClaimType:   models.ClaimAutomatic,
		TriggerID:   &outcome.Trigger.ID,
		ClaimAmount: claimAmount,
		Description: fmt.Sprintf("Automatic claim: %s measured %.2f against threshold %.2f",
			outcome.Trigger.TriggerType, outcome.MeasuredValue, outcome.Trigger.ThresholdValue),
		Status:        models.ClaimApproved,
		FiledDate:     now,
		ProcessedDate: &processedAt,
	}

	if err := s.claimRepo.CreateTx(ctx, tx, claim); err != nil {
		return nil, err
	}

	if err := s.policyRepo.SetStatusTx(ctx, tx, policy.ID, models.PolicyClaimed); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit trigger firing: %w", err)
	}

	s.notifyClaimApproved(ctx, policy, claim)

	return &models.TriggerActivation{
		TriggerID:        outcome.Trigger.ID,
		TriggerType:      outcome.Trigger.TriggerType,
		MeasuredValue:    outcome.MeasuredValue,
		Threshold:        outcome.Trigger.ThresholdValue,
		PayoutPercentage: outcome.Trigger.PayoutPercentage,
		ClaimAmount:      claimAmount,
		ClaimNumber:      claim.ClaimNumber,
	}, nil
}

func (s *InsuranceService) notifyClaimApproved(ctx context.Context, policy *models.InsurancePolicy, claim *models.InsuranceClaim) {
	farm, err := s.farmRepo.GetByID(ctx, policy.FarmID)
	if err != nil {
		slog.Error("failed to load farm for claim notification", "error", err, "policy_id", policy.ID)
		return
	}

	title := "Insurance claim approved"
	body := fmt.Sprintf("Claim %s for %.2f KES was automatically approved on policy %s",
		claim.ClaimNumber, claim.ClaimAmount, policy.PolicyNumber)

	notification := &models.Notification{
		ID:       uuid.New(),
		UserID:   farm.UserID,
		Type:     models.NotificationClaimApproved,
		Priority: models.PriorityHigh,
		Title:    title,
		Message:  body,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		slog.Error("failed to store claim notification", "error", err, "claim_id", claim.ID)
	}

	s.publishEvent(ctx, event.NotificationEventPushModel{
		EventType:  event.EventClaimApproved,
		Title:      title,
		Body:       body,
		LstUserIds: []string{farm.UserID},
		Data: map[string]any{
			"claim_id":     claim.ID.String(),
			"claim_number": claim.ClaimNumber,
			"policy_id":    policy.ID.String(),
		},
	})
}

// FileManualClaim files a pending claim on one of the caller's policies.
func (s *InsuranceService) FileManualClaim(ctx context.Context, userID string, req *models.CreateClaimRequest) (*models.InsuranceClaim, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	policyID, err := uuid.Parse(req.PolicyID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid policy_id", ErrValidation)
	}

	policy, err := s.ownedPolicy(ctx, userID, policyID)
	if err != nil {
		return nil, err
	}

	if !policy.IsValid(time.Now()) {
		return nil, fmt.Errorf("%w: policy is not active, paid and within its coverage window", ErrInvalidState)
	}

	if req.ClaimAmount > policy.CoverageAmount {
		return nil, fmt.Errorf("%w: claim amount exceeds coverage", ErrValidation)
	}

	claim := &models.InsuranceClaim{
		ID:          uuid.New(),
		PolicyID:    policy.ID,
		ClaimNumber: generateClaimNumber(),
		ClaimType:   models.ClaimManual,
		ClaimAmount: req.ClaimAmount,
		Description: req.Description,
		Status:      models.ClaimPending,
		FiledDate:   time.Now(),
	}

	if err := s.claimRepo.Create(ctx, claim); err != nil {
		return nil, err
	}

	slog.Info("manual claim filed", "claim_id", claim.ID, "policy_id", policy.ID, "amount", claim.ClaimAmount)

	return claim, nil
}

// ListClaims returns claims across the caller's policies.
func (s *InsuranceService) ListClaims(ctx context.Context, userID string) ([]models.InsuranceClaim, error) {
	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.claimRepo.GetByFarmID(ctx, farm.ID)
}

// UpdateClaimStatus is the admin review step for manual claims.
func (s *InsuranceService) UpdateClaimStatus(ctx context.Context, claimID uuid.UUID, status models.ClaimStatus, adminNotes string) (*models.InsuranceClaim, error) {
	switch status {
	case models.ClaimApproved, models.ClaimRejected, models.ClaimPaid:
	default:
		return nil, fmt.Errorf("%w: invalid claim status %q", ErrValidation, status)
	}

	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: claim %s", ErrNotFound, claimID)
		}
		return nil, err
	}

	if claim.Status == models.ClaimPaid {
		return nil, fmt.Errorf("%w: claim already paid", ErrInvalidState)
	}

	if err := s.claimRepo.UpdateStatus(ctx, claimID, status, adminNotes); err != nil {
		return nil, err
	}

	return s.claimRepo.GetByID(ctx, claimID)
}

// ListPayments returns premium payments for one of the caller's policies.
func (s *InsuranceService) ListPayments(ctx context.Context, userID string, policyID uuid.UUID) ([]models.PremiumPayment, error) {
	policy, err := s.ownedPolicy(ctx, userID, policyID)
	if err != nil {
		return nil, err
	}

	return s.policyRepo.GetPaymentsByPolicyID(ctx, policy.ID)
}

// GenerateRecommendations regenerates rule-based policy suggestions from the
// farm's latest risk assessment. A farm with no assessment gets none.
func (s *InsuranceService) GenerateRecommendations(ctx context.Context, userID string) ([]models.PolicyRecommendation, error) {
	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	assessment, err := s.climateRepo.GetLatestByFarmID(ctx, farm.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: run a risk assessment first", ErrInvalidState)
		}
		return nil, err
	}

	if err := s.policyRepo.DeleteRecommendationsByFarmID(ctx, farm.ID); err != nil {
		return nil, err
	}

	recs := buildRecommendations(farm, assessment)
	for i := range recs {
		if err := s.policyRepo.CreateRecommendation(ctx, &recs[i]); err != nil {
			return nil, err
		}
	}

	slog.Info("policy recommendations generated", "farm_id", farm.ID, "count", len(recs))

	return recs, nil
}

// buildRecommendations applies the coverage rules to the latest assessment.
func buildRecommendations(farm *models.FarmProfile, assessment *models.ClimateRiskAssessment) []models.PolicyRecommendation {
	now := time.Now()
	var recs []models.PolicyRecommendation

	if assessment.DroughtRisk > 40 {
		coverage := farm.SizeAcres * droughtCoverPerAcre
		recs = append(recs, models.PolicyRecommendation{
			ID:                    uuid.New(),
			FarmID:                farm.ID,
			RecommendedPolicyType: models.PolicyTypeDrought,
			RecommendedCoverage:   coverage,
			RecommendedPremium:    math.Round(coverage * droughtPremiumRate),
			RiskSummary:           fmt.Sprintf("Drought risk at %d warrants dedicated drought cover", assessment.DroughtRisk),
			ConfidenceScore:       minScore(95, 50+assessment.DroughtRisk),
			GeneratedDate:         now,
		})
	}

	if assessment.FloodRisk > 40 {
		coverage := farm.SizeAcres * floodCoverPerAcre
		recs = append(recs, models.PolicyRecommendation{
			ID:                    uuid.New(),
			FarmID:                farm.ID,
			RecommendedPolicyType: models.PolicyTypeFlood,
			RecommendedCoverage:   coverage,
			RecommendedPremium:    math.Round(coverage * floodPremiumRate),
			RiskSummary:           fmt.Sprintf("Flood risk at %d warrants dedicated flood cover", assessment.FloodRisk),
			ConfidenceScore:       minScore(95, 50+assessment.FloodRisk),
			GeneratedDate:         now,
		})
	}

	if assessment.DroughtRisk > 30 || assessment.FloodRisk > 30 {
		coverage := farm.SizeAcres * multiPerilCoverPerAcre
		recs = append(recs, models.PolicyRecommendation{
			ID:                    uuid.New(),
			FarmID:                farm.ID,
			RecommendedPolicyType: models.PolicyTypeMultiPeril,
			RecommendedCoverage:   coverage,
			RecommendedPremium:    math.Round(coverage * multiPerilPremiumRate),
			RiskSummary:           "Combined exposure favours multi-peril cover",
			ConfidenceScore:       70,
			GeneratedDate:         now,
		})
	}

	return recs
}

// ListRecommendations returns stored recommendations for the caller's farm.
func (s *InsuranceService) ListRecommendations(ctx context.Context, userID string) ([]models.PolicyRecommendation, error) {
	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.policyRepo.GetRecommendationsByFarmID(ctx, farm.ID)
}

// GetAnalytics aggregates the caller's insurance position.
func (s *InsuranceService) GetAnalytics(ctx context.Context, userID string) (*models.InsuranceAnalytics, error) {
	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}

	policies, err := s.policyRepo.GetByFarmID(ctx, farm.ID)
	if err != nil {
		return nil, err
	}

	claims, err := s.claimRepo.GetByFarmID(ctx, farm.ID)
	if err != nil {
		return nil, err
	}

	analytics := &models.InsuranceAnalytics{
		FarmName:       farm.DisplayName(),
		TotalPolicies:  len(policies),
		TotalClaims:    len(claims),
		PoliciesByType: map[string]int{},
		ClaimsByStatus: map[string]int{},
	}

	for _, policy := range policies {
		analytics.PoliciesByType[string(policy.PolicyType)]++
		analytics.TotalCoverage += policy.CoverageAmount
		analytics.TotalPremiums += policy.PremiumAmount
		if policy.Status == models.PolicyActive {
			analytics.ActivePolicies++
		}
	}

	for _, claim := range claims {
		analytics.ClaimsByStatus[string(claim.Status)]++
		if claim.Status == models.ClaimApproved || claim.Status == models.ClaimPaid {
			analytics.ApprovedClaims++
			analytics.TotalPayouts += claim.ClaimAmount
		}
	}

	return analytics, nil
}

func (s *InsuranceService) publishEvent(ctx context.Context, model event.NotificationEventPushModel) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishNotification(ctx, model); err != nil {
		slog.Error("failed to publish notification event", "error", err, "event_type", model.EventType)
	}
}

func (s *InsuranceService) ownedFarm(ctx context.Context, userID string) (*models.FarmProfile, error) {
	farm, err := s.farmRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no farm registered for user", ErrNotFound)
		}
		return nil, err
	}
	return farm, nil
}

// ownedPolicy loads a policy and verifies the caller's farm owns it.
func (s *InsuranceService) ownedPolicy(ctx context.Context, userID string, policyID uuid.UUID) (*models.InsurancePolicy, error) {
	policy, err := s.policyRepo.GetByID(ctx, policyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: policy %s", ErrNotFound, policyID)
		}
		return nil, err
	}

	farm, err := s.ownedFarm(ctx, userID)
	if err != nil {
		return nil, err
	}
	if policy.FarmID != farm.ID {
		return nil, fmt.Errorf("%w: policy %s", ErrForbidden, policyID)
	}

	return policy, nil
}

func generatePolicyNumber() string {
	return fmt.Sprintf("POL%s%s", time.Now().Format("20060102"), utils.GenerateRandomStringWithLength(6))
}

func generateClaimNumber() string {
	return fmt.Sprintf("CLM%s%s", time.Now().Format("20060102"), utils.GenerateRandomStringWithLength(6))
}
