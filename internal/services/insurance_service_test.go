package services

import (
	"regexp"
	"testing"
	"time"

	"farm-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func createTestFarm(sizeAcres float64) *models.FarmProfile {
	return &models.FarmProfile{
		ID:        uuid.New(),
		UserID:    "user-1",
		County:    "Kitui",
		Location:  "Kitui West",
		SizeAcres: sizeAcres,
	}
}

func createTestAssessment(droughtRisk, floodRisk int) *models.ClimateRiskAssessment {
	return &models.ClimateRiskAssessment{
		ID:          uuid.New(),
		DroughtRisk: droughtRisk,
		FloodRisk:   floodRisk,
	}
}

// ============================================================================
// TEST SUITE 1: RECOMMENDATION RULES
// ============================================================================

func TestBuildRecommendations_HighDrought(t *testing.T) {
	farm := createTestFarm(2)
	recs := buildRecommendations(farm, createTestAssessment(60, 10))

	assert.Len(t, recs, 2, "high drought yields drought cover plus multi-peril")

	drought := recs[0]
	assert.Equal(t, models.PolicyTypeDrought, drought.RecommendedPolicyType)
	assert.Equal(t, 100000.0, drought.RecommendedCoverage, "2 acres at 50,000 KES per acre")
	assert.Equal(t, 5000.0, drought.RecommendedPremium, "5% of the recommended coverage")
	assert.Equal(t, 95, drought.ConfidenceScore, "confidence caps at 95")

	multiPeril := recs[1]
	assert.Equal(t, models.PolicyTypeMultiPeril, multiPeril.RecommendedPolicyType)
	assert.Equal(t, 120000.0, multiPeril.RecommendedCoverage, "2 acres at 60,000 KES per acre")
	assert.Equal(t, 70, multiPeril.ConfidenceScore)
}

func TestBuildRecommendations_HighFlood(t *testing.T) {
	farm := createTestFarm(3)
	recs := buildRecommendations(farm, createTestAssessment(10, 45))

	assert.Len(t, recs, 2)
	assert.Equal(t, models.PolicyTypeFlood, recs[0].RecommendedPolicyType)
	assert.Equal(t, 135000.0, recs[0].RecommendedCoverage, "3 acres at 45,000 KES per acre")
	assert.Equal(t, 5400.0, recs[0].RecommendedPremium, "4% of the recommended coverage")
	assert.Equal(t, 95, recs[0].ConfidenceScore, "50 + 45 risk")
	assert.Equal(t, models.PolicyTypeMultiPeril, recs[1].RecommendedPolicyType)
}

func TestBuildRecommendations_ModerateRiskOnlyMultiPeril(t *testing.T) {
	farm := createTestFarm(1)
	recs := buildRecommendations(farm, createTestAssessment(35, 35))

	assert.Len(t, recs, 1, "risks between 30 and 40 only justify multi-peril cover")
	assert.Equal(t, models.PolicyTypeMultiPeril, recs[0].RecommendedPolicyType)
	assert.Equal(t, 60000.0, recs[0].RecommendedCoverage)
	assert.Equal(t, 4200.0, recs[0].RecommendedPremium, "7% of the recommended coverage")
}

func TestBuildRecommendations_LowRisk(t *testing.T) {
	farm := createTestFarm(5)
	recs := buildRecommendations(farm, createTestAssessment(20, 15))

	assert.Empty(t, recs, "low risk produces no recommendations")
}

// ============================================================================
// TEST SUITE 2: POLICY CREATION
// ============================================================================

func TestNewPolicyFromRequest_StartsAsUnpaidDraft(t *testing.T) {
	farmID := uuid.New()
	req := &models.CreatePolicyRequest{
		PolicyType:       models.PolicyTypeDrought,
		CoverageAmount:   200000,
		PremiumAmount:    10000,
		PaymentFrequency: models.PaymentAnnually,
		StartDate:        time.Now(),
		EndDate:          time.Now().AddDate(1, 0, 0),
	}

	policy := newPolicyFromRequest(farmID, req)

	assert.Equal(t, models.PolicyDraft, policy.Status, "a new policy is a draft until paid")
	assert.False(t, policy.IsPaid)
	assert.False(t, policy.IsValid(time.Now()), "a draft cannot pay out")
	assert.Equal(t, farmID, policy.FarmID)
	assert.Equal(t, 200000.0, policy.CoverageAmount)
}

// ============================================================================
// TEST SUITE 3: REFERENCE NUMBERS
// ============================================================================

func TestGeneratePolicyNumber_Format(t *testing.T) {
	number := generatePolicyNumber()
	datePart := time.Now().Format("20060102")

	assert.Regexp(t, regexp.MustCompile(`^POL\d{8}[A-Za-z0-9]{6}$`), number)
	assert.Contains(t, number, datePart)
}

func TestGenerateClaimNumber_Format(t *testing.T) {
	number := generateClaimNumber()

	assert.Regexp(t, regexp.MustCompile(`^CLM\d{8}[A-Za-z0-9]{6}$`), number)
}

func TestGenerateClaimNumber_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		number := generateClaimNumber()
		assert.False(t, seen[number], "claim numbers must not repeat")
		seen[number] = true
	}
}
