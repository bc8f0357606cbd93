package services

import (
	"testing"
	"time"

	"farm-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST SUITE 1: ASSESSMENT PERIOD
// ============================================================================

func TestAssessmentPeriod_ForwardLooking(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	start, end := assessmentPeriod(today, 14)

	assert.Equal(t, today, start, "the period starts on the assessment day")
	assert.Equal(t, today.AddDate(0, 0, 14), end, "the period runs 14 days forward")
}

func TestAssessmentPeriod_DefaultsToThirtyDays(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	_, end := assessmentPeriod(today, 0)
	assert.Equal(t, today.AddDate(0, 0, 30), end)

	_, end = assessmentPeriod(today, -5)
	assert.Equal(t, today.AddDate(0, 0, 30), end, "nonsense input falls back to the default")
}

// ============================================================================
// TEST SUITE 2: RISK ALERTS
// ============================================================================

func createElevatedAssessment(droughtRisk, floodRisk, extremeTempRisk int) *models.ClimateRiskAssessment {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	return &models.ClimateRiskAssessment{
		ID:              uuid.New(),
		FarmID:          uuid.New(),
		AssessmentDate:  today,
		PeriodStart:     today,
		PeriodEnd:       today.AddDate(0, 0, 30),
		DroughtRisk:     droughtRisk,
		FloodRisk:       floodRisk,
		ExtremeTempRisk: extremeTempRisk,
		OverallRisk:     models.OverallRiskLevelFor(droughtRisk, floodRisk, extremeTempRisk),
		Recommendations: BuildRecommendations(droughtRisk, floodRisk, extremeTempRisk),
	}
}

func TestBuildRiskAlert_DominantComponentPicksType(t *testing.T) {
	farm := createTestFarm(2)

	assert.Equal(t, models.AlertDrought, buildRiskAlert(farm, createElevatedAssessment(80, 20, 20)).AlertType)
	assert.Equal(t, models.AlertHeavyRain, buildRiskAlert(farm, createElevatedAssessment(20, 80, 20)).AlertType)
	assert.Equal(t, models.AlertHeatwave, buildRiskAlert(farm, createElevatedAssessment(20, 20, 80)).AlertType)
}

func TestBuildRiskAlert_SeverityFollowsOverallLevel(t *testing.T) {
	farm := createTestFarm(2)

	critical := buildRiskAlert(farm, createElevatedAssessment(80, 20, 20))
	assert.Equal(t, models.SeverityCritical, critical.Severity, "an overall critical level escalates the alert")

	high := buildRiskAlert(farm, createElevatedAssessment(60, 20, 20))
	assert.Equal(t, models.SeverityWarning, high.Severity)
}

func TestBuildRiskAlert_ValidityAndOwnership(t *testing.T) {
	farm := createTestFarm(2)
	assessment := createElevatedAssessment(80, 20, 20)

	alert := buildRiskAlert(farm, assessment)

	assert.Equal(t, farm.UserID, alert.UserID)
	assert.Equal(t, assessment.PeriodStart, alert.ValidFrom, "the alert covers the assessment's forward period")
	assert.Equal(t, assessment.PeriodEnd, alert.ValidUntil)
	assert.True(t, alert.IsActive)
	assert.Contains(t, alert.Message, "water conservation", "the alert carries the recommendations")
}
