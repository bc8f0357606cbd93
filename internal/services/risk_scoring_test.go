package services

import (
	"strings"
	"testing"

	"farm-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func createTestObservation(rainfall, tempAvg float64) models.WeatherObservation {
	return models.WeatherObservation{
		Rainfall: rainfall,
		TempAvg:  tempAvg,
	}
}

// ============================================================================
// TEST SUITE 1: DROUGHT RISK
// ============================================================================

func TestScoreDroughtRisk_SevereShortage(t *testing.T) {
	assert.Equal(t, 87, ScoreDroughtRisk(10), "an average of 10mm should score 87")
	assert.Equal(t, 90, ScoreDroughtRisk(0), "zero rainfall should score 90")
}

func TestScoreDroughtRisk_ModerateShortage(t *testing.T) {
	assert.Equal(t, 80, ScoreDroughtRisk(20), "an average of 20mm is the top of the moderate band")
	assert.Equal(t, 53, ScoreDroughtRisk(40), "an average of 40mm should score 53")
}

func TestScoreDroughtRisk_Adequate(t *testing.T) {
	assert.Equal(t, 40, ScoreDroughtRisk(50), "an average of 50mm is the top of the adequate band")
	assert.Equal(t, 32, ScoreDroughtRisk(60), "an average of 60mm should score 32")
	assert.Equal(t, 0, ScoreDroughtRisk(100), "an average of 100mm tapers to zero")
	assert.Equal(t, 0, ScoreDroughtRisk(250), "heavy rainfall never goes negative")
}

// ============================================================================
// TEST SUITE 2: FLOOD RISK
// ============================================================================

func TestScoreFloodRisk_Saturation(t *testing.T) {
	assert.Equal(t, 72, ScoreFloodRisk(220), "an average of 220mm should score 72")
	assert.Equal(t, 80, ScoreFloodRisk(300), "an average of 300mm should score 80")
	assert.Equal(t, 100, ScoreFloodRisk(1000), "extreme rainfall caps at 100")
}

func TestScoreFloodRisk_Elevated(t *testing.T) {
	assert.Equal(t, 70, ScoreFloodRisk(200), "an average of 200mm is the top of the elevated band")
	assert.Equal(t, 52, ScoreFloodRisk(170), "an average of 170mm should score 52")
}

func TestScoreFloodRisk_Normal(t *testing.T) {
	assert.Equal(t, 40, ScoreFloodRisk(150), "an average of 150mm is the top of the normal band")
	assert.Equal(t, 27, ScoreFloodRisk(100), "an average of 100mm should score 27")
	assert.Equal(t, 0, ScoreFloodRisk(0), "no rainfall means no flood risk")
}

// ============================================================================
// TEST SUITE 3: EXTREME TEMPERATURE RISK
// ============================================================================

func TestScoreExtremeTempRisk_Heat(t *testing.T) {
	assert.Equal(t, 20, ScoreExtremeTempRisk(35), "35C is still inside the safe band")
	assert.Equal(t, 65, ScoreExtremeTempRisk(36), "one degree over escalates to 65")
	assert.Equal(t, 85, ScoreExtremeTempRisk(40), "40C should score 85")
	assert.Equal(t, 100, ScoreExtremeTempRisk(50), "extreme heat caps at 100")
}

func TestScoreExtremeTempRisk_Cold(t *testing.T) {
	assert.Equal(t, 20, ScoreExtremeTempRisk(10), "10C is still inside the safe band")
	assert.Equal(t, 85, ScoreExtremeTempRisk(5), "5C should score 85")
	assert.Equal(t, 100, ScoreExtremeTempRisk(-5), "extreme cold caps at 100")
}

func TestScoreExtremeTempRisk_SafeBand(t *testing.T) {
	assert.Equal(t, 20, ScoreExtremeTempRisk(22), "mild temperatures carry the flat baseline")
}

// ============================================================================
// TEST SUITE 4: FULL WINDOW SCORING
// ============================================================================

func TestScoreClimateRisks_NoData(t *testing.T) {
	scores := ScoreClimateRisks(nil)

	assert.Equal(t, 30, scores.Drought, "no data falls back to the default drought score")
	assert.Equal(t, 20, scores.Flood, "no data falls back to the default flood score")
	assert.Equal(t, 25, scores.ExtremeTemp, "no data falls back to the default temperature score")
	assert.Equal(t, 30, scores.Confidence, "no data means low confidence")
}

func TestScoreClimateRisks_WithData(t *testing.T) {
	// 30 days averaging 10mm at 24C: dry enough to raise drought risk.
	var window []models.WeatherObservation
	for i := 0; i < 30; i++ {
		window = append(window, createTestObservation(10.0, 24.0))
	}

	scores := ScoreClimateRisks(window)

	assert.Equal(t, 87, scores.Drought, "an average of 10mm should score 87")
	assert.Equal(t, 3, scores.Flood, "an average of 10mm is far from flood levels")
	assert.Equal(t, 20, scores.ExtremeTemp, "24C average is in the safe band")
	assert.Equal(t, 75, scores.Confidence, "data-backed scoring carries full confidence")
}

func TestScoreClimateRisks_AveragesRainfallAcrossTheWindow(t *testing.T) {
	// Mixed days whose total (300mm) would read as flood-adequate, but the
	// scorer works on the 10mm average.
	var window []models.WeatherObservation
	for i := 0; i < 30; i++ {
		rainfall := 0.0
		if i%3 == 0 {
			rainfall = 30.0
		}
		window = append(window, createTestObservation(rainfall, 24.0))
	}

	scores := ScoreClimateRisks(window)

	assert.Equal(t, 87, scores.Drought, "the 10mm daily average decides the band, not the 300mm total")
	assert.Equal(t, 3, scores.Flood)
}

// ============================================================================
// TEST SUITE 5: OVERALL RISK LEVEL
// ============================================================================

func TestOverallRiskLevelFor_Buckets(t *testing.T) {
	assert.Equal(t, models.RiskLevelLow, models.OverallRiskLevelFor(24, 10, 10), "24 stays low")
	assert.Equal(t, models.RiskLevelMedium, models.OverallRiskLevelFor(25, 10, 10), "25 is medium")
	assert.Equal(t, models.RiskLevelMedium, models.OverallRiskLevelFor(49, 10, 10), "49 stays medium")
	assert.Equal(t, models.RiskLevelHigh, models.OverallRiskLevelFor(50, 10, 10), "50 is high")
	assert.Equal(t, models.RiskLevelHigh, models.OverallRiskLevelFor(10, 74, 10), "74 stays high")
	assert.Equal(t, models.RiskLevelCritical, models.OverallRiskLevelFor(10, 75, 10), "75 is critical")
}

func TestOverallRiskLevelFor_TakesMaximum(t *testing.T) {
	assert.Equal(t, models.RiskLevelCritical, models.OverallRiskLevelFor(10, 20, 90),
		"the highest component decides the overall level")
}

// ============================================================================
// TEST SUITE 6: RECOMMENDATIONS
// ============================================================================

func TestBuildRecommendations_Drought(t *testing.T) {
	text := BuildRecommendations(60, 10, 10)

	assert.Contains(t, text, "Implement water conservation measures")
	assert.Contains(t, text, "Consider drought-resistant crop varieties")
	assert.NotContains(t, text, "drainage", "flood advice should not appear")
}

func TestBuildRecommendations_AllRisksHigh(t *testing.T) {
	text := BuildRecommendations(60, 60, 60)
	lines := strings.Split(text, "\n")

	assert.Len(t, lines, 6, "two lines per elevated risk")
	assert.Equal(t, "Implement water conservation measures", lines[0])
	assert.Equal(t, "Ensure proper drainage systems", lines[2])
	assert.Equal(t, "Provide crop shade/protection", lines[4])
}

func TestBuildRecommendations_NothingElevated(t *testing.T) {
	text := BuildRecommendations(50, 50, 50)

	assert.Equal(t, "Continue normal farming practices\nMonitor weather conditions regularly", text,
		"scores of exactly 50 do not trigger advice")
}
