package services

import (
	"math"
	"strings"

	"farm-backend/internal/models"
)

// Default scores when no weather data covers the assessment window.
const (
	defaultDroughtRisk = 30
	defaultFloodRisk   = 20
	defaultTempRisk    = 25

	confidenceNoData   = 30
	confidenceWithData = 75
)

// RiskScores holds the three component scores plus the confidence of the run.
type RiskScores struct {
	Drought     int
	Flood       int
	ExtremeTemp int
	Confidence  int
}

// ScoreClimateRisks scores a window of historical weather readings. An empty
// window yields the fixed default scores at low confidence rather than an
// error, so a brand-new location still gets an assessment.
func ScoreClimateRisks(observations []models.WeatherObservation) RiskScores {
	if len(observations) == 0 {
		return RiskScores{
			Drought:     defaultDroughtRisk,
			Flood:       defaultFloodRisk,
			ExtremeTemp: defaultTempRisk,
			Confidence:  confidenceNoData,
		}
	}

	avgRain := avgRainfall(observations)
	avgTemp := avgTemperature(observations)

	return RiskScores{
		Drought:     ScoreDroughtRisk(avgRain),
		Flood:       ScoreFloodRisk(avgRain),
		ExtremeTemp: ScoreExtremeTempRisk(avgTemp),
		Confidence:  confidenceWithData,
	}
}

// ScoreDroughtRisk maps the window's average rainfall to a 0-100 score.
// Below 20mm is severe shortage, 20-50mm moderate, 50mm+ tapers to zero.
func ScoreDroughtRisk(rainfall float64) int {
	switch {
	case rainfall < 20:
		return minScore(100, int(math.Round(80+10*(30-rainfall)/30)))
	case rainfall < 50:
		return int(math.Round(40 + 40*(50-rainfall)/30))
	default:
		return maxScore(0, int(math.Round(40-40*(rainfall-50)/50)))
	}
}

// ScoreFloodRisk maps the window's average rainfall to a 0-100 score.
// Above 200mm is saturation, 150-200mm elevated, below 150mm tapers to zero.
func ScoreFloodRisk(rainfall float64) int {
	switch {
	case rainfall > 200:
		return minScore(100, int(math.Round(70+(rainfall-200)/10)))
	case rainfall > 150:
		return int(math.Round(40 + 30*(rainfall-150)/50))
	default:
		return maxScore(0, int(math.Round(40-40*(150-rainfall)/150)))
	}
}

// ScoreExtremeTempRisk maps average temperature to a 0-100 score. Heat above
// 35C and cold below 10C both escalate at 5 points per degree; the band in
// between carries a flat baseline.
func ScoreExtremeTempRisk(avgTemp float64) int {
	switch {
	case avgTemp > 35:
		return minScore(100, int(math.Round(60+(avgTemp-35)*5)))
	case avgTemp < 10:
		return minScore(100, int(math.Round(60+(10-avgTemp)*5)))
	default:
		return 20
	}
}

// BuildRecommendations renders the advice lines for a scored assessment,
// one recommendation per line.
func BuildRecommendations(droughtRisk, floodRisk, extremeTempRisk int) string {
	var lines []string

	if droughtRisk > 50 {
		lines = append(lines,
			"Implement water conservation measures",
			"Consider drought-resistant crop varieties")
	}
	if floodRisk > 50 {
		lines = append(lines,
			"Ensure proper drainage systems",
			"Prepare flood mitigation strategies")
	}
	if extremeTempRisk > 50 {
		lines = append(lines,
			"Provide crop shade/protection",
			"Monitor crops frequently")
	}
	if len(lines) == 0 {
		lines = append(lines,
			"Continue normal farming practices",
			"Monitor weather conditions regularly")
	}

	return strings.Join(lines, "\n")
}

func avgRainfall(window []models.WeatherObservation) float64 {
	if len(window) == 0 {
		return 0
	}
	return sumRainfall(window) / float64(len(window))
}

func minScore(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxScore(a, b int) int {
	if a > b {
		return a
	}
	return b
}
