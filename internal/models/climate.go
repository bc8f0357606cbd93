package models

import (
	"time"

	"github.com/google/uuid"
)

// ClimateRiskAssessment is one scored assessment per (farm, assessment
// date). OverallRiskLevel is always derived from the three scores via
// OverallRiskLevelFor; it is never written independently.
type ClimateRiskAssessment struct {
	ID              uuid.UUID `json:"id" db:"id"`
	FarmID          uuid.UUID `json:"farm_id" db:"farm_id"`
	AssessmentDate  time.Time `json:"assessment_date" db:"assessment_date"`
	PeriodStart     time.Time `json:"period_start" db:"period_start"`
	PeriodEnd       time.Time `json:"period_end" db:"period_end"`
	DroughtRisk     int       `json:"drought_risk" db:"drought_risk"`
	FloodRisk       int       `json:"flood_risk" db:"flood_risk"`
	ExtremeTempRisk int       `json:"extreme_temp_risk" db:"extreme_temp_risk"`
	OverallRisk     RiskLevel `json:"overall_risk_level" db:"overall_risk_level"`
	Recommendations string    `json:"recommendations" db:"recommendations"`
	Confidence      int       `json:"confidence" db:"confidence"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// OverallRiskLevelFor buckets the maximum of the three component scores.
func OverallRiskLevelFor(droughtRisk, floodRisk, extremeTempRisk int) RiskLevel {
	maxRisk := droughtRisk
	if floodRisk > maxRisk {
		maxRisk = floodRisk
	}
	if extremeTempRisk > maxRisk {
		maxRisk = extremeTempRisk
	}

	switch {
	case maxRisk >= 75:
		return RiskLevelCritical
	case maxRisk >= 50:
		return RiskLevelHigh
	case maxRisk >= 25:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// ClimateAnalytics is the aggregate view returned by the analytics endpoint.
type ClimateAnalytics struct {
	FarmName         string         `json:"farm_name"`
	PeriodStart      time.Time      `json:"period_start"`
	PeriodEnd        time.Time      `json:"period_end"`
	AvgTemperature   float64        `json:"avg_temperature"`
	TotalRainfall    float64        `json:"total_rainfall"`
	RainyDays        int            `json:"rainy_days"`
	AvgNDVI          float64        `json:"avg_ndvi"`
	LatestHealth     string         `json:"latest_health_status"`
	CurrentRiskLevel string         `json:"current_risk_level"`
	RiskFactors      map[string]int `json:"risk_factors"`
}
