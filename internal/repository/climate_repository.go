package repository

import (
	"context"
	"fmt"
	"time"

	"farm-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ClimateRepository struct {
	db *sqlx.DB
}

func NewClimateRepository(db *sqlx.DB) *ClimateRepository {
	return &ClimateRepository{db: db}
}

// UpsertAssessment inserts an assessment or replaces the scores on the
// unique (farm_id, assessment_date) pair.
func (r *ClimateRepository) UpsertAssessment(ctx context.Context, assessment *models.ClimateRiskAssessment) error {
	query := `
		INSERT INTO climate_risk_assessments (id, farm_id, assessment_date, period_start, period_end,
		       drought_risk, flood_risk, extreme_temp_risk, overall_risk_level,
		       recommendations, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (farm_id, assessment_date)
		DO UPDATE SET
		    period_start = EXCLUDED.period_start,
		    period_end = EXCLUDED.period_end,
		    drought_risk = EXCLUDED.drought_risk,
		    flood_risk = EXCLUDED.flood_risk,
		    extreme_temp_risk = EXCLUDED.extreme_temp_risk,
		    overall_risk_level = EXCLUDED.overall_risk_level,
		    recommendations = EXCLUDED.recommendations,
		    confidence = EXCLUDED.confidence
	`

	_, err := r.db.ExecContext(ctx, query,
		assessment.ID, assessment.FarmID, assessment.AssessmentDate,
		assessment.PeriodStart, assessment.PeriodEnd, assessment.DroughtRisk,
		assessment.FloodRisk, assessment.ExtremeTempRisk, assessment.OverallRisk,
		assessment.Recommendations, assessment.Confidence)
	if err != nil {
		return fmt.Errorf("failed to upsert risk assessment: %w", err)
	}

	return nil
}

// GetLatestByFarmID retrieves the most recent assessment for a farm
func (r *ClimateRepository) GetLatestByFarmID(ctx context.Context, farmID uuid.UUID) (*models.ClimateRiskAssessment, error) {
	var assessment models.ClimateRiskAssessment
	query := `
		SELECT id, farm_id, assessment_date, period_start, period_end, drought_risk,
		       flood_risk, extreme_temp_risk, overall_risk_level, recommendations,
		       confidence, created_at
		FROM climate_risk_assessments
		WHERE farm_id = $1
		ORDER BY assessment_date DESC
		LIMIT 1
	`

	err := r.db.GetContext(ctx, &assessment, query, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest risk assessment: %w", err)
	}

	return &assessment, nil
}

// GetHistoryByFarmID retrieves assessments for a farm within a period
func (r *ClimateRepository) GetHistoryByFarmID(ctx context.Context, farmID uuid.UUID, from time.Time) ([]models.ClimateRiskAssessment, error) {
	var assessments []models.ClimateRiskAssessment
	query := `
		SELECT id, farm_id, assessment_date, period_start, period_end, drought_risk,
		       flood_risk, extreme_temp_risk, overall_risk_level, recommendations,
		       confidence, created_at
		FROM climate_risk_assessments
		WHERE farm_id = $1 AND assessment_date >= $2
		ORDER BY assessment_date DESC
	`

	err := r.db.SelectContext(ctx, &assessments, query, farmID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get risk assessment history: %w", err)
	}

	return assessments, nil
}
