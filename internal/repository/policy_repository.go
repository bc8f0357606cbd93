package repository

import (
	"context"
	"fmt"
	"time"

	"farm-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PolicyRepository struct {
	db *sqlx.DB
}

func NewPolicyRepository(db *sqlx.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

// BeginTx starts a transaction for multi-step insurance operations
func (r *PolicyRepository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new policy
func (r *PolicyRepository) Create(ctx context.Context, policy *models.InsurancePolicy) error {
	query := `
		INSERT INTO insurance_policies (id, farm_id, policy_number, policy_type, coverage_amount,
		       premium_amount, payment_frequency, start_date, end_date, status,
		       is_paid, payment_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		policy.ID, policy.FarmID, policy.PolicyNumber, policy.PolicyType,
		policy.CoverageAmount, policy.PremiumAmount, policy.PaymentFrequency,
		policy.StartDate, policy.EndDate, policy.Status, policy.IsPaid, policy.PaymentDate)
	if err != nil {
		return fmt.Errorf("failed to create policy: %w", err)
	}

	return nil
}

// GetByID retrieves a policy by its ID
func (r *PolicyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.InsurancePolicy, error) {
	var policy models.InsurancePolicy
	query := `
		SELECT id, farm_id, policy_number, policy_type, coverage_amount, premium_amount,
		       payment_frequency, start_date, end_date, status, is_paid, payment_date,
		       created_at, updated_at
		FROM insurance_policies
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &policy, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get policy by id: %w", err)
	}

	return &policy, nil
}

// GetByFarmID retrieves policies for a farm, newest first
func (r *PolicyRepository) GetByFarmID(ctx context.Context, farmID uuid.UUID) ([]models.InsurancePolicy, error) {
	var policies []models.InsurancePolicy
	query := `
		SELECT id, farm_id, policy_number, policy_type, coverage_amount, premium_amount,
		       payment_frequency, start_date, end_date, status, is_paid, payment_date,
		       created_at, updated_at
		FROM insurance_policies
		WHERE farm_id = $1
		ORDER BY created_at DESC
	`

	err := r.db.SelectContext(ctx, &policies, query, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to get policies by farm id: %w", err)
	}

	return policies, nil
}

// UpdateStatus sets the policy status
func (r *PolicyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.PolicyStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE insurance_policies SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update policy status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("policy not found: %s", id)
	}

	return nil
}

// MarkPaid flips is_paid on a policy, records the payment date, and
// activates the policy if it was still a draft. Claimed, expired and
// cancelled policies keep their status.
func (r *PolicyRepository) MarkPaid(ctx context.Context, id uuid.UUID, paymentDate time.Time) error {
	query := `
		UPDATE insurance_policies
		SET is_paid = true,
		    payment_date = $2,
		    status = CASE WHEN status = 'draft' THEN 'active' ELSE status END,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, paymentDate)
	if err != nil {
		return fmt.Errorf("failed to mark policy paid: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("policy not found: %s", id)
	}

	return nil
}

// ExpireOverduePolicies marks active policies past their end date as expired
// and returns the affected policy IDs.
func (r *PolicyRepository) ExpireOverduePolicies(ctx context.Context, asOf time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `
		UPDATE insurance_policies
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'active' AND end_date < $1
		RETURNING id
	`

	err := r.db.SelectContext(ctx, &ids, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to expire overdue policies: %w", err)
	}

	return ids, nil
}

// CreateTrigger inserts a policy trigger
func (r *PolicyRepository) CreateTrigger(ctx context.Context, trigger *models.PolicyTrigger) error {
	query := `
		INSERT INTO policy_triggers (id, policy_id, trigger_type, threshold_value,
		       measurement_period_days, payout_percentage, is_triggered, trigger_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		trigger.ID, trigger.PolicyID, trigger.TriggerType, trigger.ThresholdValue,
		trigger.MeasurementPeriodDays, trigger.PayoutPercentage,
		trigger.IsTriggered, trigger.TriggerDate)
	if err != nil {
		return fmt.Errorf("failed to create policy trigger: %w", err)
	}

	return nil
}

// GetTriggersByPolicyID retrieves triggers attached to a policy
func (r *PolicyRepository) GetTriggersByPolicyID(ctx context.Context, policyID uuid.UUID) ([]models.PolicyTrigger, error) {
	var triggers []models.PolicyTrigger
	query := `
		SELECT id, policy_id, trigger_type, threshold_value, measurement_period_days,
		       payout_percentage, is_triggered, trigger_date, created_at
		FROM policy_triggers
		WHERE policy_id = $1
		ORDER BY created_at ASC
	`

	err := r.db.SelectContext(ctx, &triggers, query, policyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get policy triggers: %w", err)
	}

	return triggers, nil
}

// MarkTriggeredTx conditionally fires a trigger inside a transaction. The
// is_triggered = false guard makes the flip first-writer-wins; a second
// evaluation sees zero rows affected and must not create a claim.
func (r *PolicyRepository) MarkTriggeredTx(ctx context.Context, tx *sqlx.Tx, triggerID uuid.UUID, triggerDate time.Time) (bool, error) {
	result, err := tx.ExecContext(ctx,
		`UPDATE policy_triggers SET is_triggered = true, trigger_date = $2 WHERE id = $1 AND is_triggered = false`,
		triggerID, triggerDate)
	if err != nil {
		return false, fmt.Errorf("failed to mark trigger fired: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// SetStatusTx updates the policy status inside a transaction
func (r *PolicyRepository) SetStatusTx(ctx context.Context, tx *sqlx.Tx, policyID uuid.UUID, status models.PolicyStatus) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE insurance_policies SET status = $2, updated_at = NOW() WHERE id = $1`,
		policyID, status)
	if err != nil {
		return fmt.Errorf("failed to set policy status: %w", err)
	}

	return nil
}

// CreatePayment inserts a premium payment record
func (r *PolicyRepository) CreatePayment(ctx context.Context, payment *models.PremiumPayment) error {
	query := `
		INSERT INTO premium_payments (id, policy_id, amount, payment_date, payment_method,
		       transaction_ref, is_confirmed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID, payment.PolicyID, payment.Amount, payment.PaymentDate,
		payment.PaymentMethod, payment.TransactionRef, payment.IsConfirmed)
	if err != nil {
		return fmt.Errorf("failed to create premium payment: %w", err)
	}

	return nil
}

// GetPaymentsByPolicyID retrieves payments for a policy, newest first
func (r *PolicyRepository) GetPaymentsByPolicyID(ctx context.Context, policyID uuid.UUID) ([]models.PremiumPayment, error) {
	var payments []models.PremiumPayment
	query := `
		SELECT id, policy_id, amount, payment_date, payment_method, transaction_ref,
		       is_confirmed, created_at
		FROM premium_payments
		WHERE policy_id = $1
		ORDER BY payment_date DESC
	`

	err := r.db.SelectContext(ctx, &payments, query, policyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get premium payments: %w", err)
	}

	return payments, nil
}

// CreateRecommendation inserts a policy recommendation
func (r *PolicyRepository) CreateRecommendation(ctx context.Context, rec *models.PolicyRecommendation) error {
	query := `
		INSERT INTO policy_recommendations (id, farm_id, recommended_policy_type, recommended_coverage,
		       recommended_premium, risk_assessment_summary, confidence_score, generated_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.FarmID, rec.RecommendedPolicyType, rec.RecommendedCoverage,
		rec.RecommendedPremium, rec.RiskSummary, rec.ConfidenceScore, rec.GeneratedDate)
	if err != nil {
		return fmt.Errorf("failed to create policy recommendation: %w", err)
	}

	return nil
}

// DeleteRecommendationsByFarmID removes previous recommendations for a farm
// before a fresh generation run.
func (r *PolicyRepository) DeleteRecommendationsByFarmID(ctx context.Context, farmID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM policy_recommendations WHERE farm_id = $1`, farmID)
	if err != nil {
		return fmt.Errorf("failed to delete policy recommendations: %w", err)
	}

	return nil
}

// GetRecommendationsByFarmID retrieves recommendations for a farm
func (r *PolicyRepository) GetRecommendationsByFarmID(ctx context.Context, farmID uuid.UUID) ([]models.PolicyRecommendation, error) {
	var recs []models.PolicyRecommendation
	query := `
		SELECT id, farm_id, recommended_policy_type, recommended_coverage,
		       recommended_premium, risk_assessment_summary, confidence_score, generated_date
		FROM policy_recommendations
		WHERE farm_id = $1
		ORDER BY generated_date DESC
	`

	err := r.db.SelectContext(ctx, &recs, query, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to get policy recommendations: %w", err)
	}

	return recs, nil
}
