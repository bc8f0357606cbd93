package repository

import (
	"context"
	"fmt"

	"farm-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ClaimRepository struct {
	db *sqlx.DB
}

func NewClaimRepository(db *sqlx.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

// Create inserts a claim
func (r *ClaimRepository) Create(ctx context.Context, claim *models.InsuranceClaim) error {
	query := `
		INSERT INTO insurance_claims (id, policy_id, claim_number, claim_type, trigger_id,
		       claim_amount, description, status, filed_date, processed_date,
		       payout_date, admin_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		claim.ID, claim.PolicyID, claim.ClaimNumber, claim.ClaimType, claim.TriggerID,
		claim.ClaimAmount, claim.Description, claim.Status, claim.FiledDate,
		claim.ProcessedDate, claim.PayoutDate, claim.AdminNotes)
	if err != nil {
		return fmt.Errorf("failed to create claim: %w", err)
	}

	return nil
}

// CreateTx inserts a claim inside a transaction
func (r *ClaimRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, claim *models.InsuranceClaim) error {
	query := `
		INSERT INTO insurance_claims (id, policy_id, claim_number, claim_type, trigger_id,
		       claim_amount, description, status, filed_date, processed_date,
		       payout_date, admin_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`

	_, err := tx.ExecContext(ctx, query,
		claim.ID, claim.PolicyID, claim.ClaimNumber, claim.ClaimType, claim.TriggerID,
		claim.ClaimAmount, claim.Description, claim.Status, claim.FiledDate,
		claim.ProcessedDate, claim.PayoutDate, claim.AdminNotes)
	if err != nil {
		return fmt.Errorf("failed to create claim: %w", err)
	}

	return nil
}

// GetByID retrieves a claim by its ID
func (r *ClaimRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.InsuranceClaim, error) {
	var claim models.InsuranceClaim
	query := `
		SELECT id, policy_id, claim_number, claim_type, trigger_id, claim_amount,
		       description, status, filed_date, processed_date, payout_date,
		       admin_notes, created_at, updated_at
		FROM insurance_claims
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &claim, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get claim by id: %w", err)
	}

	return &claim, nil
}

// GetByPolicyID retrieves claims for a policy, newest first
func (r *ClaimRepository) GetByPolicyID(ctx context.Context, policyID uuid.UUID) ([]models.InsuranceClaim, error) {
	var claims []models.InsuranceClaim
	query := `
		SELECT id, policy_id, claim_number, claim_type, trigger_id, claim_amount,
		       description, status, filed_date, processed_date, payout_date,
		       admin_notes, created_at, updated_at
		FROM insurance_claims
		WHERE policy_id = $1
		ORDER BY created_at DESC
	`

	err := r.db.SelectContext(ctx, &claims, query, policyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get claims by policy id: %w", err)
	}

	return claims, nil
}

// GetByFarmID retrieves claims across all policies of a farm
func (r *ClaimRepository) GetByFarmID(ctx context.Context, farmID uuid.UUID) ([]models.InsuranceClaim, error) {
	var claims []models.InsuranceClaim
	query := `
		SELECT c.id, c.policy_id, c.claim_number, c.claim_type, c.trigger_id, c.claim_amount,
		       c.description, c.status, c.filed_date, c.processed_date, c.payout_date,
		       c.admin_notes, c.created_at, c.updated_at
		FROM insurance_claims c
		JOIN insurance_policies p ON p.id = c.policy_id
		WHERE p.farm_id = $1
		ORDER BY c.created_at DESC
	`

	err := r.db.SelectContext(ctx, &claims, query, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to get claims by farm id: %w", err)
	}

	return claims, nil
}

// UpdateStatus sets the claim status and stamps the matching date column
func (r *ClaimRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ClaimStatus, adminNotes string) error {
	query := `
		UPDATE insurance_claims
		SET status = $2,
		    admin_notes = $3,
		    processed_date = CASE WHEN $2 IN ('approved', 'rejected') THEN NOW() ELSE processed_date END,
		    payout_date = CASE WHEN $2 = 'paid' THEN NOW() ELSE payout_date END,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, adminNotes)
	if err != nil {
		return fmt.Errorf("failed to update claim status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("claim not found: %s", id)
	}

	return nil
}
