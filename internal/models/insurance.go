package models

import (
	"time"

	"github.com/google/uuid"
)

// InsurancePolicy is a parametric coverage contract for one farm. Payouts
// are authorized by trigger conditions, not by manual loss assessment.
type InsurancePolicy struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	FarmID           uuid.UUID        `json:"farm_id" db:"farm_id"`
	PolicyNumber     string           `json:"policy_number" db:"policy_number"`
	PolicyType       PolicyType       `json:"policy_type" db:"policy_type"`
	CoverageAmount   float64          `json:"coverage_amount" db:"coverage_amount"`
	PremiumAmount    float64          `json:"premium_amount" db:"premium_amount"`
	PaymentFrequency PaymentFrequency `json:"payment_frequency" db:"payment_frequency"`
	StartDate        time.Time        `json:"start_date" db:"start_date"`
	EndDate          time.Time        `json:"end_date" db:"end_date"`
	Status           PolicyStatus     `json:"status" db:"status"`
	IsPaid           bool             `json:"is_paid" db:"is_paid"`
	PaymentDate      *time.Time       `json:"payment_date,omitempty" db:"payment_date"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

// IsValid reports whether the policy can pay out right now: active, paid,
// and today inside the coverage window. Derived, never stored.
func (p *InsurancePolicy) IsValid(now time.Time) bool {
	today := now.Truncate(24 * time.Hour)
	return p.Status == PolicyActive &&
		p.IsPaid &&
		!today.Before(p.StartDate.Truncate(24*time.Hour)) &&
		!today.After(p.EndDate.Truncate(24*time.Hour))
}

// PolicyTrigger is one automatic-payout condition attached to a policy.
// Once IsTriggered flips to true it stays true; a trigger fires at most
// once, ever.
type PolicyTrigger struct {
	ID                    uuid.UUID   `json:"id" db:"id"`
	PolicyID              uuid.UUID   `json:"policy_id" db:"policy_id"`
	TriggerType           TriggerType `json:"trigger_type" db:"trigger_type"`
	ThresholdValue        float64     `json:"threshold_value" db:"threshold_value"`
	MeasurementPeriodDays int         `json:"measurement_period_days" db:"measurement_period_days"`
	PayoutPercentage      float64     `json:"payout_percentage" db:"payout_percentage"`
	IsTriggered           bool        `json:"is_triggered" db:"is_triggered"`
	TriggerDate           *time.Time  `json:"trigger_date,omitempty" db:"trigger_date"`
	CreatedAt             time.Time   `json:"created_at" db:"created_at"`
}

// InsuranceClaim records a payout event. Automatic claims are created
// already approved; manual claims start pending.
type InsuranceClaim struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	PolicyID      uuid.UUID   `json:"policy_id" db:"policy_id"`
	ClaimNumber   string      `json:"claim_number" db:"claim_number"`
	ClaimType     ClaimType   `json:"claim_type" db:"claim_type"`
	TriggerID     *uuid.UUID  `json:"trigger_id,omitempty" db:"trigger_id"`
	ClaimAmount   float64     `json:"claim_amount" db:"claim_amount"`
	Description   string      `json:"description" db:"description"`
	Status        ClaimStatus `json:"status" db:"status"`
	FiledDate     time.Time   `json:"filed_date" db:"filed_date"`
	ProcessedDate *time.Time  `json:"processed_date,omitempty" db:"processed_date"`
	PayoutDate    *time.Time  `json:"payout_date,omitempty" db:"payout_date"`
	AdminNotes    string      `json:"admin_notes" db:"admin_notes"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// PremiumPayment is one premium payment record for a policy.
type PremiumPayment struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	PolicyID       uuid.UUID     `json:"policy_id" db:"policy_id"`
	Amount         float64       `json:"amount" db:"amount"`
	PaymentDate    time.Time     `json:"payment_date" db:"payment_date"`
	PaymentMethod  PaymentMethod `json:"payment_method" db:"payment_method"`
	TransactionRef string        `json:"transaction_ref" db:"transaction_ref"`
	IsConfirmed    bool          `json:"is_confirmed" db:"is_confirmed"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
}

// PolicyRecommendation is a rule-generated suggestion derived from the
// farm's latest climate risk assessment.
type PolicyRecommendation struct {
	ID                    uuid.UUID  `json:"id" db:"id"`
	FarmID                uuid.UUID  `json:"farm_id" db:"farm_id"`
	RecommendedPolicyType PolicyType `json:"recommended_policy_type" db:"recommended_policy_type"`
	RecommendedCoverage   float64    `json:"recommended_coverage" db:"recommended_coverage"`
	RecommendedPremium    float64    `json:"recommended_premium" db:"recommended_premium"`
	RiskSummary           string     `json:"risk_assessment_summary" db:"risk_assessment_summary"`
	ConfidenceScore       int        `json:"confidence_score" db:"confidence_score"`
	GeneratedDate         time.Time  `json:"generated_date" db:"generated_date"`
}

// TriggerActivation is the evaluator's record of one fired trigger.
type TriggerActivation struct {
	TriggerID        uuid.UUID   `json:"trigger_id"`
	TriggerType      TriggerType `json:"trigger_type"`
	MeasuredValue    float64     `json:"measured_value"`
	Threshold        float64     `json:"threshold"`
	PayoutPercentage float64     `json:"payout_percentage"`
	ClaimAmount      float64     `json:"claim_amount"`
	ClaimNumber      string      `json:"claim_number,omitempty"`
}

// InsuranceAnalytics is the aggregate view returned by the insurance
// analytics endpoint.
type InsuranceAnalytics struct {
	FarmName       string         `json:"farm_name"`
	TotalPolicies  int            `json:"total_policies"`
	ActivePolicies int            `json:"active_policies"`
	TotalCoverage  float64        `json:"total_coverage"`
	TotalPremiums  float64        `json:"total_premiums"`
	TotalClaims    int            `json:"total_claims"`
	ApprovedClaims int            `json:"approved_claims"`
	TotalPayouts   float64        `json:"total_payouts"`
	PoliciesByType map[string]int `json:"policies_by_type"`
	ClaimsByStatus map[string]int `json:"claims_by_status"`
}
