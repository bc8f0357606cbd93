package models

import (
	"fmt"
	"time"
)

// CreatePolicyRequest is the payload for registering a new insurance policy.
type CreatePolicyRequest struct {
	PolicyType       PolicyType             `json:"policy_type"`
	CoverageAmount   float64                `json:"coverage_amount"`
	PremiumAmount    float64                `json:"premium_amount"`
	PaymentFrequency PaymentFrequency       `json:"payment_frequency"`
	StartDate        time.Time              `json:"start_date"`
	EndDate          time.Time              `json:"end_date"`
	Triggers         []CreateTriggerRequest `json:"triggers"`
}

// CreateTriggerRequest is one trigger definition inside a policy creation.
type CreateTriggerRequest struct {
	TriggerType           TriggerType `json:"trigger_type"`
	ThresholdValue        float64     `json:"threshold_value"`
	MeasurementPeriodDays int         `json:"measurement_period_days"`
	PayoutPercentage      float64     `json:"payout_percentage"`
}

func (r *CreatePolicyRequest) Validate() error {
	switch r.PolicyType {
	case PolicyTypeDrought, PolicyTypeFlood, PolicyTypeMultiPeril, PolicyTypeExcessRain, PolicyTypeTemperature:
	default:
		return fmt.Errorf("invalid policy_type %q", r.PolicyType)
	}
	if r.CoverageAmount < 1000 {
		return fmt.Errorf("coverage_amount must be at least 1000 KES")
	}
	if r.PremiumAmount < 100 {
		return fmt.Errorf("premium_amount must be at least 100 KES")
	}
	if !r.EndDate.After(r.StartDate) {
		return fmt.Errorf("end_date must be after start_date")
	}
	for i := range r.Triggers {
		if err := r.Triggers[i].Validate(); err != nil {
			return fmt.Errorf("trigger %d: %w", i, err)
		}
	}
	return nil
}

func (r *CreateTriggerRequest) Validate() error {
	switch r.TriggerType {
	case TriggerRainfallDeficit, TriggerRainfallExcess, TriggerTemperatureHigh,
		TriggerTemperatureLow, TriggerConsecutiveDryDays:
	default:
		return fmt.Errorf("invalid trigger_type %q", r.TriggerType)
	}
	if r.MeasurementPeriodDays <= 0 {
		return fmt.Errorf("measurement_period_days must be positive")
	}
	if r.PayoutPercentage < 0 || r.PayoutPercentage > 100 {
		return fmt.Errorf("payout_percentage must be within 0-100")
	}
	return nil
}

// CreateClaimRequest is the payload for filing a manual claim.
type CreateClaimRequest struct {
	PolicyID    string  `json:"policy_id"`
	ClaimAmount float64 `json:"claim_amount"`
	Description string  `json:"description"`
}

func (r *CreateClaimRequest) Validate() error {
	if r.PolicyID == "" {
		return fmt.Errorf("policy_id is required")
	}
	if r.ClaimAmount <= 0 {
		return fmt.Errorf("claim_amount must be positive")
	}
	return nil
}

// RecordPaymentRequest is the payload for recording a premium payment.
type RecordPaymentRequest struct {
	PolicyID       string        `json:"policy_id"`
	Amount         float64       `json:"amount"`
	PaymentDate    time.Time     `json:"payment_date"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	TransactionRef string        `json:"transaction_ref"`
	IsConfirmed    bool          `json:"is_confirmed"`
}

func (r *RecordPaymentRequest) Validate() error {
	if r.PolicyID == "" {
		return fmt.Errorf("policy_id is required")
	}
	if r.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	switch r.PaymentMethod {
	case PaymentMpesa, PaymentBank, PaymentCash, PaymentMobileMoney:
	default:
		return fmt.Errorf("invalid payment_method %q", r.PaymentMethod)
	}
	return nil
}

// UpsertWeatherRequest is the ingestion payload for one weather row.
type UpsertWeatherRequest struct {
	Latitude     float64          `json:"latitude"`
	Longitude    float64          `json:"longitude"`
	LocationName string           `json:"location_name"`
	Date         time.Time        `json:"date"`
	ForecastDate *time.Time       `json:"forecast_date"`
	TempMin      float64          `json:"temp_min"`
	TempMax      float64          `json:"temp_max"`
	TempAvg      float64          `json:"temp_avg"`
	Rainfall     float64          `json:"rainfall"`
	Humidity     *int             `json:"humidity"`
	WindSpeed    *float64         `json:"wind_speed"`
	Condition    WeatherCondition `json:"condition"`
	Source       WeatherSource    `json:"source"`
}

func (r *UpsertWeatherRequest) Validate() error {
	if r.Rainfall < 0 {
		return fmt.Errorf("rainfall must not be negative")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if r.Humidity != nil && (*r.Humidity < 0 || *r.Humidity > 100) {
		return fmt.Errorf("humidity must be within 0-100")
	}
	return nil
}

// CreateNDVIRequest is the payload for one NDVI measurement.
type CreateNDVIRequest struct {
	NDVIValue         float64    `json:"ndvi_value"`
	ImageDate         time.Time  `json:"image_date"`
	Source            NDVISource `json:"source"`
	CloudCoverPercent *int       `json:"cloud_cover_percent"`
}

func (r *CreateNDVIRequest) Validate() error {
	if r.NDVIValue < -1 || r.NDVIValue > 1 {
		return fmt.Errorf("ndvi_value must be within -1 to 1")
	}
	if r.ImageDate.IsZero() {
		return fmt.Errorf("image_date is required")
	}
	return nil
}

// UpsertMarketPriceRequest is the ingestion payload for one price quote.
type UpsertMarketPriceRequest struct {
	Crop       string            `json:"crop"`
	Market     string            `json:"market"`
	PricePerKg float64           `json:"price_per_kg"`
	Date       time.Time         `json:"date"`
	Source     MarketPriceSource `json:"source"`
}

func (r *UpsertMarketPriceRequest) Validate() error {
	if r.Crop == "" || r.Market == "" {
		return fmt.Errorf("crop and market are required")
	}
	if r.PricePerKg <= 0 {
		return fmt.Errorf("price_per_kg must be positive")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

// ChatRequest is the agronomist-chat payload.
type ChatRequest struct {
	Query   string `json:"query"`
	Context string `json:"context"`
}

func (r *ChatRequest) Validate() error {
	if r.Query == "" {
		return fmt.Errorf("query is required")
	}
	return nil
}
