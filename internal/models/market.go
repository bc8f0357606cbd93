package models

import (
	"time"

	"github.com/google/uuid"
)

// MarketPrice is one crop price quote: at most one per (crop, market, date).
type MarketPrice struct {
	ID         uuid.UUID         `json:"id" db:"id"`
	Crop       string            `json:"crop" db:"crop"`
	Market     string            `json:"market" db:"market"`
	PricePerKg float64           `json:"price_per_kg" db:"price_per_kg"`
	Date       time.Time         `json:"date" db:"date"`
	Source     MarketPriceSource `json:"source" db:"source"`
	CreatedAt  time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at" db:"updated_at"`
}

// PriceAlert notifies a user when a crop reaches their target price.
type PriceAlert struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	Crop        string     `json:"crop" db:"crop"`
	TargetPrice float64    `json:"target_price" db:"target_price"`
	Market      string     `json:"market" db:"market"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	IsTriggered bool       `json:"is_triggered" db:"is_triggered"`
	TriggeredAt *time.Time `json:"triggered_at,omitempty" db:"triggered_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// PriceTrendReport is the trend-analysis response for one crop+market.
type PriceTrendReport struct {
	Crop         string     `json:"crop"`
	Market       string     `json:"market"`
	PeriodDays   int        `json:"period_days"`
	DataPoints   int        `json:"data_points"`
	AveragePrice float64    `json:"average_price"`
	MinPrice     float64    `json:"min_price"`
	MaxPrice     float64    `json:"max_price"`
	LatestPrice  float64    `json:"latest_price"`
	Trend        PriceTrend `json:"trend"`
	ChangePct    float64    `json:"change_percent"`
}

// PriceForecastPoint is one day of the naive price forecast. Confidence
// decays the further out the prediction sits.
type PriceForecastPoint struct {
	Date           time.Time `json:"date"`
	PredictedPrice float64   `json:"predicted_price"`
	Confidence     int       `json:"confidence"`
}

// PriceForecast is the forecast response for one crop+market.
type PriceForecast struct {
	Crop        string               `json:"crop"`
	Market      string               `json:"market"`
	BasePrice   float64              `json:"base_price"`
	TrendFactor float64              `json:"trend_factor"`
	Points      []PriceForecastPoint `json:"forecast"`
}

// SellAdvice is the best-time-to-sell heuristic response.
type SellAdvice struct {
	Crop           string     `json:"crop"`
	Market         string     `json:"market"`
	CurrentPrice   float64    `json:"current_price"`
	AveragePrice   float64    `json:"average_price"`
	Recommendation string     `json:"recommendation"`
	Reason         string     `json:"reason"`
	Confidence     string     `json:"confidence"`
	RecentTrend    PriceTrend `json:"recent_trend"`
}
