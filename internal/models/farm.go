package models

import (
	"time"

	"farm-backend/internal/utils"

	"github.com/google/uuid"
)

// FarmProfile is the single farm owned by one user. Latitude/longitude are
// the coordinates weather lookups match against; Boundary is an optional
// PostGIS polygon for mapping.
type FarmProfile struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	UserID      string           `json:"user_id" db:"user_id"`
	FarmName    *string          `json:"farm_name,omitempty" db:"farm_name"`
	County      string           `json:"county" db:"county"`
	Location    string           `json:"location" db:"location"`
	Latitude    *float64         `json:"latitude,omitempty" db:"latitude"`
	Longitude   *float64         `json:"longitude,omitempty" db:"longitude"`
	Boundary    *GeoJSONPolygon  `json:"boundary,omitempty" db:"boundary"`
	SizeAcres   float64          `json:"size_acres" db:"size_acres"`
	Crops       utils.StringList `json:"crops" db:"crops"`
	FarmingType FarmingType      `json:"farming_type" db:"farming_type"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// DisplayName prefers the farm name, falling back to the location.
func (f *FarmProfile) DisplayName() string {
	if f.FarmName != nil && *f.FarmName != "" {
		return *f.FarmName
	}
	return f.Location
}

// HasCoordinates reports whether weather lookups are possible for the farm.
func (f *FarmProfile) HasCoordinates() bool {
	return f.Latitude != nil && f.Longitude != nil
}

// HarvestRecord is one harvest. EstimatedValue is quantity * price,
// computed before persistence.
type HarvestRecord struct {
	ID             uuid.UUID `json:"id" db:"id"`
	FarmID         uuid.UUID `json:"farm_id" db:"farm_id"`
	Crop           string    `json:"crop" db:"crop"`
	QuantityKg     float64   `json:"quantity_kg" db:"quantity_kg"`
	HarvestDate    time.Time `json:"harvest_date" db:"harvest_date"`
	PricePerKg     float64   `json:"price_per_kg" db:"price_per_kg"`
	EstimatedValue float64   `json:"estimated_value" db:"estimated_value"`
	Notes          string    `json:"notes" db:"notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// ExpenseRecord is one farm expense.
type ExpenseRecord struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	FarmID      uuid.UUID       `json:"farm_id" db:"farm_id"`
	Category    ExpenseCategory `json:"category" db:"category"`
	Amount      float64         `json:"amount" db:"amount"`
	ExpenseDate time.Time       `json:"expense_date" db:"expense_date"`
	Description string          `json:"description" db:"description"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// FarmAnalytics aggregates harvests and expenses over a period.
type FarmAnalytics struct {
	FarmName        string             `json:"farm_name"`
	TotalHarvests   int                `json:"total_harvests"`
	TotalQuantityKg float64            `json:"total_quantity_kg"`
	TotalValue      float64            `json:"total_value"`
	TotalExpenses   float64            `json:"total_expenses"`
	ExpenseByCat    map[string]float64 `json:"expenses_by_category"`
	HarvestByCrop   []CropSummary      `json:"harvests_by_crop"`
	EstimatedProfit float64            `json:"estimated_profit"`
}

// CropSummary is the per-crop slice of farm analytics.
type CropSummary struct {
	Crop            string  `json:"crop" db:"crop"`
	TotalQuantityKg float64 `json:"total_quantity_kg" db:"total_quantity_kg"`
	TotalValue      float64 `json:"total_value" db:"total_value"`
}
