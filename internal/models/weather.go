package models

import (
	"time"

	"github.com/google/uuid"
)

// WeatherObservation is one historical reading or one forecast for a
// location+date. ForecastDate non-nil marks the row as a forecast for that
// date; nil means historical. The tuple (latitude, longitude, date,
// forecast_date) is unique.
type WeatherObservation struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	Latitude     float64          `json:"latitude" db:"latitude"`
	Longitude    float64          `json:"longitude" db:"longitude"`
	LocationName string           `json:"location_name" db:"location_name"`
	Date         time.Time        `json:"date" db:"date"`
	ForecastDate *time.Time       `json:"forecast_date,omitempty" db:"forecast_date"`
	TempMin      float64          `json:"temp_min" db:"temp_min"`
	TempMax      float64          `json:"temp_max" db:"temp_max"`
	TempAvg      float64          `json:"temp_avg" db:"temp_avg"`
	Rainfall     float64          `json:"rainfall" db:"rainfall"`
	Humidity     *int             `json:"humidity,omitempty" db:"humidity"`
	WindSpeed    *float64         `json:"wind_speed,omitempty" db:"wind_speed"`
	Condition    WeatherCondition `json:"condition" db:"condition"`
	Source       WeatherSource    `json:"source" db:"source"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}

// IsForecast reports whether the row is a forecast rather than a reading.
func (w *WeatherObservation) IsForecast() bool {
	return w.ForecastDate != nil
}

// NDVIRecord is one satellite vegetation-index measurement for a farm.
// HealthStatus is derived from the NDVI value, never set by callers.
type NDVIRecord struct {
	ID                uuid.UUID        `json:"id" db:"id"`
	FarmID            uuid.UUID        `json:"farm_id" db:"farm_id"`
	NDVIValue         float64          `json:"ndvi_value" db:"ndvi_value"`
	ImageDate         time.Time        `json:"image_date" db:"image_date"`
	HealthStatus      CropHealthStatus `json:"health_status" db:"health_status"`
	Source            NDVISource       `json:"source" db:"source"`
	CloudCoverPercent *int             `json:"cloud_cover_percent,omitempty" db:"cloud_cover_percent"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
}

// NDVIHealthStatus buckets an NDVI value into a crop-health label.
// Healthy vegetation sits around 0.3-0.8.
func NDVIHealthStatus(value float64) CropHealthStatus {
	switch {
	case value < 0.2:
		return CropHealthPoor
	case value < 0.4:
		return CropHealthFair
	case value < 0.6:
		return CropHealthGood
	default:
		return CropHealthExcellent
	}
}

// WeatherAlert is a warning shown to (and optionally pushed to) one user.
type WeatherAlert struct {
	ID               uuid.UUID     `json:"id" db:"id"`
	UserID           string        `json:"user_id" db:"user_id"`
	AlertType        AlertType     `json:"alert_type" db:"alert_type"`
	Severity         AlertSeverity `json:"severity" db:"severity"`
	Title            string        `json:"title" db:"title"`
	Message          string        `json:"message" db:"message"`
	ValidFrom        time.Time     `json:"valid_from" db:"valid_from"`
	ValidUntil       time.Time     `json:"valid_until" db:"valid_until"`
	IsActive         bool          `json:"is_active" db:"is_active"`
	IsRead           bool          `json:"is_read" db:"is_read"`
	NotificationSent bool          `json:"notification_sent" db:"notification_sent"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
}
