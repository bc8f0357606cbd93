package repository

import (
	"context"
	"fmt"
	"time"

	"farm-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type WeatherRepository struct {
	db *sqlx.DB
}

func NewWeatherRepository(db *sqlx.DB) *WeatherRepository {
	return &WeatherRepository{db: db}
}

// Upsert inserts a weather row or replaces the measurements on the unique
// (latitude, longitude, date, forecast_date) tuple.
func (r *WeatherRepository) Upsert(ctx context.Context, obs *models.WeatherObservation) error {
	query := `
		INSERT INTO weather_observations (id, latitude, longitude, location_name, date, forecast_date,
		       temp_min, temp_max, temp_avg, rainfall, humidity, wind_speed, condition, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		ON CONFLICT (latitude, longitude, date, COALESCE(forecast_date, '0001-01-01'::date))
		DO UPDATE SET
		    location_name = EXCLUDED.location_name,
		    temp_min = EXCLUDED.temp_min,
		    temp_max = EXCLUDED.temp_max,
		    temp_avg = EXCLUDED.temp_avg,
		    rainfall = EXCLUDED.rainfall,
		    humidity = EXCLUDED.humidity,
		    wind_speed = EXCLUDED.wind_speed,
		    condition = EXCLUDED.condition,
		    source = EXCLUDED.source
	`

	_, err := r.db.ExecContext(ctx, query,
		obs.ID, obs.Latitude, obs.Longitude, obs.LocationName, obs.Date, obs.ForecastDate,
		obs.TempMin, obs.TempMax, obs.TempAvg, obs.Rainfall, obs.Humidity,
		obs.WindSpeed, obs.Condition, obs.Source)
	if err != nil {
		return fmt.Errorf("failed to upsert weather observation: %w", err)
	}

	return nil
}

// GetHistoricalWindow retrieves historical readings (forecast_date IS NULL)
// for an exact location within [from, to], ordered by date ascending.
func (r *WeatherRepository) GetHistoricalWindow(ctx context.Context, latitude, longitude float64, from, to time.Time) ([]models.WeatherObservation, error) {
	var observations []models.WeatherObservation
	query := `
		SELECT id, latitude, longitude, location_name, date, forecast_date,
		       temp_min, temp_max, temp_avg, rainfall, humidity, wind_speed,
		       condition, source, created_at
		FROM weather_observations
		WHERE latitude = $1 AND longitude = $2
		  AND forecast_date IS NULL
		  AND date BETWEEN $3 AND $4
		ORDER BY date ASC
	`

	err := r.db.SelectContext(ctx, &observations, query, latitude, longitude, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get historical weather window: %w", err)
	}

	return observations, nil
}

// GetForecasts retrieves upcoming forecast rows for an exact location.
func (r *WeatherRepository) GetForecasts(ctx context.Context, latitude, longitude float64, from time.Time) ([]models.WeatherObservation, error) {
	var observations []models.WeatherObservation
	query := `
		SELECT id, latitude, longitude, location_name, date, forecast_date,
		       temp_min, temp_max, temp_avg, rainfall, humidity, wind_speed,
		       condition, source, created_at
		FROM weather_observations
		WHERE latitude = $1 AND longitude = $2
		  AND forecast_date IS NOT NULL
		  AND forecast_date >= $3
		ORDER BY forecast_date ASC
	`

	err := r.db.SelectContext(ctx, &observations, query, latitude, longitude, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get weather forecasts: %w", err)
	}

	return observations, nil
}

// CreateNDVI inserts an NDVI record
func (r *WeatherRepository) CreateNDVI(ctx context.Context, record *models.NDVIRecord) error {
	query := `
		INSERT INTO ndvi_records (id, farm_id, ndvi_value, image_date, health_status,
		       source, cloud_cover_percent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.FarmID, record.NDVIValue, record.ImageDate,
		record.HealthStatus, record.Source, record.CloudCoverPercent)
	if err != nil {
		return fmt.Errorf("failed to create ndvi record: %w", err)
	}

	return nil
}

// GetNDVIByFarmID retrieves NDVI records for a farm, newest first
func (r *WeatherRepository) GetNDVIByFarmID(ctx context.Context, farmID uuid.UUID, limit int) ([]models.NDVIRecord, error) {
	var records []models.NDVIRecord
	query := `
		SELECT id, farm_id, ndvi_value, image_date, health_status, source,
		       cloud_cover_percent, created_at
		FROM ndvi_records
		WHERE farm_id = $1
		ORDER BY image_date DESC
		LIMIT $2
	`

	err := r.db.SelectContext(ctx, &records, query, farmID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ndvi records: %w", err)
	}

	return records, nil
}

// CreateAlert inserts a weather alert
func (r *WeatherRepository) CreateAlert(ctx context.Context, alert *models.WeatherAlert) error {
	query := `
		INSERT INTO weather_alerts (id, user_id, alert_type, severity, title, message,
		       valid_from, valid_until, is_active, is_read, notification_sent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		alert.ID, alert.UserID, alert.AlertType, alert.Severity, alert.Title,
		alert.Message, alert.ValidFrom, alert.ValidUntil, alert.IsActive,
		alert.IsRead, alert.NotificationSent)
	if err != nil {
		return fmt.Errorf("failed to create weather alert: %w", err)
	}

	return nil
}

// GetActiveAlertsByUserID retrieves active, unexpired alerts for a user
func (r *WeatherRepository) GetActiveAlertsByUserID(ctx context.Context, userID string, now time.Time) ([]models.WeatherAlert, error) {
	var alerts []models.WeatherAlert
	query := `
		SELECT id, user_id, alert_type, severity, title, message, valid_from,
		       valid_until, is_active, is_read, notification_sent, created_at
		FROM weather_alerts
		WHERE user_id = $1 AND is_active = true AND valid_until >= $2
		ORDER BY created_at DESC
	`

	err := r.db.SelectContext(ctx, &alerts, query, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get weather alerts: %w", err)
	}

	return alerts, nil
}

// MarkAlertRead marks an alert as read
func (r *WeatherRepository) MarkAlertRead(ctx context.Context, id uuid.UUID, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE weather_alerts SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark alert read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("alert not found: %s", id)
	}

	return nil
}
