package repository

import (
	"context"
	"fmt"
	"time"

	"farm-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type MarketRepository struct {
	db *sqlx.DB
}

func NewMarketRepository(db *sqlx.DB) *MarketRepository {
	return &MarketRepository{db: db}
}

// UpsertPrice inserts a price quote or replaces it on the unique
// (crop, market, date) tuple.
func (r *MarketRepository) UpsertPrice(ctx context.Context, price *models.MarketPrice) error {
	query := `
		INSERT INTO market_prices (id, crop, market, price_per_kg, date, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (crop, market, date)
		DO UPDATE SET
		    price_per_kg = EXCLUDED.price_per_kg,
		    source = EXCLUDED.source,
		    updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query,
		price.ID, price.Crop, price.Market, price.PricePerKg, price.Date, price.Source)
	if err != nil {
		return fmt.Errorf("failed to upsert market price: %w", err)
	}

	return nil
}

// GetPrices retrieves quotes for a crop+market within [from, to], oldest first
func (r *MarketRepository) GetPrices(ctx context.Context, crop, market string, from, to time.Time) ([]models.MarketPrice, error) {
	var prices []models.MarketPrice
	query := `
		SELECT id, crop, market, price_per_kg, date, source, created_at, updated_at
		FROM market_prices
		WHERE crop = $1 AND market = $2 AND date BETWEEN $3 AND $4
		ORDER BY date ASC
	`

	err := r.db.SelectContext(ctx, &prices, query, crop, market, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get market prices: %w", err)
	}

	return prices, nil
}

// GetLatestPrice retrieves the newest quote for a crop+market
func (r *MarketRepository) GetLatestPrice(ctx context.Context, crop, market string) (*models.MarketPrice, error) {
	var price models.MarketPrice
	query := `
		SELECT id, crop, market, price_per_kg, date, source, created_at, updated_at
		FROM market_prices
		WHERE crop = $1 AND market = $2
		ORDER BY date DESC
		LIMIT 1
	`

	err := r.db.GetContext(ctx, &price, query, crop, market)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest market price: %w", err)
	}

	return &price, nil
}

// ListMarkets retrieves the distinct markets currently quoting a crop
func (r *MarketRepository) ListMarkets(ctx context.Context, crop string) ([]string, error) {
	var markets []string
	query := `
		SELECT DISTINCT market
		FROM market_prices
		WHERE crop = $1
		ORDER BY market ASC
	`

	err := r.db.SelectContext(ctx, &markets, query, crop)
	if err != nil {
		return nil, fmt.Errorf("failed to list markets: %w", err)
	}

	return markets, nil
}

// CreateAlert inserts a price alert
func (r *MarketRepository) CreateAlert(ctx context.Context, alert *models.PriceAlert) error {
	query := `
		INSERT INTO price_alerts (id, user_id, crop, target_price, market, is_active,
		       is_triggered, triggered_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		alert.ID, alert.UserID, alert.Crop, alert.TargetPrice, alert.Market,
		alert.IsActive, alert.IsTriggered, alert.TriggeredAt)
	if err != nil {
		return fmt.Errorf("failed to create price alert: %w", err)
	}

	return nil
}

// GetAlertsByUserID retrieves a user's price alerts, newest first
func (r *MarketRepository) GetAlertsByUserID(ctx context.Context, userID string) ([]models.PriceAlert, error) {
	var alerts []models.PriceAlert
	query := `
		SELECT id, user_id, crop, target_price, market, is_active, is_triggered,
		       triggered_at, created_at
		FROM price_alerts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	err := r.db.SelectContext(ctx, &alerts, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get price alerts: %w", err)
	}

	return alerts, nil
}

// GetActiveAlertsForQuote retrieves untriggered active alerts matching a
// crop+market whose target is at or below the given price.
func (r *MarketRepository) GetActiveAlertsForQuote(ctx context.Context, crop, market string, price float64) ([]models.PriceAlert, error) {
	var alerts []models.PriceAlert
	query := `
		SELECT id, user_id, crop, target_price, market, is_active, is_triggered,
		       triggered_at, created_at
		FROM price_alerts
		WHERE crop = $1 AND market = $2 AND is_active = true AND is_triggered = false
		  AND target_price <= $3
	`

	err := r.db.SelectContext(ctx, &alerts, query, crop, market, price)
	if err != nil {
		return nil, fmt.Errorf("failed to get matching price alerts: %w", err)
	}

	return alerts, nil
}

// MarkAlertTriggered flips an alert to triggered, first writer wins
func (r *MarketRepository) MarkAlertTriggered(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE price_alerts SET is_triggered = true, triggered_at = $2 WHERE id = $1 AND is_triggered = false`,
		id, at)
	if err != nil {
		return false, fmt.Errorf("failed to mark price alert triggered: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// DeactivateAlert turns an alert off
func (r *MarketRepository) DeactivateAlert(ctx context.Context, id uuid.UUID, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE price_alerts SET is_active = false WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate price alert: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("price alert not found: %s", id)
	}

	return nil
}
