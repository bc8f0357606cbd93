package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"farm-backend/internal/database/redis"
	"farm-backend/internal/event"
	"farm-backend/internal/models"
	"farm-backend/internal/repository"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const (
	trendWindowDays    = 30
	maxForecastDays    = 30
	minForecastPoints  = 3
	latestPriceCacheTTL = 10 * time.Minute
)

// MarketService covers price ingestion, trend analysis, forecasting, sell
// advice and price alerts. Latest quotes are cached in Redis.
type MarketService struct {
	marketRepo       *repository.MarketRepository
	notificationRepo *repository.NotificationRepository
	cache            *redis.Client
	publisher        *event.NotificationPublisher
}

func NewMarketService(
	marketRepo *repository.MarketRepository,
	notificationRepo *repository.NotificationRepository,
	cache *redis.Client,
	publisher *event.NotificationPublisher,
) *MarketService {
	return &MarketService{
		marketRepo:       marketRepo,
		notificationRepo: notificationRepo,
		cache:            cache,
		publisher:        publisher,
	}
}

// UpsertPrice ingests one price quote, refreshes the cache and fires any
// matching price alerts.
func (s *MarketService) UpsertPrice(ctx context.Context, req *models.UpsertMarketPriceRequest) (*models.MarketPrice, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	price := &models.MarketPrice{
		ID:         uuid.New(),
		Crop:       req.Crop,
		Market:     req.Market,
		PricePerKg: req.PricePerKg,
		Date:       req.Date,
		Source:     req.Source,
	}

	if err := s.marketRepo.UpsertPrice(ctx, price); err != nil {
		return nil, err
	}

	s.cacheLatestPrice(ctx, price)
	s.checkPriceAlerts(ctx, price)

	return price, nil
}

// GetLatestPrice returns the newest quote for a crop+market, preferring the
// cache over the database.
func (s *MarketService) GetLatestPrice(ctx context.Context, crop, market string) (*models.MarketPrice, error) {
	if cached := s.cachedLatestPrice(ctx, crop, market); cached != nil {
		return cached, nil
	}

	price, err := s.marketRepo.GetLatestPrice(ctx, crop, market)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no price data for %s in %s", ErrNotFound, crop, market)
		}
		return nil, err
	}

	s.cacheLatestPrice(ctx, price)
	return price, nil
}

// ListPrices returns quotes for a crop+market over a trailing number of days.
func (s *MarketService) ListPrices(ctx context.Context, crop, market string, days int) ([]models.MarketPrice, error) {
	if crop == "" || market == "" {
		return nil, fmt.Errorf("%w: crop and market are required", ErrValidation)
	}
	if days <= 0 {
		days = trendWindowDays
	}

	now := time.Now()
	return s.marketRepo.GetPrices(ctx, crop, market, now.AddDate(0, 0, -days), now)
}

// GetTrend analyses the price movement for a crop+market. The trend compares
// the first-half average against the second-half average; a swing beyond 5%
// either way counts as movement.
func (s *MarketService) GetTrend(ctx context.Context, crop, market string, days int) (*models.PriceTrendReport, error) {
	prices, err := s.ListPrices(ctx, crop, market, days)
	if err != nil {
		return nil, err
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: no price data for %s in %s", ErrNotFound, crop, market)
	}
	if days <= 0 {
		days = trendWindowDays
	}

	values := priceValues(prices)
	avg := mean(values)
	minPrice, maxPrice := values[0], values[0]
	for _, v := range values {
		if v < minPrice {
			minPrice = v
		}
		if v > maxPrice {
			maxPrice = v
		}
	}

	trend, changePct := classifyTrend(values)

	return &models.PriceTrendReport{
		Crop:         crop,
		Market:       market,
		PeriodDays:   days,
		DataPoints:   len(values),
		AveragePrice: round2(avg),
		MinPrice:     round2(minPrice),
		MaxPrice:     round2(maxPrice),
		LatestPrice:  round2(values[len(values)-1]),
		Trend:        trend,
		ChangePct:    round2(changePct),
	}, nil
}

// GetForecast produces a naive moving-average forecast. The trend factor is
// the recent seven-day average over the overall average, decayed day by day.
func (s *MarketService) GetForecast(ctx context.Context, crop, market string, daysAhead int) (*models.PriceForecast, error) {
	if daysAhead <= 0 {
		daysAhead = 7
	}
	if daysAhead > maxForecastDays {
		daysAhead = maxForecastDays
	}

	prices, err := s.ListPrices(ctx, crop, market, trendWindowDays)
	if err != nil {
		return nil, err
	}
	if len(prices) < minForecastPoints {
		return nil, fmt.Errorf("%w: need at least %d data points for a forecast", ErrInvalidState, minForecastPoints)
	}

	values := priceValues(prices)
	avg := mean(values)

	trendFactor := 1.0
	if len(values) >= 7 && avg > 0 {
		trendFactor = mean(values[len(values)-7:]) / avg
	}

	today := time.Now().Truncate(24 * time.Hour)
	points := make([]models.PriceForecastPoint, 0, daysAhead)
	for i := 1; i <= daysAhead; i++ {
		predicted := avg * math.Pow(trendFactor, math.Pow(0.9, float64(i)))
		confidence := 100 - i*3
		if confidence < 50 {
			confidence = 50
		}
		points = append(points, models.PriceForecastPoint{
			Date:           today.AddDate(0, 0, i),
			PredictedPrice: round2(predicted),
			Confidence:     confidence,
		})
	}

	return &models.PriceForecast{
		Crop:        crop,
		Market:      market,
		BasePrice:   round2(avg),
		TrendFactor: math.Round(trendFactor*1000) / 1000,
		Points:      points,
	}, nil
}

// GetSellAdvice recommends whether to sell now or wait, based on the recent
// price movement against the period average.
func (s *MarketService) GetSellAdvice(ctx context.Context, crop, market string) (*models.SellAdvice, error) {
	latest, err := s.GetLatestPrice(ctx, crop, market)
	if err != nil {
		return nil, err
	}
	currentPrice := latest.PricePerKg

	prices, err := s.ListPrices(ctx, crop, market, trendWindowDays)
	if err != nil {
		return nil, err
	}

	if len(prices) < minForecastPoints {
		return &models.SellAdvice{
			Crop:           crop,
			Market:         market,
			CurrentPrice:   currentPrice,
			AveragePrice:   currentPrice,
			Recommendation: "sell_now",
			Reason:         "Insufficient data for forecast. Current price is available.",
			Confidence:     "low",
			RecentTrend:    models.TrendStable,
		}, nil
	}

	values := priceValues(prices)
	avg := mean(values)
	recentAvg := avg
	if len(values) >= 7 {
		recentAvg = mean(values[len(values)-7:])
	}

	advice := &models.SellAdvice{
		Crop:         crop,
		Market:       market,
		CurrentPrice: currentPrice,
		AveragePrice: round2(avg),
		RecentTrend:  models.TrendFalling,
	}
	if recentAvg > avg {
		advice.RecentTrend = models.TrendRising
	}

	switch {
	case recentAvg > avg*1.1:
		advice.Recommendation = "wait"
		advice.Reason = "Prices are trending upward. Consider waiting a few days for better rates."
		advice.Confidence = "medium"
	case currentPrice > avg*1.05:
		advice.Recommendation = "sell_now"
		advice.Reason = "Current price is above average. Good time to sell."
		advice.Confidence = "high"
	case recentAvg < avg*0.9:
		advice.Recommendation = "sell_now"
		advice.Reason = "Prices are declining. Sell now to avoid further losses."
		advice.Confidence = "medium"
	default:
		advice.Recommendation = "sell_now"
		advice.Reason = "Price is stable. Good time to sell."
		advice.Confidence = "medium"
	}

	return advice, nil
}

// CreateAlertRequest is the payload for a new price alert.
type CreateAlertRequest struct {
	Crop        string  `json:"crop"`
	Market      string  `json:"market"`
	TargetPrice float64 `json:"target_price"`
}

func (r *CreateAlertRequest) Validate() error {
	if r.Crop == "" || r.Market == "" {
		return fmt.Errorf("crop and market are required")
	}
	if r.TargetPrice <= 0 {
		return fmt.Errorf("target_price must be positive")
	}
	return nil
}

// CreateAlert registers a price alert for the caller.
func (s *MarketService) CreateAlert(ctx context.Context, userID string, req *CreateAlertRequest) (*models.PriceAlert, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	alert := &models.PriceAlert{
		ID:          uuid.New(),
		UserID:      userID,
		Crop:        req.Crop,
		TargetPrice: req.TargetPrice,
		Market:      req.Market,
		IsActive:    true,
	}

	if err := s.marketRepo.CreateAlert(ctx, alert); err != nil {
		return nil, err
	}

	return alert, nil
}

// ListAlerts returns the caller's price alerts.
func (s *MarketService) ListAlerts(ctx context.Context, userID string) ([]models.PriceAlert, error) {
	return s.marketRepo.GetAlertsByUserID(ctx, userID)
}

// DeactivateAlert turns one of the caller's alerts off.
func (s *MarketService) DeactivateAlert(ctx context.Context, userID string, alertID uuid.UUID) error {
	if err := s.marketRepo.DeactivateAlert(ctx, alertID, userID); err != nil {
		return fmt.Errorf("%w: alert %s", ErrNotFound, alertID)
	}
	return nil
}

// checkPriceAlerts fires alerts whose target the new quote reached. Each
// alert fires once; failures are logged, not propagated to the ingester.
func (s *MarketService) checkPriceAlerts(ctx context.Context, price *models.MarketPrice) {
	alerts, err := s.marketRepo.GetActiveAlertsForQuote(ctx, price.Crop, price.Market, price.PricePerKg)
	if err != nil {
		slog.Error("failed to load matching price alerts", "error", err, "crop", price.Crop)
		return
	}

	now := time.Now()
	for _, alert := range alerts {
		fired, err := s.marketRepo.MarkAlertTriggered(ctx, alert.ID, now)
		if err != nil {
			slog.Error("failed to mark price alert triggered", "error", err, "alert_id", alert.ID)
			continue
		}
		if !fired {
			continue
		}

		title := fmt.Sprintf("%s reached your target price", price.Crop)
		body := fmt.Sprintf("%s is now %.2f KES/kg at %s (your target: %.2f)",
			price.Crop, price.PricePerKg, price.Market, alert.TargetPrice)

		notification := &models.Notification{
			ID:       uuid.New(),
			UserID:   alert.UserID,
			Type:     models.NotificationPriceAlert,
			Priority: models.PriorityMedium,
			Title:    title,
			Message:  body,
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			slog.Error("failed to store price alert notification", "error", err, "alert_id", alert.ID)
		}

		if s.publisher != nil {
			err := s.publisher.PublishNotification(ctx, event.NotificationEventPushModel{
				EventType:  event.EventPriceAlert,
				Title:      title,
				Body:       body,
				LstUserIds: []string{alert.UserID},
				Data: map[string]any{
					"crop":   price.Crop,
					"market": price.Market,
					"price":  price.PricePerKg,
				},
			})
			if err != nil {
				slog.Error("failed to publish price alert event", "error", err, "alert_id", alert.ID)
			}
		}
	}
}

func latestPriceCacheKey(crop, market string) string {
	return fmt.Sprintf("market:latest:%s:%s", crop, market)
}

func (s *MarketService) cacheLatestPrice(ctx context.Context, price *models.MarketPrice) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(price)
	if err != nil {
		return
	}

	if err := s.cache.GetClient().Set(ctx, latestPriceCacheKey(price.Crop, price.Market), payload, latestPriceCacheTTL).Err(); err != nil {
		slog.Warn("failed to cache latest price", "error", err, "crop", price.Crop)
	}
}

func (s *MarketService) cachedLatestPrice(ctx context.Context, crop, market string) *models.MarketPrice {
	if s.cache == nil {
		return nil
	}

	payload, err := s.cache.GetClient().Get(ctx, latestPriceCacheKey(crop, market)).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			slog.Warn("failed to read price cache", "error", err, "crop", crop)
		}
		return nil
	}

	var price models.MarketPrice
	if err := json.Unmarshal(payload, &price); err != nil {
		return nil
	}
	return &price
}

func priceValues(prices []models.MarketPrice) []float64 {
	values := make([]float64, len(prices))
	for i, p := range prices {
		values[i] = p.PricePerKg
	}
	return values
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// classifyTrend compares the first-half average against the second-half
// average; moves beyond 5% either way count as rising or falling.
func classifyTrend(values []float64) (models.PriceTrend, float64) {
	mid := len(values) / 2
	if mid == 0 {
		return models.TrendStable, 0
	}

	firstHalf := mean(values[:mid])
	secondHalf := mean(values[mid:])

	changePct := 0.0
	if firstHalf > 0 {
		changePct = (secondHalf - firstHalf) / firstHalf * 100
	}

	switch {
	case secondHalf > firstHalf*1.05:
		return models.TrendRising, changePct
	case secondHalf < firstHalf*0.95:
		return models.TrendFalling, changePct
	default:
		return models.TrendStable, changePct
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
