package services

import (
	"testing"

	"farm-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST SUITE 1: TREND CLASSIFICATION
// ============================================================================

func TestClassifyTrend_Rising(t *testing.T) {
	trend, changePct := classifyTrend([]float64{10, 10, 10, 12, 12, 12})

	assert.Equal(t, models.TrendRising, trend, "a 20% second-half jump is rising")
	assert.InDelta(t, 20.0, changePct, 0.01)
}

func TestClassifyTrend_Falling(t *testing.T) {
	trend, changePct := classifyTrend([]float64{12, 12, 12, 10, 10, 10})

	assert.Equal(t, models.TrendFalling, trend)
	assert.InDelta(t, -16.67, changePct, 0.01)
}

func TestClassifyTrend_StableInsideBand(t *testing.T) {
	// Second half is 2% above the first half, inside the 5% band.
	trend, changePct := classifyTrend([]float64{10, 10, 10.2, 10.2})

	assert.Equal(t, models.TrendStable, trend, "moves under 5% count as stable")
	assert.InDelta(t, 2.0, changePct, 0.01)
}

func TestClassifyTrend_SinglePoint(t *testing.T) {
	trend, changePct := classifyTrend([]float64{42})

	assert.Equal(t, models.TrendStable, trend, "one point cannot show movement")
	assert.Equal(t, 0.0, changePct)
}

// ============================================================================
// TEST SUITE 2: HELPERS
// ============================================================================

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, mean(nil), "an empty series averages to zero")
	assert.InDelta(t, 20.0, mean([]float64{10, 20, 30}), 0.001)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 45.68, round2(45.6789))
	assert.Equal(t, 45.67, round2(45.674))
}

func TestPriceValues(t *testing.T) {
	prices := []models.MarketPrice{
		{PricePerKg: 45.5},
		{PricePerKg: 47.0},
	}

	assert.Equal(t, []float64{45.5, 47.0}, priceValues(prices))
}

func TestLatestPriceCacheKey(t *testing.T) {
	assert.Equal(t, "market:latest:maize:nairobi", latestPriceCacheKey("maize", "nairobi"))
}
