package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST SUITE 1: POLICY VALIDITY
// ============================================================================

func validTestPolicy(now time.Time) InsurancePolicy {
	return InsurancePolicy{
		Status:    PolicyActive,
		IsPaid:    true,
		StartDate: now.AddDate(0, 0, -30),
		EndDate:   now.AddDate(0, 0, 30),
	}
}

func TestPolicyIsValid_ActivePaidInWindow(t *testing.T) {
	now := time.Now()
	policy := validTestPolicy(now)

	assert.True(t, policy.IsValid(now))
}

func TestPolicyIsValid_Unpaid(t *testing.T) {
	now := time.Now()
	policy := validTestPolicy(now)
	policy.IsPaid = false

	assert.False(t, policy.IsValid(now), "an unpaid policy never pays out")
}

func TestPolicyIsValid_WrongStatus(t *testing.T) {
	now := time.Now()
	for _, status := range []PolicyStatus{PolicyDraft, PolicyExpired, PolicyCancelled, PolicyClaimed} {
		policy := validTestPolicy(now)
		policy.Status = status

		assert.False(t, policy.IsValid(now), "status %s must not be valid", status)
	}
}

func TestPolicyIsValid_OutsideCoverageWindow(t *testing.T) {
	now := time.Now()

	notStarted := validTestPolicy(now)
	notStarted.StartDate = now.AddDate(0, 0, 2)
	assert.False(t, notStarted.IsValid(now), "coverage has not started yet")

	ended := validTestPolicy(now)
	ended.EndDate = now.AddDate(0, 0, -2)
	assert.False(t, ended.IsValid(now), "coverage already ended")
}

func TestPolicyIsValid_BoundaryDays(t *testing.T) {
	now := time.Now()

	policy := validTestPolicy(now)
	policy.StartDate = now
	policy.EndDate = now
	assert.True(t, policy.IsValid(now), "a policy is valid on both boundary days")
}

// ============================================================================
// TEST SUITE 2: NDVI HEALTH
// ============================================================================

func TestNDVIHealthStatus_Buckets(t *testing.T) {
	assert.Equal(t, CropHealthPoor, NDVIHealthStatus(0.1))
	assert.Equal(t, CropHealthPoor, NDVIHealthStatus(0.19))
	assert.Equal(t, CropHealthFair, NDVIHealthStatus(0.2))
	assert.Equal(t, CropHealthFair, NDVIHealthStatus(0.39))
	assert.Equal(t, CropHealthGood, NDVIHealthStatus(0.4))
	assert.Equal(t, CropHealthGood, NDVIHealthStatus(0.59))
	assert.Equal(t, CropHealthExcellent, NDVIHealthStatus(0.6))
	assert.Equal(t, CropHealthExcellent, NDVIHealthStatus(0.95))
}

// ============================================================================
// TEST SUITE 3: WEATHER ROWS
// ============================================================================

func TestWeatherObservation_IsForecast(t *testing.T) {
	historical := WeatherObservation{}
	assert.False(t, historical.IsForecast())

	forecastDate := time.Now().AddDate(0, 0, 3)
	forecast := WeatherObservation{ForecastDate: &forecastDate}
	assert.True(t, forecast.IsForecast())
}
