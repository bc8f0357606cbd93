package services

import (
	"testing"

	"farm-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func createTestTrigger(triggerType models.TriggerType, threshold float64) models.PolicyTrigger {
	return models.PolicyTrigger{
		ID:                    uuid.New(),
		PolicyID:              uuid.New(),
		TriggerType:           triggerType,
		ThresholdValue:        threshold,
		MeasurementPeriodDays: 30,
		PayoutPercentage:      50,
	}
}

func rainfallWindow(dailyRainfall ...float64) []models.WeatherObservation {
	window := make([]models.WeatherObservation, len(dailyRainfall))
	for i, mm := range dailyRainfall {
		window[i] = models.WeatherObservation{Rainfall: mm, TempAvg: 25}
	}
	return window
}

func temperatureWindow(dailyAvg ...float64) []models.WeatherObservation {
	window := make([]models.WeatherObservation, len(dailyAvg))
	for i, temp := range dailyAvg {
		window[i] = models.WeatherObservation{TempAvg: temp, Rainfall: 5}
	}
	return window
}

func evaluateOne(t *testing.T, trigger models.PolicyTrigger, window []models.WeatherObservation) TriggerOutcome {
	t.Helper()
	outcomes := EvaluateTriggers(
		[]models.PolicyTrigger{trigger},
		map[uuid.UUID][]models.WeatherObservation{trigger.ID: window},
	)
	assert.Len(t, outcomes, 1, "expected exactly one outcome")
	return outcomes[0]
}

// ============================================================================
// TEST SUITE 1: RAINFALL TRIGGERS
// ============================================================================

func TestEvaluateTriggers_RainfallDeficit_Fires(t *testing.T) {
	trigger := createTestTrigger(models.TriggerRainfallDeficit, 50)
	outcome := evaluateOne(t, trigger, rainfallWindow(10, 5, 15))

	assert.Equal(t, 30.0, outcome.MeasuredValue, "measured value is the rainfall sum")
	assert.True(t, outcome.Activated, "30mm total is below the 50mm threshold")
}

func TestEvaluateTriggers_RainfallDeficit_AtThresholdDoesNotFire(t *testing.T) {
	trigger := createTestTrigger(models.TriggerRainfallDeficit, 50)
	outcome := evaluateOne(t, trigger, rainfallWindow(20, 20, 10))

	assert.Equal(t, 50.0, outcome.MeasuredValue)
	assert.False(t, outcome.Activated, "deficit requires strictly below the threshold")
}

func TestEvaluateTriggers_RainfallExcess_Fires(t *testing.T) {
	trigger := createTestTrigger(models.TriggerRainfallExcess, 200)
	outcome := evaluateOne(t, trigger, rainfallWindow(80, 90, 60))

	assert.Equal(t, 230.0, outcome.MeasuredValue)
	assert.True(t, outcome.Activated, "230mm total is above the 200mm threshold")
}

func TestEvaluateTriggers_RainfallExcess_AtThresholdDoesNotFire(t *testing.T) {
	trigger := createTestTrigger(models.TriggerRainfallExcess, 200)
	outcome := evaluateOne(t, trigger, rainfallWindow(100, 100))

	assert.False(t, outcome.Activated, "excess requires strictly above the threshold")
}

// ============================================================================
// TEST SUITE 2: TEMPERATURE TRIGGERS
// ============================================================================

func TestEvaluateTriggers_TemperatureHigh_Fires(t *testing.T) {
	trigger := createTestTrigger(models.TriggerTemperatureHigh, 35)
	outcome := evaluateOne(t, trigger, temperatureWindow(36, 38, 37))

	assert.InDelta(t, 37.0, outcome.MeasuredValue, 0.01, "measured value is the temperature average")
	assert.True(t, outcome.Activated)
}

func TestEvaluateTriggers_TemperatureLow_Fires(t *testing.T) {
	trigger := createTestTrigger(models.TriggerTemperatureLow, 10)
	outcome := evaluateOne(t, trigger, temperatureWindow(8, 6, 7))

	assert.InDelta(t, 7.0, outcome.MeasuredValue, 0.01)
	assert.True(t, outcome.Activated, "7C average is below the 10C threshold")
}

func TestEvaluateTriggers_TemperatureHigh_AtThresholdDoesNotFire(t *testing.T) {
	trigger := createTestTrigger(models.TriggerTemperatureHigh, 35)
	outcome := evaluateOne(t, trigger, temperatureWindow(35, 35))

	assert.False(t, outcome.Activated, "average equal to the threshold does not fire")
}

// ============================================================================
// TEST SUITE 3: CONSECUTIVE DRY DAYS
// ============================================================================

func TestEvaluateTriggers_ConsecutiveDryDays_Fires(t *testing.T) {
	trigger := createTestTrigger(models.TriggerConsecutiveDryDays, 3)
	// Three dry days, a wet day, then two more dry days: longest run is 3.
	outcome := evaluateOne(t, trigger, rainfallWindow(0, 0, 0, 2, 0, 0))

	assert.Equal(t, 3.0, outcome.MeasuredValue, "longest dry run is three days")
	assert.True(t, outcome.Activated, "dry-day triggers fire at the threshold, not strictly beyond")
}

func TestEvaluateTriggers_ConsecutiveDryDays_RunBrokenByRain(t *testing.T) {
	trigger := createTestTrigger(models.TriggerConsecutiveDryDays, 3)
	outcome := evaluateOne(t, trigger, rainfallWindow(0, 0, 2, 0, 0))

	assert.Equal(t, 2.0, outcome.MeasuredValue, "rain resets the run")
	assert.False(t, outcome.Activated)
}

func TestEvaluateTriggers_ConsecutiveDryDays_SubMillimeterCountsAsDry(t *testing.T) {
	trigger := createTestTrigger(models.TriggerConsecutiveDryDays, 3)
	// 0.9mm is under the 1mm dry-day threshold, 1.0mm is not.
	outcome := evaluateOne(t, trigger, rainfallWindow(0.9, 0.5, 0.9, 1.0, 0))

	assert.Equal(t, 3.0, outcome.MeasuredValue)
	assert.True(t, outcome.Activated)
}

// ============================================================================
// TEST SUITE 4: SKIP RULES
// ============================================================================

func TestEvaluateTriggers_SkipsAlreadyTriggered(t *testing.T) {
	trigger := createTestTrigger(models.TriggerRainfallDeficit, 50)
	trigger.IsTriggered = true

	outcomes := EvaluateTriggers(
		[]models.PolicyTrigger{trigger},
		map[uuid.UUID][]models.WeatherObservation{trigger.ID: rainfallWindow(0, 0)},
	)

	assert.Empty(t, outcomes, "a trigger that already fired produces no outcome")
}

func TestEvaluateTriggers_SkipsEmptyWindow(t *testing.T) {
	trigger := createTestTrigger(models.TriggerRainfallDeficit, 50)

	outcomes := EvaluateTriggers(
		[]models.PolicyTrigger{trigger},
		map[uuid.UUID][]models.WeatherObservation{},
	)

	assert.Empty(t, outcomes, "no weather data means no evaluation, not a zero-valued one")
}

func TestEvaluateTriggers_MixedTriggers(t *testing.T) {
	deficit := createTestTrigger(models.TriggerRainfallDeficit, 50)
	fired := createTestTrigger(models.TriggerRainfallExcess, 100)
	fired.IsTriggered = true
	noData := createTestTrigger(models.TriggerTemperatureHigh, 35)

	outcomes := EvaluateTriggers(
		[]models.PolicyTrigger{deficit, fired, noData},
		map[uuid.UUID][]models.WeatherObservation{
			deficit.ID: rainfallWindow(5, 5),
			fired.ID:   rainfallWindow(200),
		},
	)

	assert.Len(t, outcomes, 1, "only the live trigger with data is evaluated")
	assert.Equal(t, deficit.ID, outcomes[0].Trigger.ID)
	assert.True(t, outcomes[0].Activated)
}

// ============================================================================
// TEST SUITE 5: PAYOUT
// ============================================================================

func TestCalculatePayout(t *testing.T) {
	assert.Equal(t, 150000.0, CalculatePayout(500000, 30), "30% of 500,000 KES")
	assert.Equal(t, 500000.0, CalculatePayout(500000, 100), "100% pays the full coverage")
	assert.Equal(t, 0.0, CalculatePayout(500000, 0))
}
