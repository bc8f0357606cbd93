package services

import (
	"farm-backend/internal/models"

	"github.com/google/uuid"
)

// dryDayThresholdMM is the rainfall below which a day counts as dry.
const dryDayThresholdMM = 1.0

// TriggerOutcome is the evaluation result for one trigger.
type TriggerOutcome struct {
	Trigger       models.PolicyTrigger
	MeasuredValue float64
	Activated     bool
}

// EvaluateTriggers evaluates each trigger against its own measurement window.
// Triggers that already fired, or whose window holds no readings, are skipped
// entirely and produce no outcome.
func EvaluateTriggers(triggers []models.PolicyTrigger, windows map[uuid.UUID][]models.WeatherObservation) []TriggerOutcome {
	var outcomes []TriggerOutcome

	for _, trigger := range triggers {
		if trigger.IsTriggered {
			continue
		}

		window := windows[trigger.ID]
		if len(window) == 0 {
			continue
		}

		measured, activated := measureTrigger(trigger, window)
		outcomes = append(outcomes, TriggerOutcome{
			Trigger:       trigger,
			MeasuredValue: measured,
			Activated:     activated,
		})
	}

	return outcomes
}

// measureTrigger computes the measured value for a trigger's type and
// compares it against the threshold.
func measureTrigger(trigger models.PolicyTrigger, window []models.WeatherObservation) (float64, bool) {
	switch trigger.TriggerType {
	case models.TriggerRainfallDeficit:
		total := sumRainfall(window)
		return total, total < trigger.ThresholdValue
	case models.TriggerRainfallExcess:
		total := sumRainfall(window)
		return total, total > trigger.ThresholdValue
	case models.TriggerTemperatureHigh:
		avg := avgTemperature(window)
		return avg, avg > trigger.ThresholdValue
	case models.TriggerTemperatureLow:
		avg := avgTemperature(window)
		return avg, avg < trigger.ThresholdValue
	case models.TriggerConsecutiveDryDays:
		run := float64(longestDryRun(window))
		return run, run >= trigger.ThresholdValue
	default:
		return 0, false
	}
}

// CalculatePayout computes the claim amount a fired trigger authorizes.
func CalculatePayout(coverageAmount, payoutPercentage float64) float64 {
	return coverageAmount * payoutPercentage / 100
}

func sumRainfall(window []models.WeatherObservation) float64 {
	var total float64
	for _, obs := range window {
		total += obs.Rainfall
	}
	return total
}

func avgTemperature(window []models.WeatherObservation) float64 {
	if len(window) == 0 {
		return 0
	}
	var total float64
	for _, obs := range window {
		total += obs.TempAvg
	}
	return total / float64(len(window))
}

// longestDryRun finds the longest streak of consecutive days with rainfall
// under the dry-day threshold. The window is expected ordered by date.
func longestDryRun(window []models.WeatherObservation) int {
	longest, current := 0, 0
	for _, obs := range window {
		if obs.Rainfall < dryDayThresholdMM {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}
