package handlers

import (
	"encoding/json"
	"testing"

	"farm-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST SUITE: TRIGGER EVALUATION RESPONSE
// ============================================================================

func TestEvaluationResult_NothingFired(t *testing.T) {
	policyID := uuid.New()

	result := evaluationResult(policyID, nil)

	assert.Equal(t, 0, result["fired"])
	assert.Equal(t, "no triggers activated", result["message"])

	payload, err := json.Marshal(result)
	assert.NoError(t, err)
	assert.Contains(t, string(payload), `"activations":[]`, "an empty evaluation must not serialize as null")
}

func TestEvaluationResult_WithActivations(t *testing.T) {
	policyID := uuid.New()
	activations := []models.TriggerActivation{
		{
			TriggerID:     uuid.New(),
			TriggerType:   models.TriggerRainfallDeficit,
			MeasuredValue: 12,
			Threshold:     50,
			ClaimAmount:   150000,
		},
	}

	result := evaluationResult(policyID, activations)

	assert.Equal(t, 1, result["fired"])
	assert.Equal(t, activations, result["activations"])
	assert.NotContains(t, result, "message", "the no-op message only appears when nothing fired")
}
