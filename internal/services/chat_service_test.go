package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TEST SUITE: KEYWORD MATCHING
// ============================================================================

func TestAnswerQuery_Maize(t *testing.T) {
	response := AnswerQuery("What fertilizer should I use for my MAIZE crop?")

	assert.Contains(t, response, "pH 5.5-7.0", "maize questions get the soil guidance")
}

func TestAnswerQuery_PestsAndDiseases(t *testing.T) {
	assert.Contains(t, AnswerQuery("I have a pest problem on my beans"),
		"integrated pest management")
	assert.Contains(t, AnswerQuery("My tomatoes show signs of disease"),
		"integrated pest management", "disease questions share the pest response")
}

func TestAnswerQuery_Irrigation(t *testing.T) {
	assert.Contains(t, AnswerQuery("How much water do my crops need?"),
		"Drip irrigation")
	assert.Contains(t, AnswerQuery("Is irrigation worth it for kale?"),
		"Drip irrigation")
}

func TestAnswerQuery_MaizeWinsOverPest(t *testing.T) {
	response := AnswerQuery("pests are eating my maize")

	assert.Contains(t, response, "pH 5.5-7.0", "the maize rule is checked first")
}

func TestAnswerQuery_Fallback(t *testing.T) {
	response := AnswerQuery("When should I plant sorghum in Kitui?")

	assert.Contains(t, response, "AI Agronomist",
		"unmatched questions fall through to the generic response")
}
