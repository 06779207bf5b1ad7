package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, weight := range DefaultWeights() {
		sum += weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	for _, category := range WeightCategories {
		assert.Contains(t, DefaultWeights(), category)
	}
}

func TestNormalizeWeightsNilFallsBackToDefaults(t *testing.T) {
	weights, err := NormalizeWeights(nil)

	require.NoError(t, err)
	assert.Equal(t, DefaultWeights(), weights)
}

func TestNormalizeWeightsPassthrough(t *testing.T) {
	weights, err := NormalizeWeights(map[string]float64{
		"skills":       0.40,
		"experience":   0.30,
		"education":    0.10,
		"projects":     0.10,
		"cultural_fit": 0.10,
	})

	require.NoError(t, err)
	assert.InDelta(t, 0.40, weights["skills"], 1e-9)
	assert.InDelta(t, 0.10, weights["cultural_fit"], 1e-9)
}

func TestNormalizeWeightsRejectsUnknownCategory(t *testing.T) {
	_, err := NormalizeWeights(map[string]float64{"certifications": 1.0})

	assert.ErrorContains(t, err, "unknown weight category")
}

func TestNormalizeWeightsRejectsOutOfRange(t *testing.T) {
	_, err := NormalizeWeights(map[string]float64{"skills": 1.5})
	assert.ErrorContains(t, err, "between 0 and 1")

	_, err = NormalizeWeights(map[string]float64{"skills": -0.1})
	assert.ErrorContains(t, err, "between 0 and 1")
}

func TestNormalizeWeightsRejectsAllZero(t *testing.T) {
	_, err := NormalizeWeights(map[string]float64{"skills": 0, "experience": 0})

	assert.ErrorContains(t, err, "must not all be zero")
}

func TestNormalizeWeightsScalesToUnitSum(t *testing.T) {
	weights, err := NormalizeWeights(map[string]float64{
		"skills":     0.60,
		"experience": 0.60,
	})

	require.NoError(t, err)
	assert.InDelta(t, 0.5, weights["skills"], 1e-9)
	assert.InDelta(t, 0.5, weights["experience"], 1e-9)
	assert.InDelta(t, 0.0, weights["education"], 1e-9)

	sum := 0.0
	for _, weight := range weights {
		sum += weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}
