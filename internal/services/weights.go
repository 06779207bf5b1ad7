package services

import (
	"fmt"
	"math"
)

// WeightCategories is the fixed set of scoring categories, in prompt order.
var WeightCategories = []string{"skills", "experience", "education", "projects", "cultural_fit"}

// DefaultWeights returns the scoring weights used when the caller supplies
// none. They sum to 1.0.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		"skills":       0.30,
		"experience":   0.25,
		"education":    0.15,
		"projects":     0.15,
		"cultural_fit": 0.15,
	}
}

// NormalizeWeights validates a caller-supplied weight override. Unknown
// categories and weights outside [0,1] are rejected; a sum that is not ~1.0
// is normalized. nil falls back to the defaults. The returned map always
// covers every category.
func NormalizeWeights(weights map[string]float64) (map[string]float64, error) {
	if weights == nil {
		return DefaultWeights(), nil
	}

	known := make(map[string]bool, len(WeightCategories))
	for _, category := range WeightCategories {
		known[category] = true
	}

	for category, weight := range weights {
		if !known[category] {
			return nil, fmt.Errorf("unknown weight category: %q", category)
		}
		if weight < 0 || weight > 1 {
			return nil, fmt.Errorf("weight for %q must be between 0 and 1, got %v", category, weight)
		}
	}

	sum := 0.0
	for _, weight := range weights {
		sum += weight
	}
	if sum == 0 {
		return nil, fmt.Errorf("weights must not all be zero")
	}

	normalized := make(map[string]float64, len(WeightCategories))
	for _, category := range WeightCategories {
		normalized[category] = weights[category]
	}
	if math.Abs(sum-1.0) > 0.01 {
		for category := range normalized {
			normalized[category] /= sum
		}
	}

	return normalized, nil
}
