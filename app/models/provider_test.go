package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderDerivedVisibilityColumns(t *testing.T) {
	write := ProviderDerivedVisibility(true, PlanTierSilver, "SILVER_MONTHLY")
	assert.Equal(t, map[string]interface{}{
		"is_visible":  true,
		"plan_tier":   PlanTierSilver,
		"plan_code":   "SILVER_MONTHLY",
		"is_featured": true,
	}, write)
}

func TestProviderDerivedVisibilityBasicTierNotFeatured(t *testing.T) {
	write := ProviderDerivedVisibility(true, 1, "BASIC_MONTHLY")
	assert.Equal(t, false, write["is_featured"])
}

func TestProviderDerivedVisibilityHiddenClearsEverything(t *testing.T) {
	write := ProviderDerivedVisibility(false, 0, "")
	assert.Equal(t, false, write["is_visible"])
	assert.Equal(t, 0, write["plan_tier"])
	assert.Equal(t, "", write["plan_code"])
	assert.Equal(t, false, write["is_featured"])
}

func TestProviderDerivedRatingColumns(t *testing.T) {
	write := ProviderDerivedRating(4.5, 12, 4.21)
	assert.Equal(t, map[string]interface{}{
		"rating_avg":    4.5,
		"rating_count":  12,
		"ranking_score": 4.21,
	}, write)
}
