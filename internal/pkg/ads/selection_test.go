package ads

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proveo-app/proveo/app/models"
)

func TestNormalizePlacement(t *testing.T) {
	assert.Equal(t, "HEADER", NormalizePlacement(" header "))
	assert.Equal(t, "LEFT_RAIL", NormalizePlacement("left_rail"))
	assert.Equal(t, "", NormalizePlacement("sidebar"))
	assert.Equal(t, "", NormalizePlacement(""))
}

func TestPickWeighted_Empty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Nil(t, PickWeighted(nil, rng))
}

func TestPickWeighted_SingleBanner(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	banners := []models.AdBanner{{ID: 7, Weight: 3}}

	picked := PickWeighted(banners, rng)
	require.NotNil(t, picked)
	assert.Equal(t, uint(7), picked.ID)
}

func TestPickWeighted_RespectsWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	banners := []models.AdBanner{
		{ID: 1, Weight: 9},
		{ID: 2, Weight: 1},
	}

	counts := map[uint]int{}
	for i := 0; i < 5000; i++ {
		picked := PickWeighted(banners, rng)
		require.NotNil(t, picked)
		counts[picked.ID]++
	}

	// With weights 9:1 the heavy banner should dominate.
	assert.Greater(t, counts[1], counts[2]*4)
	assert.Greater(t, counts[2], 0)
}

func TestPickWeighted_ZeroWeightCountsAsOne(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	banners := []models.AdBanner{
		{ID: 1, Weight: 0},
		{ID: 2, Weight: 0},
	}

	counts := map[uint]int{}
	for i := 0; i < 1000; i++ {
		counts[PickWeighted(banners, rng).ID]++
	}
	assert.Greater(t, counts[1], 0)
	assert.Greater(t, counts[2], 0)
}
