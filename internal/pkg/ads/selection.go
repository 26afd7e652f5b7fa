package ads

import (
	"math/rand"
	"strings"

	"github.com/proveo-app/proveo/app/models"
)

var validPlacements = map[string]bool{
	models.AdPlacementHeader:    true,
	models.AdPlacementFooter:    true,
	models.AdPlacementLeftRail:  true,
	models.AdPlacementRightRail: true,
}

// NormalizePlacement uppercases and validates a placement name. The empty
// string return means the placement is unknown.
func NormalizePlacement(raw string) string {
	placement := strings.ToUpper(strings.TrimSpace(raw))
	if !validPlacements[placement] {
		return ""
	}
	return placement
}

// PickWeighted selects one banner at random, with probability proportional to
// its weight. Weights below one count as one so a misconfigured banner can
// still serve. Returns nil for an empty slice.
func PickWeighted(banners []models.AdBanner, rng *rand.Rand) *models.AdBanner {
	if len(banners) == 0 {
		return nil
	}

	total := 0
	for i := range banners {
		total += effectiveWeight(banners[i].Weight)
	}

	n := rng.Intn(total)
	for i := range banners {
		n -= effectiveWeight(banners[i].Weight)
		if n < 0 {
			return &banners[i]
		}
	}
	return &banners[len(banners)-1]
}

func effectiveWeight(w int) int {
	if w < 1 {
		return 1
	}
	return w
}
