package reviews

import (
	"errors"
	"strconv"

	"github.com/proveo-app/proveo/app/models"
	"github.com/proveo-app/proveo/internal/pkg/env"
	"gorm.io/gorm"
)

// Service is the rating recomputation engine. It is the single writer of the
// provider columns rating_avg, rating_count and ranking_score.
type Service struct {
	repo      Repository
	smoothing int
}

// NewService creates a rating service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, smoothing: smoothingFromEnv()}
}

// NewServiceFromDB creates a rating service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

func smoothingFromEnv() int {
	if m, err := strconv.Atoi(env.GetEnv("RATING_SMOOTHING_M", "")); err == nil && m >= 0 {
		return m
	}
	return DefaultSmoothing
}

// RecomputeProviderRating rereads the provider's published reviews and the
// global published average, then rewrites the three derived rating columns.
// Pure derivation over current store state: no qualifying reviews produce
// zero aggregates scored at the global prior.
func (s *Service) RecomputeProviderRating(providerID uint) error {
	if providerID == 0 {
		return errors.New("provider_id is required")
	}

	provider, err := s.repo.ProviderPublishedAggregate(providerID)
	if err != nil {
		return err
	}
	global, err := s.repo.GlobalPublishedAggregate()
	if err != nil {
		return err
	}

	score := BayesianScore(provider.Avg, provider.Count, global.Avg, s.smoothing)

	return s.repo.UpdateProviderRating(providerID,
		models.ProviderDerivedRating(provider.Avg, provider.Count, score))
}
