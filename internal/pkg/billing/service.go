package billing

import (
	"errors"
	"time"

	"github.com/proveo-app/proveo/app/models"
	"gorm.io/gorm"
)

// Service is the visibility recomputation engine. It is the single writer of
// the provider columns is_visible, plan_tier, plan_code and is_featured.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a billing service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// SweepResult reports what a subscription expiry sweep did.
type SweepResult struct {
	ExpiredCount          int64 `json:"expired_count"`
	ProvidersUpdatedCount int   `json:"providers_updated_count"`
}

// RecomputeProviderVisibility rereads the provider's current subscriptions
// and rewrites the four derived columns. Called synchronously by every
// subscription write path after a successful commit; safe to call repeatedly.
func (s *Service) RecomputeProviderVisibility(providerID uint) error {
	if providerID == 0 {
		return errors.New("provider_id is required")
	}
	now := s.now()

	subs, err := s.repo.ListCurrentSubscriptions(providerID, now)
	if err != nil {
		return err
	}

	derived := DeriveVisibility(subs, now)
	return s.repo.UpdateProviderVisibility(providerID,
		models.ProviderDerivedVisibility(derived.IsVisible, derived.PlanTier, derived.PlanCode))
}

// ExpireDueSubscriptions marks every ACTIVE subscription whose period end has
// passed as EXPIRED, then recomputes visibility once per affected provider.
// Meant to run from an external scheduler (cron) or the staff maintenance
// endpoint.
func (s *Service) ExpireDueSubscriptions() (*SweepResult, error) {
	now := s.now()

	providerIDs, err := s.repo.ListDueProviderIDs(now)
	if err != nil {
		return nil, err
	}

	expired, err := s.repo.ExpireDueSubscriptions(now)
	if err != nil {
		return nil, err
	}

	for _, id := range providerIDs {
		if err := s.RecomputeProviderVisibility(id); err != nil {
			return nil, err
		}
	}

	return &SweepResult{
		ExpiredCount:          expired,
		ProvidersUpdatedCount: len(providerIDs),
	}, nil
}
