package billing

import (
	"time"

	"github.com/proveo-app/proveo/app/models"
)

// DerivedVisibility is the outcome of recomputing a provider's visibility
// from its subscriptions.
type DerivedVisibility struct {
	IsVisible  bool
	PlanTier   int
	PlanCode   string
	IsFeatured bool
}

// DeriveVisibility computes the derived visibility fields from the
// subscriptions that are current at now. It is a pure derivation: an empty
// qualifying set yields the hidden zero state, never an error.
//
// The winning plan code comes from the subscription with the highest plan
// tier; ties are broken by the latest current_period_end (a null period end
// counts as never-expiring and sorts latest), then by the latest created_at.
func DeriveVisibility(subs []models.Subscription, now time.Time) DerivedVisibility {
	var best *models.Subscription
	maxTier := 0

	for i := range subs {
		sub := &subs[i]
		if !sub.IsCurrent(now) {
			continue
		}
		if sub.Plan.Tier > maxTier {
			maxTier = sub.Plan.Tier
			best = sub
			continue
		}
		if sub.Plan.Tier == maxTier && best != nil && laterSubscription(sub, best) {
			best = sub
		}
	}

	if best == nil {
		return DerivedVisibility{}
	}

	return DerivedVisibility{
		IsVisible:  true,
		PlanTier:   maxTier,
		PlanCode:   best.Plan.Code,
		IsFeatured: maxTier >= models.PlanTierSilver,
	}
}

// laterSubscription reports whether a should win the tie-break against b.
func laterSubscription(a, b *models.Subscription) bool {
	switch {
	case a.CurrentPeriodEnd == nil && b.CurrentPeriodEnd != nil:
		return true
	case a.CurrentPeriodEnd != nil && b.CurrentPeriodEnd == nil:
		return false
	case a.CurrentPeriodEnd != nil && b.CurrentPeriodEnd != nil &&
		!a.CurrentPeriodEnd.Equal(*b.CurrentPeriodEnd):
		return a.CurrentPeriodEnd.After(*b.CurrentPeriodEnd)
	default:
		return a.CreatedAt.After(b.CreatedAt)
	}
}
