package billing

import (
	"testing"
	"time"

	"github.com/proveo-app/proveo/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository keeps subscriptions in memory and records visibility writes.
type fakeRepository struct {
	subs    map[uint][]models.Subscription
	writes  map[uint]map[string]interface{}
	expired int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		subs:   make(map[uint][]models.Subscription),
		writes: make(map[uint]map[string]interface{}),
	}
}

func (f *fakeRepository) ListCurrentSubscriptions(providerID uint, now time.Time) ([]models.Subscription, error) {
	var current []models.Subscription
	for _, sub := range f.subs[providerID] {
		if sub.IsCurrent(now) {
			current = append(current, sub)
		}
	}
	return current, nil
}

func (f *fakeRepository) UpdateProviderVisibility(providerID uint, fields map[string]interface{}) error {
	f.writes[providerID] = fields
	return nil
}

func (f *fakeRepository) ListDueProviderIDs(now time.Time) ([]uint, error) {
	var ids []uint
	for providerID, subs := range f.subs {
		for _, sub := range subs {
			if sub.Status == models.SubscriptionStatusActive &&
				sub.CurrentPeriodEnd != nil && sub.CurrentPeriodEnd.Before(now) {
				ids = append(ids, providerID)
				break
			}
		}
	}
	return ids, nil
}

func (f *fakeRepository) ExpireDueSubscriptions(now time.Time) (int64, error) {
	for providerID, subs := range f.subs {
		for i := range subs {
			if subs[i].Status == models.SubscriptionStatusActive &&
				subs[i].CurrentPeriodEnd != nil && subs[i].CurrentPeriodEnd.Before(now) {
				subs[i].Status = models.SubscriptionStatusExpired
				f.expired++
			}
		}
		f.subs[providerID] = subs
	}
	return f.expired, nil
}

func TestRecomputeProviderVisibilityWritesHiddenState(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	require.NoError(t, svc.RecomputeProviderVisibility(7))

	write := repo.writes[7]
	require.NotNil(t, write)
	assert.Equal(t, false, write["is_visible"])
	assert.Equal(t, 0, write["plan_tier"])
	assert.Equal(t, "", write["plan_code"])
	assert.Equal(t, false, write["is_featured"])
}

func TestRecomputeProviderVisibilityWritesActiveState(t *testing.T) {
	now := time.Now()
	repo := newFakeRepository()
	repo.subs[7] = []models.Subscription{
		activeSub(2, "SILVER_MONTHLY", tp(now.Add(24*time.Hour)), now),
	}
	svc := NewService(repo)

	require.NoError(t, svc.RecomputeProviderVisibility(7))

	write := repo.writes[7]
	assert.Equal(t, true, write["is_visible"])
	assert.Equal(t, 2, write["plan_tier"])
	assert.Equal(t, "SILVER_MONTHLY", write["plan_code"])
	assert.Equal(t, true, write["is_featured"])
}

func TestRecomputeProviderVisibilityRequiresProviderID(t *testing.T) {
	svc := NewService(newFakeRepository())
	assert.Error(t, svc.RecomputeProviderVisibility(0))
}

func TestExpireDueSubscriptionsSweep(t *testing.T) {
	now := time.Now()
	repo := newFakeRepository()
	// Provider 1: one expired sub -> drops out of listings.
	repo.subs[1] = []models.Subscription{
		activeSub(1, "BASIC_MONTHLY", tp(now.Add(-24*time.Hour)), now.Add(-31*24*time.Hour)),
	}
	// Provider 2: one expired, one still current -> stays visible on tier 3.
	repo.subs[2] = []models.Subscription{
		activeSub(1, "BASIC_MONTHLY", tp(now.Add(-time.Hour)), now.Add(-31*24*time.Hour)),
		activeSub(3, "GOLD_MONTHLY", tp(now.Add(24*time.Hour)), now.Add(-time.Hour)),
	}
	svc := NewService(repo)

	result, err := svc.ExpireDueSubscriptions()
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.ExpiredCount)
	assert.Equal(t, 2, result.ProvidersUpdatedCount)

	assert.Equal(t, false, repo.writes[1]["is_visible"])
	assert.Equal(t, true, repo.writes[2]["is_visible"])
	assert.Equal(t, 3, repo.writes[2]["plan_tier"])
}

func TestRecomputeIsIdempotent(t *testing.T) {
	now := time.Now()
	repo := newFakeRepository()
	repo.subs[5] = []models.Subscription{
		activeSub(3, "GOLD_YEARLY", tp(now.Add(300*24*time.Hour)), now),
	}
	svc := NewService(repo)

	require.NoError(t, svc.RecomputeProviderVisibility(5))
	first := repo.writes[5]
	require.NoError(t, svc.RecomputeProviderVisibility(5))

	assert.Equal(t, first, repo.writes[5])
}
