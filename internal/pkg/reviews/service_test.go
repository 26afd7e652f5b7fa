package reviews

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository serves canned aggregates and records rating writes.
type fakeRepository struct {
	provider map[uint]RatingAggregate
	global   RatingAggregate
	writes   map[uint]map[string]interface{}
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		provider: make(map[uint]RatingAggregate),
		writes:   make(map[uint]map[string]interface{}),
	}
}

func (f *fakeRepository) ProviderPublishedAggregate(providerID uint) (RatingAggregate, error) {
	return f.provider[providerID], nil
}

func (f *fakeRepository) GlobalPublishedAggregate() (RatingAggregate, error) {
	return f.global, nil
}

func (f *fakeRepository) UpdateProviderRating(providerID uint, fields map[string]interface{}) error {
	f.writes[providerID] = fields
	return nil
}

func newService(repo Repository) *Service {
	return &Service{repo: repo, smoothing: DefaultSmoothing}
}

func TestRecomputeProviderRatingWritesAggregates(t *testing.T) {
	repo := newFakeRepository()
	repo.provider[3] = RatingAggregate{Avg: 4.75, Count: 4}
	repo.global = RatingAggregate{Avg: 3.8, Count: 40}

	require.NoError(t, newService(repo).RecomputeProviderRating(3))

	write := repo.writes[3]
	require.NotNil(t, write)
	assert.Equal(t, 4.75, write["rating_avg"])
	assert.Equal(t, 4, write["rating_count"])
	assert.InDelta(t, 4.222, write["ranking_score"].(float64), 0.001)
}

func TestRecomputeProviderRatingNoReviews(t *testing.T) {
	repo := newFakeRepository()
	repo.global = RatingAggregate{Avg: 3.8, Count: 12}

	require.NoError(t, newService(repo).RecomputeProviderRating(9))

	write := repo.writes[9]
	assert.Equal(t, 0.0, write["rating_avg"])
	assert.Equal(t, 0, write["rating_count"])
	// With no own reviews the score falls back to the global prior.
	assert.InDelta(t, 3.8, write["ranking_score"].(float64), 1e-9)
}

func TestRecomputeProviderRatingEmptyStore(t *testing.T) {
	repo := newFakeRepository()

	require.NoError(t, newService(repo).RecomputeProviderRating(9))

	write := repo.writes[9]
	assert.Equal(t, 0.0, write["ranking_score"])
}

func TestRecomputeProviderRatingIdempotent(t *testing.T) {
	repo := newFakeRepository()
	repo.provider[2] = RatingAggregate{Avg: 4.2, Count: 10}
	repo.global = RatingAggregate{Avg: 3.9, Count: 100}
	svc := newService(repo)

	require.NoError(t, svc.RecomputeProviderRating(2))
	first := repo.writes[2]
	require.NoError(t, svc.RecomputeProviderRating(2))

	assert.Equal(t, first, repo.writes[2])
}

func TestRecomputeProviderRatingRequiresProviderID(t *testing.T) {
	assert.Error(t, newService(newFakeRepository()).RecomputeProviderRating(0))
}
