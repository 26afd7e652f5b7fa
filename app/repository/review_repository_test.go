package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/proveo-app/proveo/app/models"
)

func seedReviewProvider(t *testing.T, db *gorm.DB) *models.Provider {
	t.Helper()
	owner := &models.User{ID: 100, Email: "dueno@proveo.test", Role: models.RoleProvider}
	require.NoError(t, db.Create(owner).Error)
	provider := &models.Provider{UserID: owner.ID, Slug: "plomeria-test"}
	require.NoError(t, db.Create(provider).Error)
	return provider
}

func TestUpsertByReviewerWithMirroredPrincipal(t *testing.T) {
	db := setupTestDB(t)
	provider := seedReviewProvider(t, db)

	// An externally authenticated admin leaves a review; the reviewer row
	// must be mirrored first so the foreign key resolves.
	reviewerID := uint(42)
	err := NewUserRepository(db).Ensure(&models.User{
		ID: reviewerID, Email: "admin@consorcio.test", Role: models.RoleAdmin,
	})
	require.NoError(t, err)

	repo := NewReviewRepository(db)
	review := &models.Review{
		ProviderID: provider.ID,
		ReviewerID: &reviewerID,
		Rating:     4,
		Comment:    "Cumplen en tiempo y forma",
		Status:     models.ReviewStatusPending,
		Source:     models.ReviewSourceAdmin,
	}
	require.NoError(t, repo.UpsertByReviewer(review))

	stored, err := repo.GetByProviderReviewer(provider.ID, reviewerID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Rating)
}

func TestUpsertByReviewerUpdatesExistingRow(t *testing.T) {
	db := setupTestDB(t)
	provider := seedReviewProvider(t, db)

	reviewerID := uint(5)
	require.NoError(t, NewUserRepository(db).Ensure(&models.User{
		ID: reviewerID, Email: "admin2@consorcio.test", Role: models.RoleAdmin,
	}))

	repo := NewReviewRepository(db)
	first := &models.Review{
		ProviderID: provider.ID, ReviewerID: &reviewerID,
		Rating: 2, Status: models.ReviewStatusPending, Source: models.ReviewSourceAdmin,
	}
	require.NoError(t, repo.UpsertByReviewer(first))

	second := &models.Review{
		ProviderID: provider.ID, ReviewerID: &reviewerID,
		Rating: 5, Status: models.ReviewStatusPending, Source: models.ReviewSourceAdmin,
	}
	require.NoError(t, repo.UpsertByReviewer(second))
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.Review{}).Where("provider_id = ?", provider.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpsertAnonymousKeysOnLoweredEmail(t *testing.T) {
	db := setupTestDB(t)
	provider := seedReviewProvider(t, db)
	repo := NewReviewRepository(db)

	first := &models.Review{
		ProviderID: provider.ID, ReviewerEmail: "Vecino@Mail.test",
		Rating: 3, Status: models.ReviewStatusPending, Source: models.ReviewSourcePublic,
	}
	require.NoError(t, repo.UpsertAnonymous(first))

	second := &models.Review{
		ProviderID: provider.ID, ReviewerEmail: "vecino@mail.test",
		Rating: 5, Status: models.ReviewStatusPending, Source: models.ReviewSourcePublic,
	}
	require.NoError(t, repo.UpsertAnonymous(second))

	var count int64
	db.Model(&models.Review{}).Where("provider_id = ?", provider.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
