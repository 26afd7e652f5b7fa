package repository

import (
	"errors"
	"strings"

	"github.com/proveo-app/proveo/app/models"
	"gorm.io/gorm"
)

// reviewRepository implements the ReviewRepository interface
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository instance
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// GetByID retrieves a review with its provider
func (r *reviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Provider").First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListPublishedByProvider retrieves the published reviews of a provider,
// newest first
func (r *reviewRepository) ListPublishedByProvider(providerID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.
		Where("provider_id = ? AND status = ?", providerID, models.ReviewStatusPublished).
		Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

// ListByStatus retrieves reviews in a moderation status, newest first
func (r *reviewRepository) ListByStatus(status string, offset, limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("Provider").
		Where("status = ?", status).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&reviews).Error
	return reviews, err
}

// GetByProviderReviewer finds the review an authenticated reviewer left for a
// provider
func (r *reviewRepository) GetByProviderReviewer(providerID, reviewerID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.
		Where("provider_id = ? AND reviewer_id = ?", providerID, reviewerID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// UpsertAnonymous creates or updates the anonymous review identified by
// (provider, lowercased email). The existing row keeps its id; the incoming
// fields overwrite it and the status resets to whatever the caller set.
func (r *reviewRepository) UpsertAnonymous(review *models.Review) error {
	review.ReviewerID = nil
	review.ReviewerEmail = strings.ToLower(strings.TrimSpace(review.ReviewerEmail))

	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Review
		err := tx.
			Where("provider_id = ? AND reviewer_id IS NULL AND reviewer_email = ?",
				review.ProviderID, review.ReviewerEmail).
			First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(review).Error
			}
			return err
		}

		review.ID = existing.ID
		review.CreatedAt = existing.CreatedAt
		return tx.Omit("Provider", "Reviewer").Save(review).Error
	})
}

// UpsertByReviewer creates or updates the review an authenticated reviewer
// holds for a provider.
func (r *reviewRepository) UpsertByReviewer(review *models.Review) error {
	if review.ReviewerID == nil {
		return errors.New("reviewer_id is required")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Review
		err := tx.
			Where("provider_id = ? AND reviewer_id = ?", review.ProviderID, *review.ReviewerID).
			First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(review).Error
			}
			return err
		}

		review.ID = existing.ID
		review.CreatedAt = existing.CreatedAt
		return tx.Omit("Provider", "Reviewer").Save(review).Error
	})
}

// Update persists a review
func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Omit("Provider", "Reviewer").Save(review).Error
}
