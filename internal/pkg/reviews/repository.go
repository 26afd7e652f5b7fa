package reviews

import (
	"github.com/proveo-app/proveo/app/models"
	"gorm.io/gorm"
)

// RatingAggregate is the (average, count) pair over a set of published
// reviews.
type RatingAggregate struct {
	Avg   float64
	Count int
}

// Repository provides the DB operations used by the rating service.
type Repository interface {
	ProviderPublishedAggregate(providerID uint) (RatingAggregate, error)
	GlobalPublishedAggregate() (RatingAggregate, error)
	UpdateProviderRating(providerID uint, fields map[string]interface{}) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a reviews repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

type ratingRow struct {
	Avg   *float64
	Count int64
}

func (r *gormRepository) ProviderPublishedAggregate(providerID uint) (RatingAggregate, error) {
	var row ratingRow
	err := r.db.Model(&models.Review{}).
		Select("AVG(rating) AS avg, COUNT(id) AS count").
		Where("provider_id = ? AND status = ?", providerID, models.ReviewStatusPublished).
		Scan(&row).Error
	return toAggregate(row), err
}

func (r *gormRepository) GlobalPublishedAggregate() (RatingAggregate, error) {
	var row ratingRow
	err := r.db.Model(&models.Review{}).
		Select("AVG(rating) AS avg, COUNT(id) AS count").
		Where("status = ?", models.ReviewStatusPublished).
		Scan(&row).Error
	return toAggregate(row), err
}

func (r *gormRepository) UpdateProviderRating(providerID uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Provider{}).Where("id = ?", providerID).
		UpdateColumns(fields).Error
}

func toAggregate(row ratingRow) RatingAggregate {
	agg := RatingAggregate{Count: int(row.Count)}
	if row.Avg != nil {
		agg.Avg = *row.Avg
	}
	return agg
}
