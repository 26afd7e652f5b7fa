package billing

import (
	"time"

	"github.com/proveo-app/proveo/app/models"
	"gorm.io/gorm"
)

// Repository provides the DB operations used by the visibility service.
type Repository interface {
	ListCurrentSubscriptions(providerID uint, now time.Time) ([]models.Subscription, error)
	UpdateProviderVisibility(providerID uint, fields map[string]interface{}) error
	ListDueProviderIDs(now time.Time) ([]uint, error)
	ExpireDueSubscriptions(now time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ListCurrentSubscriptions(providerID uint, now time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Preload("Plan").
		Where("provider_id = ? AND status = ?", providerID, models.SubscriptionStatusActive).
		Where("current_period_end IS NULL OR current_period_end >= ?", now).
		Find(&subs).Error
	return subs, err
}

func (r *gormRepository) UpdateProviderVisibility(providerID uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Provider{}).Where("id = ?", providerID).
		UpdateColumns(fields).Error
}

func (r *gormRepository) ListDueProviderIDs(now time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Subscription{}).
		Where("status = ? AND current_period_end IS NOT NULL AND current_period_end < ?",
			models.SubscriptionStatusActive, now).
		Distinct().Pluck("provider_id", &ids).Error
	return ids, err
}

func (r *gormRepository) ExpireDueSubscriptions(now time.Time) (int64, error) {
	tx := r.db.Model(&models.Subscription{}).
		Where("status = ? AND current_period_end IS NOT NULL AND current_period_end < ?",
			models.SubscriptionStatusActive, now).
		Update("status", models.SubscriptionStatusExpired)
	return tx.RowsAffected, tx.Error
}
