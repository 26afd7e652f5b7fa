package repository

import (
	"time"

	"github.com/proveo-app/proveo/app/models"
	"gorm.io/gorm"
)

// adRepository implements the AdRepository interface
type adRepository struct {
	db *gorm.DB
}

// NewAdRepository creates a new ad repository instance
func NewAdRepository(db *gorm.DB) AdRepository {
	return &adRepository{db: db}
}

// GetRunningByPlacement retrieves active banners currently inside their
// scheduling window for a placement
func (r *adRepository) GetRunningByPlacement(placement string, now time.Time) ([]models.AdBanner, error) {
	var banners []models.AdBanner
	err := r.db.
		Where("placement = ? AND active = ?", placement, true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Order("weight DESC, updated_at DESC").
		Find(&banners).Error
	return banners, err
}

// GetBannerByID retrieves a banner by id
func (r *adRepository) GetBannerByID(id uint) (*models.AdBanner, error) {
	var banner models.AdBanner
	err := r.db.First(&banner, id).Error
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

// CreateRequest stores a public ad request
func (r *adRepository) CreateRequest(req *models.AdRequest) error {
	return r.db.Create(req).Error
}
