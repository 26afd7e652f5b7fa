package repository

import (
	"github.com/proveo-app/proveo/app/models"
	"gorm.io/gorm"
)

// planRepository implements the PlanRepository interface
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository instance
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// GetActive retrieves active plans ordered by tier then billing interval
func (r *planRepository) GetActive() ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.Where("active = ?", true).
		Order("tier ASC, interval_months ASC").Find(&plans).Error
	return plans, err
}

// GetActiveByCode retrieves one active plan by its code
func (r *planRepository) GetActiveByCode(code string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.Where("code = ? AND active = ?", code, true).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Create creates a plan catalog entry
func (r *planRepository) Create(plan *models.Plan) error {
	return r.db.Create(plan).Error
}
