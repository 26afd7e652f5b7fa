package repository

import (
	"github.com/proveo-app/proveo/app/models"
	"github.com/proveo-app/proveo/internal/pkg/slugs"
	"gorm.io/gorm"
)

// categoryRepository implements the CategoryRepository interface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create creates a category, generating its slug from the name when empty
func (r *categoryRepository) Create(category *models.Category) error {
	if category.Slug == "" {
		s, err := slugs.MakeUnique(category.Name, r.SlugExists)
		if err != nil {
			return err
		}
		category.Slug = s
	}
	return r.db.Create(category).Error
}

// GetBySlug retrieves a category by its slug
func (r *categoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("slug = ?", slug).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetActive retrieves all active categories ordered by name
func (r *categoryRepository) GetActive() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("active = ?", true).Order("name ASC").Find(&categories).Error
	return categories, err
}

// SlugExists checks whether a category slug is already taken
func (r *categoryRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
