package repository

import (
	"github.com/proveo-app/proveo/app/models"
	"github.com/proveo-app/proveo/internal/pkg/slugs"
	"gorm.io/gorm"
)

// subcategoryRepository implements the SubcategoryRepository interface
type subcategoryRepository struct {
	db *gorm.DB
}

// NewSubcategoryRepository creates a new subcategory repository instance
func NewSubcategoryRepository(db *gorm.DB) SubcategoryRepository {
	return &subcategoryRepository{db: db}
}

// Create creates a subcategory; the slug is derived from "<category>-<name>"
// so it stays unique across categories.
func (r *subcategoryRepository) Create(subcategory *models.Subcategory) error {
	if subcategory.Slug == "" {
		var category models.Category
		if err := r.db.First(&category, subcategory.CategoryID).Error; err != nil {
			return err
		}
		base := category.Slug
		if base == "" {
			base = slugs.Make(category.Name)
		}
		s, err := slugs.MakeUnique(base+"-"+subcategory.Name, r.SlugExists)
		if err != nil {
			return err
		}
		subcategory.Slug = s
	}
	return r.db.Create(subcategory).Error
}

// GetBySlug retrieves a subcategory by its slug, with its category
func (r *subcategoryRepository) GetBySlug(slug string) (*models.Subcategory, error) {
	var subcategory models.Subcategory
	err := r.db.Preload("Category").Where("slug = ?", slug).First(&subcategory).Error
	if err != nil {
		return nil, err
	}
	return &subcategory, nil
}

// GetActive retrieves active subcategories of active categories, optionally
// restricted to one category slug, ordered by category name then name.
func (r *subcategoryRepository) GetActive(categorySlug string) ([]models.Subcategory, error) {
	var subcategories []models.Subcategory
	q := r.db.
		Joins("JOIN categories ON categories.id = subcategories.category_id AND categories.active = ?", true).
		Preload("Category").
		Where("subcategories.active = ?", true)
	if categorySlug != "" {
		q = q.Where("categories.slug = ?", categorySlug)
	}
	err := q.Order("categories.name ASC, subcategories.name ASC").Find(&subcategories).Error
	return subcategories, err
}

// GetByIDs retrieves active subcategories matching the given ids
func (r *subcategoryRepository) GetByIDs(ids []uint) ([]models.Subcategory, error) {
	var subcategories []models.Subcategory
	if len(ids) == 0 {
		return subcategories, nil
	}
	err := r.db.Where("id IN ? AND active = ?", ids, true).Find(&subcategories).Error
	return subcategories, err
}

// SlugExists checks whether a subcategory slug is already taken
func (r *subcategoryRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subcategory{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
