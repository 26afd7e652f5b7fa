package repository

import (
	"errors"
	"strings"

	"github.com/proveo-app/proveo/app/models"
	"github.com/proveo-app/proveo/internal/pkg/slugs"
	"gorm.io/gorm"
)

// providerRepository implements the ProviderRepository interface
type providerRepository struct {
	db *gorm.DB
}

// NewProviderRepository creates a new provider repository instance
func NewProviderRepository(db *gorm.DB) ProviderRepository {
	return &providerRepository{db: db}
}

// Create creates a provider profile, generating a unique slug when missing
func (r *providerRepository) Create(provider *models.Provider) error {
	if provider.Slug == "" {
		s, err := slugs.MakeUnique(r.slugBase(provider), r.SlugExists)
		if err != nil {
			return err
		}
		provider.Slug = s
	}
	return r.db.Create(provider).Error
}

func (r *providerRepository) slugBase(provider *models.Provider) string {
	base := provider.DisplayName
	if base == "" {
		base = provider.LegalName
	}
	if base == "" && provider.UserID != 0 {
		var user models.User
		if err := r.db.First(&user, provider.UserID).Error; err == nil {
			if at := strings.Index(user.Email, "@"); at > 0 {
				base = user.Email[:at]
			}
		}
	}
	return base
}

// GetByID retrieves a provider with its subcategories
func (r *providerRepository) GetByID(id uint) (*models.Provider, error) {
	var provider models.Provider
	err := r.db.Preload("Subcategories").Preload("Subcategories.Category").First(&provider, id).Error
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

// GetByUserID retrieves the provider profile owned by a user
func (r *providerRepository) GetByUserID(userID uint) (*models.Provider, error) {
	var provider models.Provider
	err := r.db.Preload("Subcategories").Preload("Subcategories.Category").
		Where("user_id = ?", userID).First(&provider).Error
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

// GetOrCreateByUser returns the user's provider profile, creating an empty
// hidden one on first access.
func (r *providerRepository) GetOrCreateByUser(user *models.User) (*models.Provider, error) {
	provider, err := r.GetByUserID(user.ID)
	if err == nil {
		return provider, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// The principal may have been authenticated against an external identity
	// provider and have no local row yet; the user_id foreign key needs one.
	if err := ensureUserRow(r.db, user); err != nil {
		return nil, err
	}

	created := &models.Provider{UserID: user.ID}
	if err := r.Create(created); err != nil {
		return nil, err
	}
	return created, nil
}

// GetVisibleBySlug retrieves a publicly visible provider by slug
func (r *providerRepository) GetVisibleBySlug(slug string) (*models.Provider, error) {
	var provider models.Provider
	err := r.db.Preload("Subcategories").Preload("Subcategories.Category").
		Where("slug = ? AND is_visible = ?", slug, true).First(&provider).Error
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

// Update persists descriptive profile fields. Derived columns are written with
// their current values too since Save covers the whole row; callers must load
// the row before mutating it.
func (r *providerRepository) Update(provider *models.Provider) error {
	return r.db.Omit("Subcategories").Save(provider).Error
}

// ReplaceSubcategories swaps the provider's subcategory links
func (r *providerRepository) ReplaceSubcategories(provider *models.Provider, subcategories []models.Subcategory) error {
	return r.db.Model(provider).Association("Subcategories").Replace(subcategories)
}

// SlugExists checks whether a provider slug is already taken
func (r *providerRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Provider{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
