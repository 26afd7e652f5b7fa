package repository

import (
	"time"

	"github.com/proveo-app/proveo/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for principal accounts. Ensure backs
// the externally-issued-token path: it provisions the local row a JWT subject
// may be missing.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
	Ensure(user *models.User) error
}

// CategoryRepository defines the interface for category-related database operations
type CategoryRepository interface {
	Create(category *models.Category) error
	GetBySlug(slug string) (*models.Category, error)
	GetActive() ([]models.Category, error)
	SlugExists(slug string) (bool, error)
}

// SubcategoryRepository defines the interface for subcategory-related database operations
type SubcategoryRepository interface {
	Create(subcategory *models.Subcategory) error
	GetBySlug(slug string) (*models.Subcategory, error)
	GetActive(categorySlug string) ([]models.Subcategory, error)
	GetByIDs(ids []uint) ([]models.Subcategory, error)
	SlugExists(slug string) (bool, error)
}

// ProviderRepository defines the interface for provider profile operations.
// Derived columns are out of scope here; they belong to the recomputation
// services.
type ProviderRepository interface {
	Create(provider *models.Provider) error
	GetByID(id uint) (*models.Provider, error)
	GetByUserID(userID uint) (*models.Provider, error)
	GetOrCreateByUser(user *models.User) (*models.Provider, error)
	GetVisibleBySlug(slug string) (*models.Provider, error)
	Update(provider *models.Provider) error
	ReplaceSubcategories(provider *models.Provider, subcategories []models.Subcategory) error
	SlugExists(slug string) (bool, error)
}

// PlanRepository defines the interface for plan catalog operations
type PlanRepository interface {
	GetActive() ([]models.Plan, error)
	GetActiveByCode(code string) (*models.Plan, error)
	Create(plan *models.Plan) error
}

// SubscriptionRepository defines the interface for subscription persistence.
type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	Update(sub *models.Subscription) error
	GetByGatewayID(gatewayID string) (*models.Subscription, error)
	GetOpenByProviderPlan(providerID, planID uint) (*models.Subscription, error)
	ListByProvider(providerID uint) ([]models.Subscription, error)
}

// ReviewRepository defines the interface for review persistence. Both upserts
// implement the one-review-per-provider-per-author rule by updating the
// existing row instead of inserting a duplicate.
type ReviewRepository interface {
	GetByID(id uint) (*models.Review, error)
	ListPublishedByProvider(providerID uint) ([]models.Review, error)
	ListByStatus(status string, offset, limit int) ([]models.Review, error)
	GetByProviderReviewer(providerID, reviewerID uint) (*models.Review, error)
	UpsertAnonymous(review *models.Review) error
	UpsertByReviewer(review *models.Review) error
	Update(review *models.Review) error
}

// AdRepository defines the interface for sponsor banner operations
type AdRepository interface {
	GetRunningByPlacement(placement string, now time.Time) ([]models.AdBanner, error)
	GetBannerByID(id uint) (*models.AdBanner, error)
	CreateRequest(req *models.AdRequest) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Category     CategoryRepository
	Subcategory  SubcategoryRepository
	Provider     ProviderRepository
	Plan         PlanRepository
	Subscription SubscriptionRepository
	Review       ReviewRepository
	Ad           AdRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Category:     NewCategoryRepository(db),
		Subcategory:  NewSubcategoryRepository(db),
		Provider:     NewProviderRepository(db),
		Plan:         NewPlanRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Review:       NewReviewRepository(db),
		Ad:           NewAdRepository(db),
	}
}
