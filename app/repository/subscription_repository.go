package repository

import (
	"github.com/proveo-app/proveo/app/models"
	"gorm.io/gorm"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create creates a subscription row
func (r *subscriptionRepository) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

// Update persists the subscription
func (r *subscriptionRepository) Update(sub *models.Subscription) error {
	return r.db.Omit("Provider", "Plan").Save(sub).Error
}

// GetByGatewayID resolves a gateway preapproval id to the newest local row
func (r *subscriptionRepository) GetByGatewayID(gatewayID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Preload("Plan").
		Where("gateway_subscription_id = ?", gatewayID).
		Order("id DESC").First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetOpenByProviderPlan finds the newest PENDING or ACTIVE subscription of a
// provider for a given plan, used to avoid duplicate checkouts.
func (r *subscriptionRepository) GetOpenByProviderPlan(providerID, planID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Preload("Plan").
		Where("provider_id = ? AND plan_id = ? AND status IN ?",
			providerID, planID,
			[]string{models.SubscriptionStatusPending, models.SubscriptionStatusActive}).
		Order("created_at DESC").First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListByProvider retrieves a provider's subscriptions, newest first
func (r *subscriptionRepository) ListByProvider(providerID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Preload("Plan").
		Where("provider_id = ?", providerID).
		Order("created_at DESC").Find(&subs).Error
	return subs, err
}
