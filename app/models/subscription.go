package models

import "time"

const (
	SubscriptionStatusPending  = "PENDING"
	SubscriptionStatusActive   = "ACTIVE"
	SubscriptionStatusCanceled = "CANCELED"
	SubscriptionStatusExpired  = "EXPIRED"
)

const (
	GatewayManual      = "MANUAL"
	GatewayMercadoPago = "MP"
)

// Subscription ties a provider to a plan for one billing period. Gateway
// fields mirror the external preapproval so webhook deliveries can be matched
// back to the local row.
type Subscription struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"not null;index:idx_subscriptions_provider_status_end,priority:1" json:"provider_id"`
	PlanID     uint `gorm:"not null;index" json:"plan_id"`

	Status string `gorm:"type:varchar(20);default:'PENDING';index:idx_subscriptions_provider_status_end,priority:2" json:"status"`

	CurrentPeriodStart *time.Time `gorm:"type:timestamp;default:null" json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `gorm:"type:timestamp;default:null;index:idx_subscriptions_provider_status_end,priority:3" json:"current_period_end,omitempty"`

	AutoRenew bool `gorm:"default:true" json:"auto_renew"`

	Gateway               string `gorm:"type:varchar(20);default:'MANUAL';index:idx_subscriptions_gateway_subid,priority:1" json:"gateway"`
	GatewaySubscriptionID string `gorm:"type:varchar(120);index:idx_subscriptions_gateway_subid,priority:2" json:"gateway_subscription_id"`
	GatewayCheckoutURL    string `gorm:"type:varchar(500)" json:"gateway_checkout_url"`
	GatewayStatus         string `gorm:"type:varchar(40)" json:"gateway_status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Provider Provider `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"-"`
	Plan     Plan     `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

// IsCurrent reports whether the subscription entitles visibility at t:
// ACTIVE and not past its period end (a null period end never expires).
func (s *Subscription) IsCurrent(t time.Time) bool {
	if s.Status != SubscriptionStatusActive {
		return false
	}
	return s.CurrentPeriodEnd == nil || !s.CurrentPeriodEnd.Before(t)
}
