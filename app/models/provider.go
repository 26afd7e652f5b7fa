package models

import "time"

const (
	// Plan tiers stored on the provider after visibility recomputation.
	PlanTierNone   = 0
	PlanTierBasic  = 1
	PlanTierSilver = 2
	PlanTierGold   = 3
)

// Provider is the public directory profile of a service provider.
//
// IsVisible, PlanTier, PlanCode, IsFeatured, RatingAvg, RatingCount and
// RankingScore are denormalized read-model fields. They are written only by
// the billing and reviews recomputation services, never from user input.
type Provider struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Slug   string `gorm:"uniqueIndex;type:varchar(200)" json:"slug"`

	DisplayName string `gorm:"type:varchar(140)" json:"display_name" validate:"max=140"`
	LegalName   string `gorm:"type:varchar(180)" json:"legal_name" validate:"max=180"`
	TaxID       string `gorm:"type:varchar(20)" json:"tax_id" validate:"max=20"`
	Description string `gorm:"type:text" json:"description"`

	Phone       string `gorm:"type:varchar(50)" json:"phone" validate:"max=50"`
	Whatsapp    string `gorm:"type:varchar(50)" json:"whatsapp" validate:"max=50"`
	PublicEmail string `gorm:"type:varchar(200)" json:"public_email" validate:"omitempty,email"`
	Website     string `gorm:"type:varchar(255)" json:"website" validate:"omitempty,url"`

	Province string `gorm:"type:varchar(80);index:idx_providers_vis_location,priority:2" json:"province" validate:"max=80"`
	City     string `gorm:"type:varchar(80);index:idx_providers_vis_location,priority:3" json:"city" validate:"max=80"`
	Address  string `gorm:"type:varchar(200)" json:"address" validate:"max=200"`

	// Opaque blob reference managed by the storage package.
	LogoKey string `gorm:"type:varchar(255)" json:"logo_key,omitempty"`

	Subcategories []Subcategory `gorm:"many2many:provider_subcategories" json:"subcategories,omitempty"`

	// Derived from subscriptions.
	IsVisible  bool   `gorm:"default:false;index:idx_providers_vis_location,priority:1;index:idx_providers_vis_tier_score,priority:1" json:"is_visible"`
	PlanTier   int    `gorm:"default:0;index:idx_providers_vis_tier_score,priority:2" json:"plan_tier"`
	PlanCode   string `gorm:"type:varchar(40)" json:"plan_code"`
	IsFeatured bool   `gorm:"default:false" json:"is_featured"`

	// Derived from published reviews.
	RatingAvg    float64 `gorm:"default:0" json:"rating_avg"`
	RatingCount  int     `gorm:"default:0" json:"rating_count"`
	RankingScore float64 `gorm:"default:0;index:idx_providers_vis_tier_score,priority:3" json:"ranking_score"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ProviderDerivedVisibility is the column set owned by the visibility engine.
func ProviderDerivedVisibility(visible bool, tier int, code string) map[string]interface{} {
	return map[string]interface{}{
		"is_visible":  visible,
		"plan_tier":   tier,
		"plan_code":   code,
		"is_featured": visible && tier >= PlanTierSilver,
	}
}

// ProviderDerivedRating is the column set owned by the rating engine.
func ProviderDerivedRating(avg float64, count int, score float64) map[string]interface{} {
	return map[string]interface{}{
		"rating_avg":    avg,
		"rating_count":  count,
		"ranking_score": score,
	}
}
