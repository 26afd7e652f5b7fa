package models

import "time"

// Plan is a catalog entry for a paid visibility tier.
// Codes follow the BASIC_MONTHLY / SILVER_YEARLY naming convention.
type Plan struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Code           string    `gorm:"uniqueIndex;type:varchar(40)" json:"code" validate:"required,max=40"`
	Name           string    `gorm:"type:varchar(120)" json:"name" validate:"required,max=120"`
	Tier           int       `gorm:"default:1" json:"tier" validate:"min=1,max=3"`
	IntervalMonths int       `gorm:"default:1" json:"interval_months" validate:"min=1,max=12"`
	PriceCents     int       `gorm:"default:0" json:"price_cents" validate:"min=0"`
	Currency       string    `gorm:"type:varchar(10);default:'ARS'" json:"currency"`
	Active         bool      `gorm:"default:true;index" json:"active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
