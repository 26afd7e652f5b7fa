package models

import "time"

// Subcategory refines a Category; providers link to subcategories, never to
// categories directly.
type Subcategory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CategoryID uint      `gorm:"not null;index;uniqueIndex:ux_subcategories_category_name,priority:1" json:"category_id"`
	Name       string    `gorm:"type:varchar(120);not null;uniqueIndex:ux_subcategories_category_name,priority:2" json:"name" validate:"required,min=2,max=120"`
	Slug       string    `gorm:"uniqueIndex;type:varchar(180)" json:"slug"`
	Active     bool      `gorm:"default:true;index" json:"active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
