package models

import "time"

// Category is a top-level directory rubric ("plomeria", "electricidad", ...).
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;type:varchar(120)" json:"name" validate:"required,min=2,max=120"`
	Slug      string    `gorm:"uniqueIndex;type:varchar(140)" json:"slug"`
	Active    bool      `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
}
