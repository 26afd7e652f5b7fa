package models

import "time"

const (
	ReviewStatusPublished = "PUBLISHED"
	ReviewStatusPending   = "PENDING"
	ReviewStatusHidden    = "HIDDEN"
)

const (
	ReviewSourceAdmin  = "ADMIN"
	ReviewSourcePublic = "PUBLIC"
)

// Review is a rating left for a provider, either by an authenticated reviewer
// (ReviewerID set) or anonymously by email. Uniqueness is one review per
// provider per reviewer, or per provider per email when anonymous; writes use
// upsert semantics so a repeat submission updates the earlier row.
// Only PUBLISHED reviews feed the provider's rating aggregates.
type Review struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	ProviderID uint  `gorm:"not null;index:idx_reviews_provider_status_created,priority:1" json:"provider_id"`
	ReviewerID *uint `gorm:"index" json:"reviewer_id,omitempty"`

	ReviewerName  string `gorm:"type:varchar(120)" json:"reviewer_name"`
	ReviewerEmail string `gorm:"type:varchar(200)" json:"reviewer_email"`
	ReviewerPhone string `gorm:"type:varchar(50)" json:"reviewer_phone"`
	ReviewerOrg   string `gorm:"type:varchar(140)" json:"reviewer_org"`

	Source string `gorm:"type:varchar(20);default:'ADMIN'" json:"source"`

	Rating  int    `gorm:"not null" json:"rating" validate:"min=1,max=5"`
	Comment string `gorm:"type:text" json:"comment"`
	Status  string `gorm:"type:varchar(20);default:'PENDING';index:idx_reviews_provider_status_created,priority:2;index:idx_reviews_status_created,priority:1" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_reviews_provider_status_created,priority:3;index:idx_reviews_status_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Provider Provider `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"-"`
	Reviewer *User    `gorm:"foreignKey:ReviewerID" json:"-"`
}

// IsAnonymous reports whether the review was left without an authenticated
// reviewer.
func (r *Review) IsAnonymous() bool {
	return r.ReviewerID == nil
}
