package models

import "time"

const (
	AdRequestStatusPending  = "PENDING"
	AdRequestStatusApproved = "APPROVED"
	AdRequestStatusRejected = "REJECTED"
)

// AdRequest is a public intake form for sponsors who want a banner. Approval
// turns it into an AdBanner; CreatedBannerID links back to avoid duplicates.
type AdRequest struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Placement string `gorm:"type:varchar(20);index:idx_ad_requests_placement_status,priority:1" json:"placement" validate:"required,oneof=HEADER FOOTER LEFT_RAIL RIGHT_RAIL"`

	SponsorName  string `gorm:"type:varchar(120)" json:"sponsor_name" validate:"required,max=120"`
	ContactName  string `gorm:"type:varchar(120)" json:"contact_name" validate:"required,max=120"`
	ContactEmail string `gorm:"type:varchar(200)" json:"contact_email" validate:"required,email"`
	ContactPhone string `gorm:"type:varchar(50)" json:"contact_phone" validate:"max=50"`

	LinkURL string `gorm:"type:varchar(500)" json:"link_url" validate:"omitempty,url"`

	CreativeType string `gorm:"type:varchar(20);default:'IMAGE'" json:"creative_type"`
	Animation    string `gorm:"type:varchar(20);default:'NONE'" json:"animation"`

	Title    string `gorm:"type:varchar(140)" json:"title" validate:"max=140"`
	Subtitle string `gorm:"type:varchar(180)" json:"subtitle" validate:"max=180"`
	CTAText  string `gorm:"type:varchar(40)" json:"cta_text" validate:"max=40"`

	BackgroundColor string `gorm:"type:varchar(20)" json:"background_color"`
	TextColor       string `gorm:"type:varchar(20)" json:"text_color"`
	FontFamily      string `gorm:"type:varchar(120)" json:"font_family"`
	FontSize        int    `gorm:"default:16" json:"font_size"`

	LogoKey  string `gorm:"type:varchar(255)" json:"logo_key,omitempty"`
	ImageKey string `gorm:"type:varchar(255)" json:"image_key,omitempty"`

	DurationMonths int `gorm:"default:1" json:"duration_months" validate:"min=1,max=24"`

	Status string `gorm:"type:varchar(20);default:'PENDING';index:idx_ad_requests_placement_status,priority:2" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	CreatedBannerID *uint     `json:"created_banner_id,omitempty"`
	CreatedBanner   *AdBanner `gorm:"foreignKey:CreatedBannerID" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
