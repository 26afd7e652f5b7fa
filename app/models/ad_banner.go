package models

import "time"

const (
	AdPlacementHeader    = "HEADER"
	AdPlacementFooter    = "FOOTER"
	AdPlacementLeftRail  = "LEFT_RAIL"
	AdPlacementRightRail = "RIGHT_RAIL"
)

const (
	AdCreativeImage    = "IMAGE"
	AdCreativeComposed = "COMPOSED"
)

const (
	AdAnimationNone  = "NONE"
	AdAnimationPulse = "PULSE"
	AdAnimationFloat = "FLOAT"
)

// AdBanner is a sponsor creative served on a fixed placement. Selection among
// running banners is weighted random; impressions and clicks are buffered in
// the cache and flushed in batches.
type AdBanner struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Placement string `gorm:"type:varchar(20);index:idx_ad_banners_placement_active,priority:1" json:"placement"`

	CreativeType string `gorm:"type:varchar(20);default:'COMPOSED'" json:"creative_type"`
	Animation    string `gorm:"type:varchar(20);default:'NONE'" json:"animation"`

	SponsorName string `gorm:"type:varchar(120)" json:"sponsor_name"`
	Title       string `gorm:"type:varchar(140)" json:"title"`
	Subtitle    string `gorm:"type:varchar(180)" json:"subtitle"`
	CTAText     string `gorm:"type:varchar(40);default:'Conocé más'" json:"cta_text"`

	BackgroundColor string `gorm:"type:varchar(20);default:'#0f172a'" json:"background_color"`
	TextColor       string `gorm:"type:varchar(20);default:'#ffffff'" json:"text_color"`
	FontFamily      string `gorm:"type:varchar(120)" json:"font_family"`
	FontSize        int    `gorm:"default:16" json:"font_size"`

	LogoKey  string `gorm:"type:varchar(255)" json:"logo_key,omitempty"`
	ImageKey string `gorm:"type:varchar(255)" json:"image_key,omitempty"`
	ImageURL string `gorm:"type:varchar(500)" json:"image_url"`
	LinkURL  string `gorm:"type:varchar(500)" json:"link_url"`

	Active bool `gorm:"default:true;index:idx_ad_banners_placement_active,priority:2" json:"active"`
	Weight int  `gorm:"default:1" json:"weight"`

	StartsAt *time.Time `gorm:"type:timestamp;default:null" json:"starts_at,omitempty"`
	EndsAt   *time.Time `gorm:"type:timestamp;default:null" json:"ends_at,omitempty"`

	Impressions uint `gorm:"default:0" json:"impressions"`
	Clicks      uint `gorm:"default:0" json:"clicks"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsRunning reports whether the banner may be served at t.
func (b *AdBanner) IsRunning(t time.Time) bool {
	if !b.Active {
		return false
	}
	if b.StartsAt != nil && b.StartsAt.After(t) {
		return false
	}
	if b.EndsAt != nil && b.EndsAt.Before(t) {
		return false
	}
	return true
}
