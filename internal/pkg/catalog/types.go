package catalog

import "github.com/proveo-app/proveo/app/models"

// SubcategoryMini is the compact subcategory shape embedded in provider
// payloads.
type SubcategoryMini struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	CategorySlug string `json:"category_slug"`
	CategoryName string `json:"category_name"`
}

// ProviderListItem is one row of the public listing.
type ProviderListItem struct {
	ID            uint              `json:"id"`
	Slug          string            `json:"slug"`
	DisplayName   string            `json:"display_name"`
	LegalName     string            `json:"legal_name"`
	Description   string            `json:"description"`
	Province      string            `json:"province"`
	City          string            `json:"city"`
	PlanTier      int               `json:"plan_tier"`
	PlanCode      string            `json:"plan_code"`
	IsFeatured    bool              `json:"is_featured"`
	RankingScore  float64           `json:"ranking_score"`
	RatingAvg     float64           `json:"rating_avg"`
	RatingCount   int               `json:"rating_count"`
	Subcategories []SubcategoryMini `json:"subcategories"`
}

// ProviderDetail is the full public profile served by slug.
type ProviderDetail struct {
	ProviderListItem
	TaxID       string `json:"tax_id"`
	Phone       string `json:"phone"`
	Whatsapp    string `json:"whatsapp"`
	PublicEmail string `json:"public_email"`
	Website     string `json:"website"`
	Address     string `json:"address"`
}

// ListResponse is a paginated listing payload.
type ListResponse struct {
	Count    int64              `json:"count"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Results  []ProviderListItem `json:"results"`
}

// FacetEntry is one slice of a facet dimension.
type FacetEntry struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// SubcategoryFacetEntry extends a facet entry with its parent category.
type SubcategoryFacetEntry struct {
	FacetEntry
	CategorySlug string `json:"category_slug"`
	CategoryName string `json:"category_name"`
}

// CatalogFacets are the filter-option badge counts for the public catalog.
type CatalogFacets struct {
	TotalCount    int64                   `json:"total_count"`
	FeaturedCount int64                   `json:"featured_count"`
	Categories    []FacetEntry            `json:"categories"`
	Subcategories []SubcategoryFacetEntry `json:"subcategories"`
}

// LocationFacetEntry is a province or city bucket.
type LocationFacetEntry struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// LocationFacets are the per-location buckets over the filtered base set.
type LocationFacets struct {
	Provinces []LocationFacetEntry `json:"provinces"`
	Cities    []LocationFacetEntry `json:"cities"`
}

func toSubcategoryMinis(subs []models.Subcategory) []SubcategoryMini {
	minis := make([]SubcategoryMini, 0, len(subs))
	for _, sc := range subs {
		minis = append(minis, SubcategoryMini{
			ID:           sc.ID,
			Name:         sc.Name,
			Slug:         sc.Slug,
			CategorySlug: sc.Category.Slug,
			CategoryName: sc.Category.Name,
		})
	}
	return minis
}

// ToListItem maps a provider row (subcategories preloaded) to its public
// listing shape.
func ToListItem(p *models.Provider) ProviderListItem {
	return ProviderListItem{
		ID:            p.ID,
		Slug:          p.Slug,
		DisplayName:   p.DisplayName,
		LegalName:     p.LegalName,
		Description:   p.Description,
		Province:      p.Province,
		City:          p.City,
		PlanTier:      p.PlanTier,
		PlanCode:      p.PlanCode,
		IsFeatured:    p.IsFeatured,
		RankingScore:  p.RankingScore,
		RatingAvg:     p.RatingAvg,
		RatingCount:   p.RatingCount,
		Subcategories: toSubcategoryMinis(p.Subcategories),
	}
}

// ToDetail maps a provider row to its public detail shape.
func ToDetail(p *models.Provider) ProviderDetail {
	return ProviderDetail{
		ProviderListItem: ToListItem(p),
		TaxID:            p.TaxID,
		Phone:            p.Phone,
		Whatsapp:         p.Whatsapp,
		PublicEmail:      p.PublicEmail,
		Website:          p.Website,
		Address:          p.Address,
	}
}
