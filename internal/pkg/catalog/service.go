package catalog

import (
	"strings"

	"github.com/proveo-app/proveo/app/models"
	"gorm.io/gorm"
)

const (
	facetCategoryLimit    = 20
	facetSubcategoryLimit = 30
	facetLocationLimit    = 20
	locationsLimit        = 50
)

// Service builds the denormalized public read model: filtered listings,
// facet counts and location lookups over visible providers. It only ever
// reads; the derived columns it sorts by are maintained by the billing and
// reviews services.
type Service struct {
	db *gorm.DB
}

// NewService creates a catalog query service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListProviders returns one page of the public listing ordered by
// tier/score/rating/name.
func (s *Service) ListProviders(f Filters) (*ListResponse, error) {
	base := f.apply(s.db.Model(&models.Provider{}), applyOptions{})

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, err
	}

	var providers []models.Provider
	err := f.apply(s.db.Model(&models.Provider{}), applyOptions{}).
		Preload("Subcategories").Preload("Subcategories.Category").
		Order(listingOrder).
		Offset((f.Page - 1) * f.PageSize).Limit(f.PageSize).
		Find(&providers).Error
	if err != nil {
		return nil, err
	}

	results := make([]ProviderListItem, 0, len(providers))
	for i := range providers {
		results = append(results, ToListItem(&providers[i]))
	}

	return &ListResponse{
		Count:    count,
		Page:     f.Page,
		PageSize: f.PageSize,
		Results:  results,
	}, nil
}

// GetProviderDetail returns the public detail of a visible provider.
func (s *Service) GetProviderDetail(slug string) (*ProviderDetail, error) {
	var provider models.Provider
	err := s.db.Preload("Subcategories").Preload("Subcategories.Category").
		Where("slug = ? AND is_visible = ?", slug, true).
		First(&provider).Error
	if err != nil {
		return nil, err
	}
	detail := ToDetail(&provider)
	return &detail, nil
}

// CatalogFacets computes the filter badge counts. Each facet dimension
// excludes its own filter from the base set (a selected category still shows
// counts for the other categories) while every other active filter applies.
func (s *Service) CatalogFacets(f Filters) (*CatalogFacets, error) {
	facets := &CatalogFacets{
		Categories:    []FacetEntry{},
		Subcategories: []SubcategoryFacetEntry{},
	}

	// Totals exclude the featured filter so the badge can show both sides.
	baseNoFeatured := f.apply(s.db.Model(&models.Provider{}), applyOptions{skipFeatured: true})
	if err := baseNoFeatured.Count(&facets.TotalCount).Error; err != nil {
		return nil, err
	}
	featured := f.apply(s.db.Model(&models.Provider{}), applyOptions{skipFeatured: true}).
		Where("providers.is_featured = ?", true)
	if err := featured.Count(&facets.FeaturedCount).Error; err != nil {
		return nil, err
	}

	// Category counts ignore the category and subcategory filters.
	catBase := f.apply(s.db.Model(&models.Provider{}), applyOptions{skipCategory: true, skipSubcategory: true})
	err := catBase.
		Joins("JOIN provider_subcategories ps ON ps.provider_id = providers.id").
		Joins("JOIN subcategories sc ON sc.id = ps.subcategory_id AND sc.active = ?", true).
		Joins("JOIN categories c ON c.id = sc.category_id AND c.active = ?", true).
		Select("c.slug AS slug, c.name AS name, COUNT(DISTINCT providers.id) AS count").
		Group("c.id, c.slug, c.name").
		Order("count DESC, name ASC").
		Limit(facetCategoryLimit).
		Scan(&facets.Categories).Error
	if err != nil {
		return nil, err
	}

	// Subcategory counts ignore the subcategory filter but honor the
	// category filter so the list stays scoped to the selected rubric.
	subBase := f.apply(s.db.Model(&models.Provider{}), applyOptions{skipSubcategory: true})
	subQuery := subBase.
		Joins("JOIN provider_subcategories ps ON ps.provider_id = providers.id").
		Joins("JOIN subcategories sc ON sc.id = ps.subcategory_id AND sc.active = ?", true).
		Joins("JOIN categories c ON c.id = sc.category_id AND c.active = ?", true)
	if f.CategorySlug != "" {
		subQuery = subQuery.Where("c.slug = ?", f.CategorySlug)
	}
	err = subQuery.
		Select("sc.slug AS slug, sc.name AS name, COUNT(DISTINCT providers.id) AS count, " +
			"c.slug AS category_slug, c.name AS category_name").
		Group("sc.id, sc.slug, sc.name, c.slug, c.name").
		Order("count DESC, name ASC").
		Limit(facetSubcategoryLimit).
		Scan(&facets.Subcategories).Error
	if err != nil {
		return nil, err
	}

	return facets, nil
}

// LocationFacets buckets the filtered base set (location filters excluded)
// by province, and by city optionally scoped to one province.
func (s *Service) LocationFacets(f Filters) (*LocationFacets, error) {
	facets := &LocationFacets{
		Provinces: []LocationFacetEntry{},
		Cities:    []LocationFacetEntry{},
	}

	provinces := f.apply(s.db.Model(&models.Provider{}), applyOptions{skipLocation: true}).
		Where("providers.province <> ''")
	err := provinces.
		Select("providers.province AS value, COUNT(DISTINCT providers.id) AS count").
		Group("providers.province").
		Order("count DESC, value ASC").
		Limit(facetLocationLimit).
		Scan(&facets.Provinces).Error
	if err != nil {
		return nil, err
	}

	cities := f.apply(s.db.Model(&models.Provider{}), applyOptions{skipLocation: true}).
		Where("providers.city <> ''")
	if f.Province != "" {
		cities = cities.Where("LOWER(providers.province) = LOWER(?)", f.Province)
	}
	err = cities.
		Select("providers.city AS value, COUNT(DISTINCT providers.id) AS count").
		Group("providers.city").
		Order("count DESC, value ASC").
		Limit(facetLocationLimit).
		Scan(&facets.Cities).Error
	if err != nil {
		return nil, err
	}

	return facets, nil
}

// Locations lists distinct non-empty province or city values for typeahead,
// optionally prefix-filtered.
func (s *Service) Locations(field, prefix string, f Filters) ([]string, error) {
	column := "providers.province"
	if field == "city" {
		column = "providers.city"
	}

	// Free-text search never narrows the typeahead; only the category scope
	// and, for cities, the selected province do.
	f.Search = ""
	q := f.apply(s.db.Model(&models.Provider{}), applyOptions{skipLocation: true, skipFeatured: true}).
		Where(column + " <> ''")

	// City lookups can be narrowed to a province.
	if field == "city" && f.Province != "" {
		q = q.Where("LOWER(providers.province) = LOWER(?)", f.Province)
	}
	if prefix != "" {
		q = q.Where("LOWER("+column+") LIKE ?", strings.ToLower(prefix)+"%")
	}

	var values []string
	err := q.Distinct().Order(column + " ASC").Limit(locationsLimit).
		Pluck(column, &values).Error
	return values, err
}
