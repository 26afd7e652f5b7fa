package catalog

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// Filters are the public listing filter dimensions, parsed from query
// parameters.
type Filters struct {
	CategorySlug    string
	SubcategorySlug string
	Province        string
	City            string
	Featured        bool
	Search          string
	Page            int
	PageSize        int
}

// QueryGetter abstracts fiber's Query accessor so filters can be parsed in
// tests without an HTTP context.
type QueryGetter func(key string) string

// ParseFilters reads the filter dimensions from query parameters.
func ParseFilters(query QueryGetter) Filters {
	f := Filters{
		CategorySlug:    strings.TrimSpace(query("category_slug")),
		SubcategorySlug: strings.TrimSpace(query("subcategory_slug")),
		Province:        strings.TrimSpace(query("province")),
		City:            strings.TrimSpace(query("city")),
		Featured:        ParseFeatured(query("featured")),
		Search:          strings.TrimSpace(query("search")),
		Page:            1,
		PageSize:        DefaultPageSize,
	}

	if page, err := strconv.Atoi(query("page")); err == nil && page > 0 {
		f.Page = page
	}
	if size, err := strconv.Atoi(query("page_size")); err == nil && size > 0 {
		if size > MaxPageSize {
			size = MaxPageSize
		}
		f.PageSize = size
	}
	return f
}

// ParseFeatured accepts the truthy spellings the public site sends.
func ParseFeatured(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// SearchTokens splits a free-text search into whitespace tokens. Every token
// must match at least one searchable field (AND across tokens, OR across
// fields per token).
func SearchTokens(search string) []string {
	var tokens []string
	for _, t := range strings.Fields(search) {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Membership filters use EXISTS over the m2m link table instead of a join so
// a provider linked to several matching subcategories still yields one row.
const (
	categoryExistsSQL = `EXISTS (
		SELECT 1 FROM provider_subcategories ps
		JOIN subcategories sc ON sc.id = ps.subcategory_id
		JOIN categories c ON c.id = sc.category_id
		WHERE ps.provider_id = providers.id AND c.slug = ?)`

	subcategoryExistsSQL = `EXISTS (
		SELECT 1 FROM provider_subcategories ps
		JOIN subcategories sc ON sc.id = ps.subcategory_id
		WHERE ps.provider_id = providers.id AND sc.slug = ?)`
)

// applyOptions tune which filter dimensions a facet computation excludes from
// its own denominator.
type applyOptions struct {
	skipCategory    bool
	skipSubcategory bool
	skipFeatured    bool
	skipLocation    bool
}

// apply narrows a providers query to the visible base set matching f.
func (f Filters) apply(q *gorm.DB, opts applyOptions) *gorm.DB {
	q = q.Where("providers.is_visible = ?", true)

	if !opts.skipCategory && f.CategorySlug != "" {
		q = q.Where(categoryExistsSQL, f.CategorySlug)
	}
	if !opts.skipSubcategory && f.SubcategorySlug != "" {
		q = q.Where(subcategoryExistsSQL, f.SubcategorySlug)
	}
	if !opts.skipLocation {
		if f.Province != "" {
			q = q.Where("LOWER(providers.province) = LOWER(?)", f.Province)
		}
		if f.City != "" {
			q = q.Where("LOWER(providers.city) = LOWER(?)", f.City)
		}
	}
	if !opts.skipFeatured && f.Featured {
		q = q.Where("providers.is_featured = ?", true)
	}

	for _, token := range SearchTokens(f.Search) {
		like := "%" + strings.ToLower(token) + "%"
		q = q.Where(`(LOWER(providers.display_name) LIKE ?
			OR LOWER(providers.legal_name) LIKE ?
			OR LOWER(providers.description) LIKE ?
			OR LOWER(providers.province) LIKE ?
			OR LOWER(providers.city) LIKE ?)`,
			like, like, like, like, like)
	}
	return q
}

// listingOrder is the canonical public ordering: paid tiers first, then
// quality, then alphabetical.
const listingOrder = "providers.plan_tier DESC, providers.ranking_score DESC, " +
	"providers.rating_avg DESC, providers.rating_count DESC, providers.display_name ASC"
