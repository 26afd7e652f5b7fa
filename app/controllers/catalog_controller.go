package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/proveo-app/proveo/app/repository"
	"github.com/proveo-app/proveo/internal/pkg/catalog"
	"github.com/proveo-app/proveo/internal/pkg/database"
)

func catalogService() *catalog.Service {
	return catalog.NewService(database.GetDB())
}

func parseRequestFilters(c *fiber.Ctx) catalog.Filters {
	return catalog.ParseFilters(func(key string) string { return c.Query(key) })
}

// HandleListProviders serves the paginated public listing, cached per filter
// fingerprint.
func HandleListProviders(c *fiber.Ctx) error {
	key := catalog.CacheKey(catalog.ListKeyPrefix, queryParams(c))
	filters := parseRequestFilters(c)

	return serveCachedJSON(c, key, catalog.ListTTL, func() (interface{}, error) {
		return catalogService().ListProviders(filters)
	})
}

// HandleRanking serves the same ordered listing under its own cache namespace
// so ranking pages and catalog pages expire independently.
func HandleRanking(c *fiber.Ctx) error {
	key := catalog.CacheKey(catalog.RankingKeyPrefix, queryParams(c))
	filters := parseRequestFilters(c)

	return serveCachedJSON(c, key, catalog.ListTTL, func() (interface{}, error) {
		return catalogService().ListProviders(filters)
	})
}

// HandleProviderDetail serves one visible provider by slug. Uncached; the
// detail page tolerates a direct read.
func HandleProviderDetail(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return badRequest(c, "slug missing")
	}

	detail, err := catalogService().GetProviderDetail(slug)
	if err != nil {
		return notFound(c, "provider not found")
	}
	return c.JSON(detail)
}

// HandleCatalogFacets serves the filter badge counts.
func HandleCatalogFacets(c *fiber.Ctx) error {
	key := catalog.CacheKey(catalog.FacetsKeyPrefix, queryParams(c))
	filters := parseRequestFilters(c)

	return serveCachedJSON(c, key, catalog.FacetsTTL, func() (interface{}, error) {
		return catalogService().CatalogFacets(filters)
	})
}

// HandleLocationFacets serves province and city buckets over the filtered set.
func HandleLocationFacets(c *fiber.Ctx) error {
	key := catalog.CacheKey(catalog.LocationFacetsKeyPrefix, queryParams(c))
	filters := parseRequestFilters(c)

	return serveCachedJSON(c, key, catalog.FacetsTTL, func() (interface{}, error) {
		return catalogService().LocationFacets(filters)
	})
}

// HandleLocations serves distinct location values for typeahead inputs.
func HandleLocations(c *fiber.Ctx) error {
	field := strings.ToLower(strings.TrimSpace(c.Query("field", "province")))
	if field != "province" && field != "city" {
		return badRequest(c, "field must be province or city")
	}

	key := catalog.CacheKey(catalog.LocationsKeyPrefix, queryParams(c))
	filters := parseRequestFilters(c)
	prefix := strings.TrimSpace(c.Query("q"))

	return serveCachedJSON(c, key, catalog.LocationsTTL, func() (interface{}, error) {
		values, err := catalogService().Locations(field, prefix, filters)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"results": values}, nil
	})
}

// HandleListCategories serves active categories, name ascending.
func HandleListCategories(c *fiber.Ctx) error {
	key := catalog.CacheKey(catalog.CategoriesKeyPrefix, queryParams(c))

	return serveCachedJSON(c, key, catalog.LocationsTTL, func() (interface{}, error) {
		return repository.GetGlobalFactory().GetCategoryRepository().GetActive()
	})
}

// HandleListSubcategories serves active subcategories of active categories,
// optionally narrowed to one category.
func HandleListSubcategories(c *fiber.Ctx) error {
	key := catalog.CacheKey(catalog.SubcategoriesKeyPrefix, queryParams(c))
	categorySlug := strings.TrimSpace(c.Query("category_slug"))

	return serveCachedJSON(c, key, catalog.LocationsTTL, func() (interface{}, error) {
		return repository.GetGlobalFactory().GetSubcategoryRepository().GetActive(categorySlug)
	})
}
