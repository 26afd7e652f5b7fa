package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func queryFrom(params map[string]string) QueryGetter {
	return func(key string) string { return params[key] }
}

func TestParseFiltersDefaults(t *testing.T) {
	f := ParseFilters(queryFrom(nil))

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultPageSize, f.PageSize)
	assert.False(t, f.Featured)
	assert.Empty(t, f.CategorySlug)
}

func TestParseFiltersReadsDimensions(t *testing.T) {
	f := ParseFilters(queryFrom(map[string]string{
		"category_slug":    " plomeria ",
		"subcategory_slug": "plomeria-destapaciones",
		"province":         "Buenos Aires",
		"city":             "La Plata",
		"featured":         "1",
		"search":           "destapaciones urgentes",
		"page":             "3",
		"page_size":        "10",
	}))

	assert.Equal(t, "plomeria", f.CategorySlug)
	assert.Equal(t, "plomeria-destapaciones", f.SubcategorySlug)
	assert.Equal(t, "Buenos Aires", f.Province)
	assert.Equal(t, "La Plata", f.City)
	assert.True(t, f.Featured)
	assert.Equal(t, "destapaciones urgentes", f.Search)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 10, f.PageSize)
}

func TestParseFiltersCapsPageSize(t *testing.T) {
	f := ParseFilters(queryFrom(map[string]string{"page_size": "500"}))
	assert.Equal(t, MaxPageSize, f.PageSize)
}

func TestParseFeaturedSpellings(t *testing.T) {
	for _, raw := range []string{"true", "1", "yes", "TRUE", " Yes "} {
		assert.True(t, ParseFeatured(raw), raw)
	}
	for _, raw := range []string{"", "0", "false", "no", "si"} {
		assert.False(t, ParseFeatured(raw), raw)
	}
}

func TestSearchTokens(t *testing.T) {
	assert.Nil(t, SearchTokens(""))
	assert.Nil(t, SearchTokens("   "))
	assert.Equal(t, []string{"gas", "matriculado"}, SearchTokens("  gas   matriculado "))
}
