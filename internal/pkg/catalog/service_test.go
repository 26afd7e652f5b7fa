package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/proveo-app/proveo/app/models"
)

// setupCatalogDB seeds a small directory: three visible providers across two
// rubrics and two provinces, plus one hidden provider that must never leak
// into public results.
func setupCatalogDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	err = db.AutoMigrate(&models.Category{}, &models.Subcategory{}, &models.Provider{})
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	mantenimiento := models.Category{Name: "Mantenimiento", Slug: "mantenimiento", Active: true}
	limpieza := models.Category{Name: "Limpieza", Slug: "limpieza", Active: true}
	require.NoError(t, db.Create(&mantenimiento).Error)
	require.NoError(t, db.Create(&limpieza).Error)

	plomeria := models.Subcategory{CategoryID: mantenimiento.ID, Name: "Plomería", Slug: "mantenimiento-plomeria", Active: true}
	electricidad := models.Subcategory{CategoryID: mantenimiento.ID, Name: "Electricidad", Slug: "mantenimiento-electricidad", Active: true}
	limpiezaGeneral := models.Subcategory{CategoryID: limpieza.ID, Name: "Limpieza general", Slug: "limpieza-limpieza-general", Active: true}
	require.NoError(t, db.Create(&plomeria).Error)
	require.NoError(t, db.Create(&electricidad).Error)
	require.NoError(t, db.Create(&limpiezaGeneral).Error)

	providers := []models.Provider{
		{
			UserID: 1, Slug: "altagama-plomeria", DisplayName: "Altagama Plomería",
			Province: "Buenos Aires", City: "La Plata",
			IsVisible: true, PlanTier: 3, PlanCode: "GOLD_MONTHLY", IsFeatured: true,
			RankingScore: 4.8, RatingAvg: 4.9, RatingCount: 20,
			Subcategories: []models.Subcategory{plomeria},
		},
		{
			UserID: 2, Slug: "alfa-electricidad", DisplayName: "Alfa Electricidad",
			Province: "Buenos Aires", City: "Quilmes",
			IsVisible: true, PlanTier: 1, PlanCode: "BASIC_MONTHLY",
			RankingScore: 4.9, RatingAvg: 4.9, RatingCount: 10,
			Subcategories: []models.Subcategory{electricidad},
		},
		{
			UserID: 3, Slug: "bereco-electricidad", DisplayName: "Bereco Electricidad",
			Province: "Buenos Aires", City: "Quilmes",
			IsVisible: true, PlanTier: 1, PlanCode: "BASIC_MONTHLY",
			RankingScore: 4.9, RatingAvg: 4.9, RatingCount: 10,
			Subcategories: []models.Subcategory{electricidad},
		},
		{
			UserID: 4, Slug: "clean-sa", DisplayName: "Clean SA",
			Province: "Córdoba", City: "Córdoba",
			IsVisible: true, PlanTier: 1, PlanCode: "BASIC_MONTHLY",
			RankingScore: 3.0, RatingAvg: 3.0, RatingCount: 4,
			Subcategories: []models.Subcategory{limpiezaGeneral},
		},
		{
			UserID: 5, Slug: "oculto-srl", DisplayName: "Oculto SRL",
			Province: "Buenos Aires", City: "La Plata",
			IsVisible: false,
			Subcategories: []models.Subcategory{plomeria},
		},
	}
	for i := range providers {
		require.NoError(t, db.Create(&providers[i]).Error)
	}
	return db
}

func listSlugs(resp *ListResponse) []string {
	slugs := make([]string, 0, len(resp.Results))
	for _, item := range resp.Results {
		slugs = append(slugs, item.Slug)
	}
	return slugs
}

func TestListProvidersOrderingAndVisibility(t *testing.T) {
	svc := NewService(setupCatalogDB(t))

	resp, err := svc.ListProviders(Filters{Page: 1, PageSize: 20})
	require.NoError(t, err)

	// Paid tier first, then score, then name; hidden rows never appear.
	assert.Equal(t, int64(4), resp.Count)
	assert.Equal(t, []string{
		"altagama-plomeria", "alfa-electricidad", "bereco-electricidad", "clean-sa",
	}, listSlugs(resp))
}

func TestListProvidersCategoryFilter(t *testing.T) {
	svc := NewService(setupCatalogDB(t))

	resp, err := svc.ListProviders(Filters{CategorySlug: "mantenimiento", Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Count)
	assert.NotContains(t, listSlugs(resp), "clean-sa")
}

func TestListProvidersSearchTokensMustAllMatch(t *testing.T) {
	svc := NewService(setupCatalogDB(t))

	resp, err := svc.ListProviders(Filters{Search: "electricidad quilmes", Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alfa-electricidad", "bereco-electricidad"}, listSlugs(resp))

	resp, err = svc.ListProviders(Filters{Search: "bereco quilmes", Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"bereco-electricidad"}, listSlugs(resp))
}

func TestListProvidersFeaturedFilter(t *testing.T) {
	svc := NewService(setupCatalogDB(t))

	resp, err := svc.ListProviders(Filters{Featured: true, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"altagama-plomeria"}, listSlugs(resp))
}

func TestCatalogFacetsExcludeOwnDimension(t *testing.T) {
	svc := NewService(setupCatalogDB(t))

	facets, err := svc.CatalogFacets(Filters{CategorySlug: "limpieza", Page: 1, PageSize: 20})
	require.NoError(t, err)

	// The totals honor the selected category.
	assert.Equal(t, int64(1), facets.TotalCount)

	// The category dimension ignores its own filter so the other rubric
	// keeps its badge count.
	counts := map[string]int64{}
	for _, entry := range facets.Categories {
		counts[entry.Slug] = entry.Count
	}
	assert.Equal(t, int64(3), counts["mantenimiento"])
	assert.Equal(t, int64(1), counts["limpieza"])

	// The subcategory dimension stays scoped to the selected category.
	require.Len(t, facets.Subcategories, 1)
	assert.Equal(t, "limpieza-limpieza-general", facets.Subcategories[0].Slug)
}

func TestCatalogFacetsFeaturedExcludedFromTotals(t *testing.T) {
	svc := NewService(setupCatalogDB(t))

	facets, err := svc.CatalogFacets(Filters{Featured: true, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(4), facets.TotalCount)
	assert.Equal(t, int64(1), facets.FeaturedCount)
}

func TestLocationFacetsExcludeOwnFilter(t *testing.T) {
	svc := NewService(setupCatalogDB(t))

	facets, err := svc.LocationFacets(Filters{Province: "Córdoba", Page: 1, PageSize: 20})
	require.NoError(t, err)

	provinces := map[string]int64{}
	for _, entry := range facets.Provinces {
		provinces[entry.Value] = entry.Count
	}
	assert.Equal(t, int64(3), provinces["Buenos Aires"])
	assert.Equal(t, int64(1), provinces["Córdoba"])

	// Cities are scoped to the selected province.
	require.Len(t, facets.Cities, 1)
	assert.Equal(t, "Córdoba", facets.Cities[0].Value)
}

func TestLocationsIgnoresFreeTextSearch(t *testing.T) {
	svc := NewService(setupCatalogDB(t))

	values, err := svc.Locations("province", "", Filters{Search: "plomeria", Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Buenos Aires", "Córdoba"}, values)
}

func TestLocationsCityScopedToProvince(t *testing.T) {
	svc := NewService(setupCatalogDB(t))

	values, err := svc.Locations("city", "", Filters{Province: "Buenos Aires", Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"La Plata", "Quilmes"}, values)
}

func TestLocationsPrefixFilter(t *testing.T) {
	svc := NewService(setupCatalogDB(t))

	values, err := svc.Locations("city", "qu", Filters{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{"Quilmes"}, values)
}
