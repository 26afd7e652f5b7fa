package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/proveo-app/proveo/app/models"
	"github.com/proveo-app/proveo/app/repository"
)

var (
	authTestDB   *gorm.DB
	authTestOnce sync.Once
)

// newAuthTestApp shares one in-memory database: the repository factory is a
// process-wide singleton, so every test in the package sees the same handle.
func newAuthTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	authTestOnce.Do(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		require.NoError(t, err)
		require.NoError(t, db.AutoMigrate(
			&models.User{}, &models.Category{}, &models.Subcategory{}, &models.Provider{},
		))
		repository.InitializeFactory(db)
		authTestDB = db
	})
	db := authTestDB

	app := fiber.New()
	app.Post("/auth/register-provider", HandleRegisterProvider)
	app.Post("/auth/register-admin", HandleRegisterAdmin)
	app.Post("/auth/token", HandleLogin)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func TestRegisterProviderProvisionsProfile(t *testing.T) {
	app, db := newAuthTestApp(t)

	status, body := doJSON(t, app, "/auth/register-provider",
		`{"email":"nuevo@proveo.test","password":"secreto123"}`)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "PROVIDER", body["role"])

	var user models.User
	require.NoError(t, db.Where("email = ?", "nuevo@proveo.test").First(&user).Error)
	assert.True(t, user.CheckPassword("secreto123"))

	// The directory profile exists immediately, hidden until a plan entitles it.
	var provider models.Provider
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&provider).Error)
	assert.False(t, provider.IsVisible)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	app, _ := newAuthTestApp(t)

	status, _ := doJSON(t, app, "/auth/register-admin",
		`{"email":"admin@proveo.test","password":"secreto123"}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSON(t, app, "/auth/register-admin",
		`{"email":"admin@proveo.test","password":"otraclave99"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestLoginIssuesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app, _ := newAuthTestApp(t)

	status, _ := doJSON(t, app, "/auth/register-provider",
		`{"email":"login@proveo.test","password":"secreto123"}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, app, "/auth/token",
		`{"email":"login@proveo.test","password":"secreto123"}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	status, _ = doJSON(t, app, "/auth/token",
		`{"email":"login@proveo.test","password":"equivocada"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
