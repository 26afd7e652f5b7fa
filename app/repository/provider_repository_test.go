package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proveo-app/proveo/app/models"
)

func TestGetOrCreateByUserMirrorsExternalPrincipal(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProviderRepository(db)

	// The token subject has no local users row yet.
	principal := &models.User{ID: 42, Email: "externo@proveo.test", Role: models.RoleProvider}
	provider, err := repo.GetOrCreateByUser(principal)
	require.NoError(t, err)
	assert.Equal(t, uint(42), provider.UserID)
	assert.False(t, provider.IsVisible)

	var user models.User
	require.NoError(t, db.First(&user, 42).Error)
	assert.Equal(t, "externo@proveo.test", user.Email)
	assert.Equal(t, models.RoleProvider, user.Role)
}

func TestGetOrCreateByUserIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProviderRepository(db)

	principal := &models.User{ID: 7, Email: "uno@proveo.test", Role: models.RoleProvider}
	first, err := repo.GetOrCreateByUser(principal)
	require.NoError(t, err)

	second, err := repo.GetOrCreateByUser(principal)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	assert.Equal(t, int64(1), userCount)
}

func TestGetOrCreateByUserKeepsExistingRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProviderRepository(db)

	existing := &models.User{ID: 9, Email: "registrado@proveo.test", Role: models.RoleProvider}
	require.NoError(t, existing.SetPassword("secreto123"))
	require.NoError(t, db.Create(existing).Error)

	_, err := repo.GetOrCreateByUser(&models.User{ID: 9, Email: "otro@proveo.test"})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user, 9).Error)
	assert.Equal(t, "registrado@proveo.test", user.Email)
	assert.True(t, user.CheckPassword("secreto123"))
}
