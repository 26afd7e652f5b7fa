package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeyDeterministic(t *testing.T) {
	a := CacheKey(ListKeyPrefix, map[string][]string{
		"category_slug": {"plomeria"},
		"province":      {"Buenos Aires"},
	})
	b := CacheKey(ListKeyPrefix, map[string][]string{
		"province":      {"Buenos Aires"},
		"category_slug": {"plomeria"},
	})

	assert.Equal(t, a, b)
}

func TestCacheKeyShape(t *testing.T) {
	key := CacheKey(ListKeyPrefix, map[string][]string{"page": {"2"}})

	assert.True(t, strings.HasPrefix(key, ListKeyPrefix+":"))
	digest := strings.TrimPrefix(key, ListKeyPrefix+":")
	assert.Len(t, digest, 32)
}

func TestCacheKeyDistinguishesFilterSets(t *testing.T) {
	a := CacheKey(ListKeyPrefix, map[string][]string{"province": {"Buenos Aires"}})
	b := CacheKey(ListKeyPrefix, map[string][]string{"province": {"Cordoba"}})
	c := CacheKey(FacetsKeyPrefix, map[string][]string{"province": {"Buenos Aires"}})

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCacheKeyMultiValueOrderInsensitive(t *testing.T) {
	a := CacheKey(ListKeyPrefix, map[string][]string{"tag": {"a", "b"}})
	b := CacheKey(ListKeyPrefix, map[string][]string{"tag": {"b", "a"}})

	assert.Equal(t, a, b)
}

func TestCacheKeyEmptyParams(t *testing.T) {
	assert.Equal(t,
		CacheKey(LocationsKeyPrefix, nil),
		CacheKey(LocationsKeyPrefix, map[string][]string{}),
	)
}
