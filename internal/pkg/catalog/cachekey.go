package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"time"
)

// Cache TTLs per endpoint family. Short on listings so derived-field changes
// surface quickly; longer on slow-moving aggregates. Writes never invalidate
// entries; staleness is bounded by TTL only.
const (
	ListTTL      = 30 * time.Second
	FacetsTTL    = 90 * time.Second
	LocationsTTL = 300 * time.Second
)

// Versioned cache key prefixes. Bump the version to orphan old entries after
// a payload shape change.
const (
	ListKeyPrefix           = "public:providers:list:v1"
	RankingKeyPrefix        = "public:ranking:list:v1"
	FacetsKeyPrefix         = "public:catalog-facets:v1"
	LocationFacetsKeyPrefix = "public:location-facets:v1"
	LocationsKeyPrefix      = "public:locations:v1"
	CategoriesKeyPrefix     = "public:categories:v1"
	SubcategoriesKeyPrefix  = "public:subcategories:v1"
)

// CacheKey fingerprints a query parameter set into "<prefix>:<digest>".
// All name/value pairs (multi-values included) are sorted and serialized
// deterministically, so the same filter set hashes identically regardless of
// parameter order in the URL.
func CacheKey(prefix string, params map[string][]string) string {
	values := make(url.Values, len(params))
	for name, vals := range params {
		sorted := append([]string(nil), vals...)
		sort.Strings(sorted)
		values[name] = sorted
	}
	raw := values.Encode() // sorts by key; values pre-sorted above

	sum := sha256.Sum256([]byte(raw))
	digest := hex.EncodeToString(sum[:])[:32]
	return prefix + ":" + digest
}
