package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogoObjectKey(t *testing.T) {
	cfg := &Config{}
	at := time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC)

	key := cfg.LogoObjectKey("ab12", ".png", at)
	assert.Equal(t, "logos/2025/07/ab12.png", key)

	key = cfg.CreativeObjectKey("cd34", ".webp", at)
	assert.Equal(t, "ads/2025/07/cd34.webp", key)
}

func TestPublicURL(t *testing.T) {
	cfg := &Config{BucketName: "media", Region: "us-east-1"}
	assert.Equal(t, "https://media.s3.us-east-1.amazonaws.com/logos/a.png", cfg.PublicURL("logos/a.png"))

	cfg.EndpointURL = "https://minio.local:9000"
	assert.Equal(t, "https://minio.local:9000/media/logos/a.png", cfg.PublicURL("/logos/a.png"))

	cfg.PublicBaseURL = "https://cdn.example.com"
	assert.Equal(t, "https://cdn.example.com/logos/a.png", cfg.PublicURL("logos/a.png"))
}
