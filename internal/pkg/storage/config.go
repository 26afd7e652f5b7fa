package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/proveo-app/proveo/internal/pkg/env"
)

// Config holds the S3 media storage configuration. Provider logos and ad
// creatives are uploaded here; when storage is disabled uploads are rejected
// with a clear error instead of failing mid-request.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	PublicBaseURL   string
	Enabled         bool
}

// LoadConfig loads S3 configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "us-east-1"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		PublicBaseURL:   strings.TrimRight(env.GetEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		Enabled:         env.GetEnv("S3_MEDIA_ENABLED", "false") == "true",
	}

	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when S3 media storage is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when S3 media storage is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when S3 media storage is enabled")
		}
	}

	return config, nil
}

// IsEnabled returns true if S3 media storage is enabled
func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// LogoObjectKey generates the object key for a provider logo.
// Format: logos/YYYY/MM/<uuid><ext>
func (c *Config) LogoObjectKey(fileUUID, fileExtension string, t time.Time) string {
	return fmt.Sprintf("logos/%04d/%02d/%s%s", t.Year(), int(t.Month()), fileUUID, fileExtension)
}

// CreativeObjectKey generates the object key for an ad banner creative.
// Format: ads/YYYY/MM/<uuid><ext>
func (c *Config) CreativeObjectKey(fileUUID, fileExtension string, t time.Time) string {
	return fmt.Sprintf("ads/%04d/%02d/%s%s", t.Year(), int(t.Month()), fileUUID, fileExtension)
}

// PublicURL builds the public URL for a stored object. A configured CDN or
// proxy base URL wins over the raw endpoint.
func (c *Config) PublicURL(objectKey string) string {
	key := strings.TrimLeft(objectKey, "/")
	if c.PublicBaseURL != "" {
		return c.PublicBaseURL + "/" + key
	}
	if c.EndpointURL != "" {
		return strings.TrimRight(c.EndpointURL, "/") + "/" + c.BucketName + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.BucketName, c.Region, key)
}
