package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdBannerIsRunning(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name   string
		banner AdBanner
		want   bool
	}{
		{"active without window", AdBanner{Active: true}, true},
		{"inactive", AdBanner{Active: false}, false},
		{"inside window", AdBanner{Active: true, StartsAt: &past, EndsAt: &future}, true},
		{"not started yet", AdBanner{Active: true, StartsAt: &future}, false},
		{"already ended", AdBanner{Active: true, EndsAt: &past}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.banner.IsRunning(now))
		})
	}
}
