package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("RENDER_MAX_DEPTH", "not-a-number")
	t.Setenv("RENDER_CACHE_TTL", "90s")
	t.Setenv("RENDER_HIGHLIGHT", "false")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 64, cfg.Render.MaxDepth)
	assert.Equal(t, 90*time.Second, cfg.Render.CacheTTL)
	assert.False(t, cfg.Render.Highlight)
	assert.Equal(t, 15*time.Minute, cfg.Media.PresignTTL)
}

func TestCacheTTLStaysBelowPresignTTL(t *testing.T) {
	tests := []struct {
		name   string
		bucket string
		cache  time.Duration
		want   time.Duration
	}{
		{"public media is not clamped", "", time.Hour, time.Hour},
		{"shorter cache is kept", "assets", 10 * time.Minute, 10 * time.Minute},
		{"equal ttl is clamped", "assets", 15 * time.Minute, 7*time.Minute + 30*time.Second},
		{"longer ttl is clamped", "assets", time.Hour, 7*time.Minute + 30*time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Render: RenderConfig{CacheTTL: tt.cache},
				Media:  MediaConfig{S3Bucket: tt.bucket, PresignTTL: 15 * time.Minute},
			}
			clampCacheTTL(cfg)
			assert.Equal(t, tt.want, cfg.Render.CacheTTL)
		})
	}
}
