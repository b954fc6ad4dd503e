package memory

import (
	"context"
	"time"

	"agency-site-be/internal/entity"
	"agency-site-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type RenderCache struct {
	cache *cache.Cache
}

// NewRenderCache keeps rendered documents for ttl and purges expired entries
// every two ttl periods.
func NewRenderCache(ttl time.Duration) contract.RenderCache {
	return &RenderCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (r *RenderCache) Get(_ context.Context, key string) (*entity.RenderedDocument, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(*entity.RenderedDocument), true
	}
	return nil, false
}

func (r *RenderCache) Set(_ context.Context, key string, doc *entity.RenderedDocument) {
	r.cache.Set(key, doc, cache.DefaultExpiration)
}
