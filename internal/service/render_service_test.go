package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"agency-site-be/internal/config"
	"agency-site-be/internal/entity"
	"agency-site-be/internal/pkg/logger"
	"agency-site-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloDoc = `{"root":{"type":"root","children":[{"type":"paragraph","children":[{"type":"text","text":"Hello"}]}]}}`

func newTestRenderService(store *memStore, caches ...*countingCache) IRenderService {
	var cs []contract.RenderCache
	for _, c := range caches {
		cs = append(cs, c)
	}
	return NewRenderService(store, staticURLs{}, config.RenderConfig{MaxDepth: 32, MaxNodes: 1000}, logger.NewNopLogger(), cs...)
}

func TestRenderServiceFormats(t *testing.T) {
	svc := newTestRenderService(newMemStore())

	tests := []struct {
		format entity.RenderFormat
		body   string
	}{
		{entity.RenderFormatHTML, "<p>Hello</p>"},
		{entity.RenderFormatText, "Hello"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			doc, err := svc.Render(context.Background(), json.RawMessage(helloDoc), tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.format, doc.Format)
			assert.Equal(t, tt.body, doc.Body)
			assert.False(t, doc.Empty)
		})
	}

	tree, err := svc.Render(context.Background(), json.RawMessage(helloDoc), entity.RenderFormatTree)
	require.NoError(t, err)
	assert.Empty(t, tree.Body)
	assert.NotEmpty(t, tree.Tree)

	_, err = svc.Render(context.Background(), json.RawMessage(helloDoc), "pdf")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestRenderServiceEmptyDocument(t *testing.T) {
	svc := newTestRenderService(newMemStore())
	doc, err := svc.Render(context.Background(), nil, entity.RenderFormatHTML)
	require.NoError(t, err)
	assert.True(t, doc.Empty)
}

func TestRenderServiceCacheLevels(t *testing.T) {
	local, shared := newCountingCache(), newCountingCache()
	svc := newTestRenderService(newMemStore(), local, shared)
	ctx := context.Background()

	first, err := svc.Render(ctx, json.RawMessage(helloDoc), entity.RenderFormatHTML)
	require.NoError(t, err)
	assert.Equal(t, 1, local.sets)
	assert.Equal(t, 1, shared.sets)

	// a cold local cache is refilled from the shared one
	local.docs = map[string]*entity.RenderedDocument{}
	second, err := svc.Render(ctx, json.RawMessage(helloDoc), entity.RenderFormatHTML)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, shared.hits)
	assert.Equal(t, 2, local.sets)

	_, err = svc.Render(ctx, json.RawMessage(helloDoc), entity.RenderFormatHTML)
	require.NoError(t, err)
	assert.Equal(t, 1, local.hits)
	assert.Equal(t, 1, shared.hits)
}

func TestRenderServiceUncachedSkipsCaches(t *testing.T) {
	cache := newCountingCache()
	svc := newTestRenderService(newMemStore(), cache)

	_, err := svc.RenderUncached(context.Background(), json.RawMessage(helloDoc), entity.RenderFormatHTML)
	require.NoError(t, err)
	assert.Zero(t, cache.sets)
}

func TestRenderServiceResolvesUploads(t *testing.T) {
	store := newMemStore()
	id := uuid.New()
	store.media[id] = &entity.Media{Id: id, Filename: "hero.jpg", Alt: "Hero", MimeType: "image/jpeg"}
	svc := newTestRenderService(store)

	content := `{"root":{"children":[
		{"type":"upload","value":"` + id.String() + `"},
		{"type":"upload","value":"` + uuid.NewString() + `"}]}}`
	doc, err := svc.Render(context.Background(), json.RawMessage(content), entity.RenderFormatHTML)
	require.NoError(t, err)

	assert.Contains(t, doc.Body, `src="https://cdn.test/hero.jpg"`)
	assert.Equal(t, 1, strings.Count(doc.Body, "<img"))
	require.NotEmpty(t, doc.Warnings)
}

func TestRenderServiceDetachedSkipsMedia(t *testing.T) {
	store := newMemStore()
	id := uuid.New()
	store.media[id] = &entity.Media{Id: id, Filename: "private.jpg", Alt: "Private"}
	cache := newCountingCache()
	svc := newTestRenderService(store, cache)

	content := `{"root":{"children":[
		{"type":"upload","value":"` + id.String() + `"},
		{"type":"upload","value":{"url":"/media/public.jpg","alt":"Public"}}]}}`
	doc, err := svc.RenderDetached(context.Background(), json.RawMessage(content), entity.RenderFormatHTML)
	require.NoError(t, err)

	assert.NotContains(t, doc.Body, "cdn.test")
	assert.Contains(t, doc.Body, `src="/media/public.jpg"`)
	assert.Equal(t, 1, strings.Count(doc.Body, "<img"))
	assert.Zero(t, cache.sets)

	_, err = svc.RenderDetached(context.Background(), json.RawMessage(helloDoc), "pdf")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCacheKeyDependsOnFormat(t *testing.T) {
	a := cacheKey([]byte(helloDoc), entity.RenderFormatHTML)
	b := cacheKey([]byte(helloDoc), entity.RenderFormatText)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, cacheKey([]byte(helloDoc), entity.RenderFormatHTML))
}
