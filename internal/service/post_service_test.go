package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"agency-site-be/internal/dto"
	"agency-site-be/internal/entity"
	"agency-site-be/internal/pkg/logger"
	"agency-site-be/pkg/events"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type postFixture struct {
	store   *memStore
	events  *recordingPublisher
	warmups *recordingWarmups
	svc     *postService
}

func newPostFixture() *postFixture {
	store := newMemStore()
	f := &postFixture{store: store, events: &recordingPublisher{}, warmups: &recordingWarmups{}}
	svc := NewPostService(store, newTestRenderService(store), staticURLs{}, f.warmups, f.events, logger.NewNopLogger()).(*postService)
	svc.now = func() time.Time { return fixedNow }
	f.svc = svc
	return f
}

func (f *postFixture) seed(slug string, status entity.ContentStatus, publishedAt *time.Time, tags ...string) *entity.Post {
	p := &entity.Post{
		Id:          uuid.New(),
		Slug:        slug,
		Title:       "Post " + slug,
		Content:     json.RawMessage(helloDoc),
		Tags:        tags,
		Status:      status,
		PublishedAt: publishedAt,
		CreatedAt:   fixedNow.Add(-48 * time.Hour),
	}
	f.store.posts[p.Id] = p
	return p
}

func at(d time.Duration) *time.Time {
	t := fixedNow.Add(d)
	return &t
}

func TestPostServiceListOnlyVisible(t *testing.T) {
	f := newPostFixture()
	f.seed("live", entity.ContentStatusPublished, at(-time.Hour), "news")
	f.seed("older", entity.ContentStatusPublished, at(-2*time.Hour), "culture")
	f.seed("draft", entity.ContentStatusDraft, nil)
	f.seed("future", entity.ContentStatusScheduled, at(time.Hour))
	f.seed("due", entity.ContentStatusScheduled, at(-30*time.Minute), "news")

	tests := []struct {
		name  string
		query dto.ListQuery
		slugs []string
		total int64
	}{
		{"all visible newest first", dto.ListQuery{}, []string{"due", "live", "older"}, 3},
		{"tag filter", dto.ListQuery{Tag: "news"}, []string{"due", "live"}, 2},
		{"second page", dto.ListQuery{Page: 2, Limit: 2}, []string{"older"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := f.svc.List(context.Background(), &tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)

			var slugs []string
			for _, it := range items {
				slugs = append(slugs, it.Slug)
			}
			assert.Equal(t, tt.slugs, slugs)
		})
	}
}

func TestPostServiceListExcerptAndCover(t *testing.T) {
	f := newPostFixture()
	p := f.seed("live", entity.ContentStatusPublished, at(-time.Hour))
	coverId := uuid.New()
	f.store.media[coverId] = &entity.Media{Id: coverId, Filename: "cover.png", Alt: "Cover"}
	p.CoverMediaId = &coverId

	items, _, err := f.svc.List(context.Background(), &dto.ListQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	want := &dto.PostSummary{
		Id:          p.Id,
		Slug:        "live",
		Title:       "Post live",
		Excerpt:     "Hello",
		Cover:       &dto.MediaAsset{Id: coverId, URL: "https://cdn.test/cover.png", Alt: "Cover"},
		Tags:        []string{},
		PublishedAt: p.PublishedAt,
	}
	if diff := cmp.Diff(want, items[0]); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestPostServiceShowBySlug(t *testing.T) {
	f := newPostFixture()
	f.seed("live", entity.ContentStatusPublished, at(-time.Hour))
	f.seed("draft", entity.ContentStatusDraft, nil)

	got, err := f.svc.ShowBySlug(context.Background(), "live", "markdown")
	require.NoError(t, err)
	assert.Equal(t, entity.RenderFormatMarkdown, got.Body.Format)
	assert.Contains(t, got.Body.Body, "Hello")

	_, err = f.svc.ShowBySlug(context.Background(), "draft", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.ShowBySlug(context.Background(), "live", "docx")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPostServiceUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("create published stamps publish time and emits event", func(t *testing.T) {
		f := newPostFixture()
		res, err := f.svc.Upsert(ctx, &dto.UpsertPostRequest{
			Slug:     "hello",
			Title:    "Hello",
			Markdown: "# Hello\n\nWorld",
			Status:   "published",
		})
		require.NoError(t, err)
		assert.True(t, res.Created)

		stored := f.store.posts[res.Id]
		require.NotNil(t, stored.PublishedAt)
		assert.Equal(t, fixedNow, *stored.PublishedAt)
		assert.Equal(t, []string{}, stored.Tags)
		assert.Contains(t, string(stored.Content), `"heading"`)
		assert.Equal(t, []string{events.PostPublished}, f.events.types())
		assert.Equal(t, []string{`{"kind":"post","key":"hello"}`}, f.warmups.payloads)
		assert.Equal(t, 1, f.store.commits)
	})

	t.Run("update of a visible post does not re-announce", func(t *testing.T) {
		f := newPostFixture()
		existing := f.seed("hello", entity.ContentStatusPublished, at(-time.Hour))

		res, err := f.svc.Upsert(ctx, &dto.UpsertPostRequest{
			Slug:        "hello",
			Title:       "Hello again",
			Content:     json.RawMessage(helloDoc),
			Status:      "published",
			PublishedAt: existing.PublishedAt,
		})
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, existing.Id, res.Id)
		assert.Equal(t, "Hello again", f.store.posts[existing.Id].Title)
		assert.Empty(t, f.events.types())
	})

	t.Run("revives a soft-deleted slug", func(t *testing.T) {
		f := newPostFixture()
		old := f.seed("hello", entity.ContentStatusPublished, at(-time.Hour))
		old.IsDeleted = true

		res, err := f.svc.Upsert(ctx, &dto.UpsertPostRequest{Slug: "hello", Title: "Back", Status: "draft"})
		require.NoError(t, err)
		assert.Equal(t, old.Id, res.Id)
		assert.False(t, f.store.posts[old.Id].IsDeleted)
		assert.Empty(t, f.events.types())
	})

	t.Run("rejects non-object content", func(t *testing.T) {
		f := newPostFixture()
		_, err := f.svc.Upsert(ctx, &dto.UpsertPostRequest{Slug: "x", Title: "x", Content: json.RawMessage(`[1]`), Status: "draft"})
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})

	t.Run("write failure rolls back", func(t *testing.T) {
		f := newPostFixture()
		f.store.writeErr = errors.New("disk full")
		_, err := f.svc.Upsert(ctx, &dto.UpsertPostRequest{Slug: "x", Title: "x", Status: "draft"})
		assert.EqualError(t, err, "disk full")
		assert.Equal(t, 1, f.store.rollbacks)
		assert.Zero(t, f.store.commits)
	})
}

func TestPostServiceDelete(t *testing.T) {
	f := newPostFixture()
	p := f.seed("bye", entity.ContentStatusPublished, at(-time.Hour))

	require.NoError(t, f.svc.Delete(context.Background(), "bye"))
	assert.True(t, f.store.posts[p.Id].IsDeleted)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), "bye"), ErrNotFound)
}
