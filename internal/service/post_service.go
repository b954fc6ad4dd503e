package service

import (
	"context"
	"errors"
	"time"

	"agency-site-be/internal/dto"
	"agency-site-be/internal/entity"
	"agency-site-be/internal/pkg/logger"
	"agency-site-be/internal/repository/contract"
	"agency-site-be/internal/repository/specification"
	"agency-site-be/internal/repository/unitofwork"
	"agency-site-be/pkg/events"

	"github.com/google/uuid"
)

type IPostService interface {
	List(ctx context.Context, query *dto.ListQuery) ([]*dto.PostSummary, int64, error)
	ShowBySlug(ctx context.Context, slug, format string) (*dto.ShowPostResponse, error)
	Upsert(ctx context.Context, req *dto.UpsertPostRequest) (*dto.UpsertResponse, error)
	Delete(ctx context.Context, slug string) error
}

type postService struct {
	uowFactory       unitofwork.RepositoryFactory
	renderService    IRenderService
	urls             IMediaURLBuilder
	publisherService IPublisherService
	eventPublisher   events.Publisher
	logger           logger.ILogger
	now              func() time.Time
}

func NewPostService(
	uowFactory unitofwork.RepositoryFactory,
	renderService IRenderService,
	urls IMediaURLBuilder,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IPostService {
	return &postService{
		uowFactory:       uowFactory,
		renderService:    renderService,
		urls:             urls,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
		now:              time.Now,
	}
}

func (s *postService) List(ctx context.Context, query *dto.ListQuery) ([]*dto.PostSummary, int64, error) {
	page, limit := pageOf(query.Page, query.Limit)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	filters := []specification.Specification{specification.Visible{Now: s.now()}}
	if query.Tag != "" {
		filters = append(filters, specification.ByTag{Tag: query.Tag})
	}

	total, err := uow.PostRepository().Count(ctx, filters...)
	if err != nil {
		return nil, 0, err
	}

	specs := append(filters,
		specification.OrderBy{Field: "published_at", Desc: true},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Page(page, limit),
	)
	posts, err := uow.PostRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	coverIds := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		if p.CoverMediaId != nil {
			coverIds = append(coverIds, *p.CoverMediaId)
		}
	}
	covers, err := mediaAssets(ctx, uow, s.urls, s.logger, coverIds)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*dto.PostSummary, 0, len(posts))
	for _, p := range posts {
		result = append(result, toPostSummary(p, covers))
	}
	return result, total, nil
}

func (s *postService) ShowBySlug(ctx context.Context, slug, format string) (*dto.ShowPostResponse, error) {
	f, err := parseFormat(format)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	post, err := uow.PostRepository().FindOne(ctx,
		specification.BySlug{Slug: slug},
		specification.Visible{Now: s.now()},
	)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	var coverIds []uuid.UUID
	if post.CoverMediaId != nil {
		coverIds = append(coverIds, *post.CoverMediaId)
	}
	covers, err := mediaAssets(ctx, uow, s.urls, s.logger, coverIds)
	if err != nil {
		return nil, err
	}

	body, err := s.renderService.Render(ctx, post.Content, f)
	if err != nil {
		return nil, err
	}

	return &dto.ShowPostResponse{
		PostSummary: *toPostSummary(post, covers),
		Body:        body,
	}, nil
}

func (s *postService) Upsert(ctx context.Context, req *dto.UpsertPostRequest) (*dto.UpsertResponse, error) {
	content, err := documentFrom(req.Content, req.Markdown)
	if err != nil {
		return nil, err
	}

	now := s.now()
	publishedAt := req.PublishedAt
	if req.Status == string(entity.ContentStatusPublished) && publishedAt == nil {
		publishedAt = &now
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	existing, err := uow.PostRepository().FindOne(ctx,
		specification.BySlug{Slug: req.Slug},
		specification.WithDeleted{},
	)
	if err != nil {
		uow.Rollback()
		return nil, err
	}

	wasVisible := existing != nil && !existing.IsDeleted && existing.IsVisible(now)
	post := existing
	created := post == nil
	if created {
		post = &entity.Post{Id: uuid.New(), Slug: req.Slug, CreatedAt: now}
	}
	post.Title = req.Title
	post.Excerpt = req.Excerpt
	post.Content = content
	post.CoverMediaId = req.CoverMediaId
	post.Author = req.Author
	post.Tags = tags
	post.Status = entity.ContentStatus(req.Status)
	post.PublishedAt = publishedAt
	post.DeletedAt = nil
	post.IsDeleted = false

	if created {
		err = uow.PostRepository().Create(ctx, post)
	} else {
		err = uow.PostRepository().Update(ctx, post)
	}
	if err != nil {
		uow.Rollback()
		if errors.Is(err, contract.ErrDuplicateKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	requestWarmup(ctx, s.publisherService, s.logger, WarmupKindPost, post.Slug)
	if !wasVisible && post.IsVisible(now) {
		publishEvent(ctx, s.eventPublisher, s.logger, events.New(events.PostPublished, map[string]interface{}{
			"post_id": post.Id.String(),
			"slug":    post.Slug,
			"title":   post.Title,
		}))
	}

	s.logger.Info("POST", "Post saved", map[string]interface{}{
		"slug":    post.Slug,
		"status":  string(post.Status),
		"created": created,
	})

	return &dto.UpsertResponse{Id: post.Id, Slug: post.Slug, Created: created}, nil
}

func (s *postService) Delete(ctx context.Context, slug string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	post, err := uow.PostRepository().FindOne(ctx, specification.BySlug{Slug: slug})
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}

	if err := uow.PostRepository().Delete(ctx, post.Id); err != nil {
		return err
	}
	s.logger.Info("POST", "Post deleted", map[string]interface{}{"slug": slug})
	return nil
}

func toPostSummary(p *entity.Post, covers map[uuid.UUID]*dto.MediaAsset) *dto.PostSummary {
	summary := &dto.PostSummary{
		Id:          p.Id,
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     excerptOf(p.Excerpt, p.Content),
		Author:      p.Author,
		Tags:        p.Tags,
		PublishedAt: p.PublishedAt,
	}
	if summary.Tags == nil {
		summary.Tags = []string{}
	}
	if p.CoverMediaId != nil {
		summary.Cover = covers[*p.CoverMediaId]
	}
	return summary
}
