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

type IJobService interface {
	List(ctx context.Context, query *dto.ListQuery) ([]*dto.JobSummary, int64, error)
	ShowBySlug(ctx context.Context, slug, format string) (*dto.ShowJobResponse, error)
	Upsert(ctx context.Context, req *dto.UpsertJobRequest) (*dto.UpsertResponse, error)
	Delete(ctx context.Context, slug string) error
}

type jobService struct {
	uowFactory       unitofwork.RepositoryFactory
	renderService    IRenderService
	publisherService IPublisherService
	eventPublisher   events.Publisher
	logger           logger.ILogger
	now              func() time.Time
}

func NewJobService(
	uowFactory unitofwork.RepositoryFactory,
	renderService IRenderService,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IJobService {
	return &jobService{
		uowFactory:       uowFactory,
		renderService:    renderService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
		now:              time.Now,
	}
}

// List ignores query.Tag: jobs are not tagged.
func (s *jobService) List(ctx context.Context, query *dto.ListQuery) ([]*dto.JobSummary, int64, error) {
	page, limit := pageOf(query.Page, query.Limit)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	visible := specification.Visible{Now: s.now()}
	total, err := uow.JobRepository().Count(ctx, visible)
	if err != nil {
		return nil, 0, err
	}

	jobs, err := uow.JobRepository().FindAll(ctx,
		visible,
		specification.OrderBy{Field: "published_at", Desc: true},
		specification.OrderBy{Field: "title"},
		specification.Page(page, limit),
	)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*dto.JobSummary, 0, len(jobs))
	for _, j := range jobs {
		result = append(result, toJobSummary(j))
	}
	return result, total, nil
}

func (s *jobService) ShowBySlug(ctx context.Context, slug, format string) (*dto.ShowJobResponse, error) {
	f, err := parseFormat(format)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	job, err := uow.JobRepository().FindOne(ctx,
		specification.BySlug{Slug: slug},
		specification.Visible{Now: s.now()},
	)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrNotFound
	}

	description, err := s.renderService.Render(ctx, job.Description, f)
	if err != nil {
		return nil, err
	}
	requirements, err := s.renderService.Render(ctx, job.Requirements, f)
	if err != nil {
		return nil, err
	}

	return &dto.ShowJobResponse{
		JobSummary:   *toJobSummary(job),
		Description:  description,
		Requirements: requirements,
	}, nil
}

func (s *jobService) Upsert(ctx context.Context, req *dto.UpsertJobRequest) (*dto.UpsertResponse, error) {
	description, err := documentFrom(req.Description, "")
	if err != nil {
		return nil, err
	}
	requirements, err := documentFrom(req.Requirements, "")
	if err != nil {
		return nil, err
	}

	now := s.now()
	publishedAt := req.PublishedAt
	if req.Status == string(entity.ContentStatusPublished) && publishedAt == nil {
		publishedAt = &now
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	existing, err := uow.JobRepository().FindOne(ctx,
		specification.BySlug{Slug: req.Slug},
		specification.WithDeleted{},
	)
	if err != nil {
		uow.Rollback()
		return nil, err
	}

	wasVisible := existing != nil && !existing.IsDeleted && existing.IsVisible(now)
	job := existing
	created := job == nil
	if created {
		job = &entity.Job{Id: uuid.New(), Slug: req.Slug, CreatedAt: now}
	}
	job.Title = req.Title
	job.Location = req.Location
	job.Department = req.Department
	job.EmploymentType = entity.EmploymentType(req.EmploymentType)
	job.Description = description
	job.Requirements = requirements
	job.Status = entity.ContentStatus(req.Status)
	job.PublishedAt = publishedAt
	job.DeletedAt = nil
	job.IsDeleted = false

	if created {
		err = uow.JobRepository().Create(ctx, job)
	} else {
		err = uow.JobRepository().Update(ctx, job)
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

	requestWarmup(ctx, s.publisherService, s.logger, WarmupKindJob, job.Slug)
	if !wasVisible && job.IsVisible(now) {
		publishEvent(ctx, s.eventPublisher, s.logger, events.New(events.JobPublished, map[string]interface{}{
			"job_id": job.Id.String(),
			"slug":   job.Slug,
			"title":  job.Title,
		}))
	}

	s.logger.Info("JOB", "Job saved", map[string]interface{}{
		"slug":    job.Slug,
		"status":  string(job.Status),
		"created": created,
	})

	return &dto.UpsertResponse{Id: job.Id, Slug: job.Slug, Created: created}, nil
}

func (s *jobService) Delete(ctx context.Context, slug string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	job, err := uow.JobRepository().FindOne(ctx, specification.BySlug{Slug: slug})
	if err != nil {
		return err
	}
	if job == nil {
		return ErrNotFound
	}

	if err := uow.JobRepository().Delete(ctx, job.Id); err != nil {
		return err
	}
	s.logger.Info("JOB", "Job deleted", map[string]interface{}{"slug": slug})
	return nil
}

func toJobSummary(j *entity.Job) *dto.JobSummary {
	return &dto.JobSummary{
		Id:             j.Id,
		Slug:           j.Slug,
		Title:          j.Title,
		Location:       j.Location,
		Department:     j.Department,
		EmploymentType: string(j.EmploymentType),
		PublishedAt:    j.PublishedAt,
	}
}
