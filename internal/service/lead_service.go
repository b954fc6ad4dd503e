package service

import (
	"context"
	"strings"
	"time"

	"agency-site-be/internal/dto"
	"agency-site-be/internal/entity"
	"agency-site-be/internal/pkg/logger"
	"agency-site-be/internal/repository/specification"
	"agency-site-be/internal/repository/unitofwork"
	"agency-site-be/pkg/events"

	"github.com/google/uuid"
)

type ILeadService interface {
	Submit(ctx context.Context, req *dto.SubmitLeadRequest) (*dto.SubmitLeadResponse, error)
	List(ctx context.Context, query *dto.LeadListQuery) ([]*dto.LeadResponse, int64, error)
}

type leadService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewLeadService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher events.Publisher,
	log logger.ILogger,
) ILeadService {
	return &leadService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// leadSorts maps the accepted sort parameter to a column and direction.
var leadSorts = map[string]specification.OrderBy{
	"created_at":  {Field: "created_at"},
	"-created_at": {Field: "created_at", Desc: true},
	"name":        {Field: "name"},
	"-name":       {Field: "name", Desc: true},
	"email":       {Field: "email"},
	"-email":      {Field: "email", Desc: true},
}

func (s *leadService) Submit(ctx context.Context, req *dto.SubmitLeadRequest) (*dto.SubmitLeadResponse, error) {
	if req.Website != "" {
		// honeypot filled in: answer like a success and drop it
		s.logger.Warn("LEAD", "Discarded honeypot submission", map[string]interface{}{
			"source_page": req.SourcePage,
		})
		return &dto.SubmitLeadResponse{Id: uuid.New()}, nil
	}

	lead := entity.Lead{
		Id:         uuid.New(),
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Company:    strings.TrimSpace(req.Company),
		Phone:      strings.TrimSpace(req.Phone),
		Budget:     req.Budget,
		Message:    strings.TrimSpace(req.Message),
		SourcePage: req.SourcePage,
		CreatedAt:  time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.LeadRepository().Create(ctx, &lead); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.New(events.LeadSubmitted, map[string]interface{}{
		"lead_id":     lead.Id.String(),
		"name":        lead.Name,
		"email":       lead.Email,
		"company":     lead.Company,
		"phone":       lead.Phone,
		"budget":      lead.Budget,
		"message":     lead.Message,
		"source_page": lead.SourcePage,
	}))

	s.logger.Info("LEAD", "Lead submitted", map[string]interface{}{
		"lead_id":     lead.Id.String(),
		"source_page": lead.SourcePage,
	})

	return &dto.SubmitLeadResponse{Id: lead.Id}, nil
}

func (s *leadService) List(ctx context.Context, query *dto.LeadListQuery) ([]*dto.LeadResponse, int64, error) {
	page, limit := pageOf(query.Page, query.Limit)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var filters []specification.Specification
	if term := strings.TrimSpace(query.Q); term != "" {
		filters = append(filters, specification.LeadSearch{Term: term})
	}

	total, err := uow.LeadRepository().Count(ctx, filters...)
	if err != nil {
		return nil, 0, err
	}

	order, ok := leadSorts[query.Sort]
	if !ok {
		order = leadSorts["-created_at"]
	}
	specs := append(filters, order, specification.Page(page, limit))

	leads, err := uow.LeadRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*dto.LeadResponse, 0, len(leads))
	for _, l := range leads {
		result = append(result, &dto.LeadResponse{
			Id:         l.Id,
			Name:       l.Name,
			Email:      l.Email,
			Company:    l.Company,
			Phone:      l.Phone,
			Budget:     l.Budget,
			Message:    l.Message,
			SourcePage: l.SourcePage,
			CreatedAt:  l.CreatedAt,
		})
	}
	return result, total, nil
}
