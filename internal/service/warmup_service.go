package service

import (
	"context"
	"encoding/json"

	"agency-site-be/internal/dto"
	"agency-site-be/internal/entity"
	"agency-site-be/internal/pkg/logger"
	"agency-site-be/internal/repository/specification"
	"agency-site-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	WarmupKindPost   = "post"
	WarmupKindJob    = "job"
	WarmupKindGlobal = "global"
)

// IWarmupService consumes RENDER_WARMUP messages and renders the named content
// into the render caches so the first visitor gets a cache hit.
type IWarmupService interface {
	Consume(ctx context.Context) error
}

type warmupService struct {
	subscriber    message.Subscriber
	topicName     string
	uowFactory    unitofwork.RepositoryFactory
	renderService IRenderService
	logger        logger.ILogger
}

func NewWarmupService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	renderService IRenderService,
	log logger.ILogger,
) IWarmupService {
	return &warmupService{
		subscriber:    subscriber,
		topicName:     topicName,
		uowFactory:    uowFactory,
		renderService: renderService,
		logger:        log,
	}
}

func (ws *warmupService) Consume(ctx context.Context) error {
	messages, err := ws.subscriber.Subscribe(ctx, ws.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ws.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks: a failed warmup only leaves the cache cold.
func (ws *warmupService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishWarmupMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		ws.logger.Error("WARMUP", "Failed to unmarshal message", map[string]interface{}{"error": err})
		msg.Ack()
		return
	}

	if err := ws.warm(ctx, payload); err != nil {
		ws.logger.Error("WARMUP", "Failed to warm render cache", map[string]interface{}{
			"kind":  payload.Kind,
			"key":   payload.Key,
			"error": err,
		})
	}
	msg.Ack()
}

func (ws *warmupService) warm(ctx context.Context, payload dto.PublishWarmupMessage) error {
	uow := ws.uowFactory.NewUnitOfWork(ctx)

	var documents []json.RawMessage
	switch payload.Kind {
	case WarmupKindPost:
		post, err := uow.PostRepository().FindOne(ctx, specification.BySlug{Slug: payload.Key})
		if err != nil {
			return err
		}
		if post != nil {
			documents = append(documents, post.Content)
		}
	case WarmupKindJob:
		job, err := uow.JobRepository().FindOne(ctx, specification.BySlug{Slug: payload.Key})
		if err != nil {
			return err
		}
		if job != nil {
			documents = append(documents, job.Description, job.Requirements)
		}
	case WarmupKindGlobal:
		global, err := uow.GlobalRepository().FindByKey(ctx, payload.Key)
		if err != nil {
			return err
		}
		if global != nil {
			documents = append(documents, globalDocuments(global.Data)...)
		}
	default:
		ws.logger.Warn("WARMUP", "Unknown warmup kind", map[string]interface{}{"kind": payload.Kind})
		return nil
	}

	for _, doc := range documents {
		if _, err := ws.renderService.Render(ctx, doc, entity.RenderFormatHTML); err != nil {
			return err
		}
	}
	ws.logger.Debug("WARMUP", "Render cache warmed", map[string]interface{}{
		"kind":      payload.Kind,
		"key":       payload.Key,
		"documents": len(documents),
	})
	return nil
}

// requestWarmup publishes a warmup message; failures only cost a cold cache.
func requestWarmup(ctx context.Context, publisher IPublisherService, log logger.ILogger, kind, key string) {
	if publisher == nil {
		return
	}
	payload, err := json.Marshal(dto.PublishWarmupMessage{Kind: kind, Key: key})
	if err != nil {
		return
	}
	if err := publisher.Publish(ctx, payload); err != nil {
		log.Warn("WARMUP", "Failed to publish warmup message", map[string]interface{}{
			"kind":  kind,
			"key":   key,
			"error": err,
		})
	}
}
