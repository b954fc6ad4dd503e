package service

import (
	"context"

	"agency-site-be/internal/dto"
	"agency-site-be/internal/pkg/logger"
	"agency-site-be/internal/pkg/mailer"
	"agency-site-be/pkg/events"
	pktNats "agency-site-be/pkg/nats"
)

// EventSubscriber is the slice of the NATS subscriber the notification service uses.
type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType, durableName string, handler pktNats.EventHandler) error
}

// PreviewDelivery pushes events to connected editors. Implemented by the websocket hub.
type PreviewDelivery interface {
	Broadcast(event dto.PreviewEvent)
}

// NotificationService reacts to domain events: new leads are mailed to the
// agency inbox, publish events are pushed to editors on the preview socket.
type NotificationService struct {
	subscriber EventSubscriber
	mailer     mailer.IEmailService
	leadInbox  string
	delivery   PreviewDelivery
	logger     logger.ILogger
}

func NewNotificationService(
	sub EventSubscriber,
	mail mailer.IEmailService,
	leadInbox string,
	delivery PreviewDelivery,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		mailer:     mail,
		leadInbox:  leadInbox,
		delivery:   delivery,
		logger:     log,
	}
}

// Start attaches the durable consumers.
func (s *NotificationService) Start(ctx context.Context) error {
	subscriptions := []struct {
		eventType string
		durable   string
		handler   pktNats.EventHandler
	}{
		{events.LeadSubmitted, "lead-mailer", s.handleLeadSubmitted},
		{events.PostPublished, "preview-post-published", s.handlePublished},
		{events.JobPublished, "preview-job-published", s.handlePublished},
	}

	for _, sub := range subscriptions {
		if err := s.subscriber.Subscribe(ctx, sub.eventType, sub.durable, sub.handler); err != nil {
			s.logger.Error("NotificationService", "Failed to subscribe", map[string]interface{}{
				"event": sub.eventType,
				"error": err,
			})
			return err
		}
	}
	s.logger.Info("NotificationService", "Notification service started", nil)
	return nil
}

func (s *NotificationService) handleLeadSubmitted(ctx context.Context, event events.BaseEvent) error {
	if s.leadInbox == "" {
		s.logger.Warn("NotificationService", "Lead inbox not configured, skipping email", map[string]interface{}{
			"lead_id": event.String("lead_id"),
		})
		return nil
	}

	err := s.mailer.SendLeadNotification(s.leadInbox, mailer.LeadNotification{
		Name:       event.String("name"),
		Email:      event.String("email"),
		Company:    event.String("company"),
		Phone:      event.String("phone"),
		Budget:     event.String("budget"),
		Message:    event.String("message"),
		SourcePage: event.String("source_page"),
	})
	if err != nil {
		// nak so JetStream redelivers once SMTP recovers
		return err
	}

	s.logger.Info("NotificationService", "Lead notification mailed", map[string]interface{}{
		"lead_id": event.String("lead_id"),
	})
	return nil
}

func (s *NotificationService) handlePublished(ctx context.Context, event events.BaseEvent) error {
	if s.delivery == nil {
		return nil
	}
	s.delivery.Broadcast(dto.PreviewEvent{
		Type: "published",
		Data: map[string]interface{}{
			"event": event.Type,
			"slug":  event.String("slug"),
			"title": event.String("title"),
		},
	})
	return nil
}
