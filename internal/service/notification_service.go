package service

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/trip-service/internal/config"
	"github.com/spec-kit/trip-service/internal/events"
)

// NotificationService forwards domain events to the log and, when
// configured, to an external webhook. Payloads never include tokens or
// credentials.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	webhookURL string
	rest       *resty.Client
}

// NewNotificationService builds the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		webhookURL: cfg.WebhookURL,
		rest:       resty.New().SetTimeout(5 * time.Second),
	}
}

// RegisterHandlers subscribes to the events worth notifying about.
func (s *NotificationService) RegisterHandlers() {
	for _, eventType := range []events.EventType{
		events.EventUserRegistered,
		events.EventTripCreated,
		events.EventTripDeleted,
		events.EventGuideLinked,
	} {
		s.dispatcher.Subscribe(eventType, s.handle)
	}
}

func (s *NotificationService) handle(ctx context.Context, event events.Event) error {
	s.logger.Info("domain event",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("actor", event.Actor),
	)

	if s.webhookURL == "" {
		return nil
	}
	resp, err := s.rest.R().
		SetContext(ctx).
		SetBody(event).
		Post(s.webhookURL)
	if err != nil {
		s.logger.Warn("webhook delivery failed", zap.Error(err))
		return err
	}
	if resp.IsError() {
		s.logger.Warn("webhook rejected event",
			zap.Int("status", resp.StatusCode()),
			zap.String("event_id", event.ID),
		)
	}
	return nil
}
