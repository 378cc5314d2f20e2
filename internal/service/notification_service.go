package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/support-kit/analytics-service/internal/config"
	"github.com/support-kit/analytics-service/internal/events"
)

// NotificationService reports sync lifecycle events to operators.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotifyConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotifyConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to sync events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSyncCompleted, n.handleSyncCompleted)
	n.dispatcher.Subscribe(events.EventSyncFailed, n.handleSyncFailed)
}

func (n *NotificationService) handleSyncCompleted(ctx context.Context, event events.Event) error {
	n.logger.Info("SyncCompleted", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSyncFailed(ctx context.Context, event events.Event) error {
	n.logger.Warn("SyncFailed", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
