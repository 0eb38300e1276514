package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/config"
	"github.com/spec-kit/auth-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger.Named("notification"),
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventUnhandledError, n.handleUnhandledError)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("event_id", event.ID), zap.String("actor", event.Actor))
	return nil
}

func (n *NotificationService) handleUnhandledError(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.UnhandledErrorPayload)
	n.logger.Error("UnhandledError",
		zap.String("event_id", event.ID),
		zap.String("request_id", payload.RequestID),
		zap.String("method", payload.Method),
		zap.String("path", payload.Path),
		zap.String("error", payload.Error))
	go n.sendAdminEmailStub(context.WithoutCancel(ctx), event, payload)
	return nil
}

// sendAdminEmailStub stands in for the outbound mail client; nothing is sent without an admin address.
func (n *NotificationService) sendAdminEmailStub(_ context.Context, event events.Event, payload events.UnhandledErrorPayload) {
	if strings.TrimSpace(n.cfg.AdminEmail) == "" {
		return
	}
	n.logger.Debug("sendAdminEmailStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", n.cfg.AdminEmail),
		zap.String("event_id", event.ID),
		zap.String("request_id", payload.RequestID))
}
