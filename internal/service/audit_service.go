package service

import (
	"context"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/config"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/events"
)

const defaultAuditQueueSize = 100

// AuditService records security-relevant events and forwards them to the
// configured webhook.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.AuditConfig
	http       *resty.Client
	queue      chan events.Event
}

// NewAuditService creates the service. Without a webhook URL events are only logged.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.AuditConfig) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
		cfg:        cfg,
	}
	if cfg.WebhookURL != "" {
		size := cfg.QueueSize
		if size <= 0 {
			size = defaultAuditQueueSize
		}
		a.queue = make(chan events.Event, size)
		a.http = resty.New().
			SetTimeout(cfg.Timeout()).
			SetHeader("Content-Type", "application/json").
			SetRetryCount(0)
	}
	return a
}

// WebhookEnabled reports whether events are forwarded.
func (a *AuditService) WebhookEnabled() bool {
	return a.queue != nil
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, t := range []events.EventType{
		events.EventLoginSucceeded,
		events.EventLoggedOut,
		events.EventCredentialExpired,
	} {
		a.dispatcher.Subscribe(t, a.handleSessionEvent)
	}
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleLoginFailed)
	a.dispatcher.Subscribe(events.EventBackupDownloaded, a.handleAdminAction)
	a.dispatcher.Subscribe(events.EventYearRolledOver, a.handleAdminAction)
}

// Run drains queued events to the webhook until ctx is cancelled.
func (a *AuditService) Run(ctx context.Context) {
	if a.queue == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-a.queue:
			a.deliver(ctx, event)
		}
	}
}

func (a *AuditService) handleSessionEvent(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type), a.fields(event)...)
	a.enqueue(event)
	return nil
}

func (a *AuditService) handleLoginFailed(_ context.Context, event events.Event) error {
	a.logger.Warn(string(event.Type), append(a.fields(event), zap.Any("payload", event.Payload))...)
	a.enqueue(event)
	return nil
}

func (a *AuditService) handleAdminAction(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type), append(a.fields(event), zap.Any("payload", event.Payload))...)
	a.enqueue(event)
	return nil
}

func (a *AuditService) fields(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("scope_id", event.ScopeID),
		zap.String("user_id", event.Actor.UserID.String()),
		zap.String("username", event.Actor.Username),
		zap.String("role", string(event.Actor.Role)),
		zap.Time("at", event.Timestamp),
	}
}

// enqueue never blocks the publishing request; a full queue drops the event.
func (a *AuditService) enqueue(event events.Event) {
	if a.queue == nil {
		return
	}
	select {
	case a.queue <- event:
	default:
		a.logger.Warn("audit queue full, event dropped",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
	}
}

func (a *AuditService) deliver(ctx context.Context, event events.Event) {
	resp, err := a.http.R().
		SetContext(ctx).
		SetBody(event).
		Post(a.cfg.WebhookURL)
	if err != nil {
		a.logger.Warn("audit webhook failed",
			zap.String("event_id", event.ID),
			zap.Error(err))
		return
	}
	if resp.IsError() {
		a.logger.Warn("audit webhook rejected event",
			zap.String("event_id", event.ID),
			zap.Int("status", resp.StatusCode()))
		return
	}
	a.logger.Debug("audit event delivered",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}
