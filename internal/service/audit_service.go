package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/KingDaeWon/dw-web/internal/config"
	"github.com/KingDaeWon/dw-web/internal/events"
)

// AuditService records auth domain events to the structured log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.AuditConfig
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.AuditConfig) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil || !a.cfg.Enabled {
		return
	}
	a.dispatcher.Subscribe(events.EventMemberSignedUp, a.handleEvent)
	a.dispatcher.Subscribe(events.EventMemberLoggedIn, a.handleEvent)
	a.dispatcher.Subscribe(events.EventTokenReissued, a.handleEvent)
	a.dispatcher.Subscribe(events.EventMemberLoggedOut, a.handleEvent)
}

func (a *AuditService) handleEvent(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("member_id", event.MemberID),
		zap.Time("timestamp", event.Timestamp),
		zap.Any("payload", event.Payload))
	return nil
}
