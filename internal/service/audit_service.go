package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/intern-dashboard/internal/events"
)

// AuditService writes session lifecycle events to the log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger.Named("audit")}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventSessionHydrated, a.handleHydrated)
	a.dispatcher.Subscribe(events.EventSessionLoggedIn, a.handleLoggedIn)
	a.dispatcher.Subscribe(events.EventSessionLoggedOut, a.handleLoggedOut)
	a.dispatcher.Subscribe(events.EventSessionEvicted, a.handleEvicted)
}

func (a *AuditService) handleHydrated(_ context.Context, event events.Event) error {
	fields := []zap.Field{zap.String("session_id", event.SessionID)}
	if p, ok := event.Payload.(events.HydratedPayload); ok {
		fields = append(fields, zap.Bool("has_credential", p.HasCredential))
		if p.LoadError != "" {
			a.logger.Warn("SessionHydrated", append(fields, zap.String("load_error", p.LoadError))...)
			return nil
		}
	}
	a.logger.Debug("SessionHydrated", fields...)
	return nil
}

func (a *AuditService) handleLoggedIn(_ context.Context, event events.Event) error {
	fields := []zap.Field{zap.String("session_id", event.SessionID)}
	if p, ok := event.Payload.(events.LoggedInPayload); ok {
		fields = append(fields, zap.String("subject_id", p.SubjectID), zap.String("role", string(p.Role)))
	}
	a.logger.Info("SessionLoggedIn", fields...)
	return nil
}

func (a *AuditService) handleLoggedOut(_ context.Context, event events.Event) error {
	a.logger.Info("SessionLoggedOut", zap.String("session_id", event.SessionID))
	return nil
}

func (a *AuditService) handleEvicted(_ context.Context, event events.Event) error {
	a.logger.Debug("SessionEvicted", zap.String("session_id", event.SessionID))
	return nil
}
