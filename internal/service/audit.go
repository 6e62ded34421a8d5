package service

import (
	"context"
	"log/slog"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/logger"
	"campusbooks-backend/internal/repository"

	"github.com/google/uuid"
)

// auditService persists audit events and mirrors them to the log. Recording
// never fails the calling operation; a write error is logged and dropped.
type auditService struct {
	auditRepo repository.AuditRepository
	log       *slog.Logger
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{
		auditRepo: auditRepo,
		log:       logger.WithService("audit"),
	}
}

func (s *auditService) Record(ctx context.Context, event string, actorID *int32, attrs map[string]string) {
	entry := &domain.AuditEvent{
		ID:      uuid.NewString(),
		Event:   event,
		ActorID: actorID,
		Context: attrs,
	}

	logArgs := []any{"event", event}
	if actorID != nil {
		logArgs = append(logArgs, "actor_id", *actorID)
	}
	for k, v := range attrs {
		logArgs = append(logArgs, k, v)
	}
	s.log.Info("audit event", logArgs...)

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.log.Error("failed to persist audit event", "event", event, "error", err)
	}
}
