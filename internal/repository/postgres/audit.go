package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"campusbooks-backend/internal/domain"
	"campusbooks-backend/internal/repository"
)

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, event *domain.AuditEvent) error {
	payload, err := json.Marshal(event.Context)
	if err != nil {
		return err
	}
	query := `INSERT INTO audit_events (id, event, actor_id, context, created_on) VALUES ($1, $2, $3, $4, $5)`
	event.CreatedOn = time.Now()
	_, err = r.db.ExecContext(ctx, query, event.ID, event.Event, event.ActorID, payload, event.CreatedOn)
	return err
}
