package domain

import "time"

// AuditEvent is a fire-and-forget record of a state-changing action.
// Context is a flat set of attributes stored as JSON.
type AuditEvent struct {
	ID        string            `json:"id"`
	Event     string            `json:"event"`
	ActorID   *int32            `json:"actor_id,omitempty"`
	Context   map[string]string `json:"context,omitempty"`
	CreatedOn time.Time         `json:"created_on"`
}
