package ports

import "context"

// AuditEvent is a single domain event for logging or webhook delivery.
type AuditEvent struct {
	Event      string `json:"event"` // user.registered, user.login, country.created, ...
	Username   string `json:"username,omitempty"`
	ResourceID string `json:"resource_id,omitempty"`
	IP         string `json:"ip,omitempty"`
	Success    bool   `json:"success"`
	Err        string `json:"error,omitempty"`
}

// EventEnqueuer hands audit events to the async queue. Enqueue failures are
// logged and never fail the request.
type EventEnqueuer interface {
	Enqueue(ctx context.Context, event AuditEvent) error
}

// WebhookEmitter delivers an audit event to an external endpoint.
type WebhookEmitter interface {
	Emit(ctx context.Context, event AuditEvent) error
}
