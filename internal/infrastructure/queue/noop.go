package queue

import (
	"context"

	"github.com/AndresRicci93/countries-api/internal/application/ports"
)

// NoopEnqueuer is a no-op enqueuer when Redis/Asynq is not configured.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) Enqueue(ctx context.Context, event ports.AuditEvent) error {
	return nil
}

var _ ports.EventEnqueuer = (*NoopEnqueuer)(nil)
