package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/AndresRicci93/countries-api/internal/application/ports"
)

const TypeAuditEvent = "audit:event"

// EventEnqueuer puts audit events on the asynq queue for async delivery.
type EventEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*EventEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &EventEnqueuer{client: client, log: log}, nil
}

func (q *EventEnqueuer) Close() error {
	return q.client.Close()
}

func (q *EventEnqueuer) Enqueue(ctx context.Context, event ports.AuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeAuditEvent, payload)
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("event", event.Event).Msg("enqueue audit event failed")
		return err
	}
	return nil
}

var _ ports.EventEnqueuer = (*EventEnqueuer)(nil)
