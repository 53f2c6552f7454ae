package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/buket_shop/pkg/logging"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

// EventPublisher delivers domain events to a message broker.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

const publishTimeout = 5 * time.Second

// publish is best effort: a broker failure is logged and never fails the
// operation that produced the event.
func publish(ctx context.Context, p EventPublisher, topic, key string, event map[string]any) {
	if p == nil || topic == "" {
		return
	}
	event["event_id"] = uuid.NewString()
	event["occurred_at"] = time.Now().UTC().Format(time.RFC3339Nano)

	pctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := p.PublishEvent(pctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_error", "topic", topic, "type", event["type"], "error", err)
	}
}
