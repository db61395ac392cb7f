// Package events relays domain events from the transactional outbox to a
// message broker.
package events

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/dtroode/salon-server/internal/model"
)

// Sink delivers a batch of events to a broker. A nil error means every event
// in the batch was accepted.
type Sink interface {
	Publish(ctx context.Context, events []model.OutboxEvent) error
	Close() error
}

// Header names set on every published message.
const (
	HeaderEventID   = "event_id"
	HeaderEventType = "event_type"
)

// eventContext restores the trace context stored with the event so the
// broker message continues the trace of the request that produced it.
func eventContext(ctx context.Context, event model.OutboxEvent) context.Context {
	if event.Traceparent == "" {
		return ctx
	}
	carrier := propagation.MapCarrier{"traceparent": event.Traceparent}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}
