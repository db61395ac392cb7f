package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/dtroode/salon-server/internal/model"
)

var (
	_ model.EventStore  = (*OutboxRepository)(nil)
	_ model.OutboxStore = (*OutboxRepository)(nil)
)

// OutboxRepository appends domain events next to the state change that
// produced them and hands unpublished rows to the relay.
type OutboxRepository struct {
	db   querier
	conn *Connection
}

func NewOutboxRepository(conn *Connection) *OutboxRepository {
	return &OutboxRepository{db: conn, conn: conn}
}

// Append stores event together with the W3C trace context found in ctx.
func (r *OutboxRepository) Append(ctx context.Context, event model.OutboxEvent) error {
	if event.Traceparent == "" {
		carrier := propagation.MapCarrier{}
		otel.GetTextMapPropagator().Inject(ctx, carrier)
		event.Traceparent = carrier.Get("traceparent")
	}

	const query = `
		INSERT INTO outbox_events (event_id, aggregate_id, event_type, payload, traceparent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		event.ID, event.AggregateID, string(event.Type), event.Payload, event.Traceparent, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append outbox event: %w", err)
	}
	return nil
}

// PublishPending locks up to limit unpublished events, skipping rows held by
// other relays, and marks them published once publish succeeds. A publish
// error leaves the batch for the next attempt.
func (r *OutboxRepository) PublishPending(ctx context.Context, limit int, publish func(ctx context.Context, events []model.OutboxEvent) error) (int, error) {
	if r.conn == nil {
		return 0, fmt.Errorf("outbox relay needs a pooled connection")
	}

	published := 0
	err := r.conn.withTx(ctx, func(tx pgx.Tx) error {
		const query = `
			SELECT id, event_id, aggregate_id, event_type, payload, traceparent, created_at
			FROM outbox_events
			WHERE published_at IS NULL
			ORDER BY id
			LIMIT $1
			FOR UPDATE SKIP LOCKED`

		rows, err := tx.Query(ctx, query, limit)
		if err != nil {
			return fmt.Errorf("failed to fetch outbox events: %w", err)
		}

		var (
			seqs   []int64
			events []model.OutboxEvent
		)
		for rows.Next() {
			var (
				seq int64
				e   model.OutboxEvent
			)
			if err := rows.Scan(&seq, &e.ID, &e.AggregateID, &e.Type, &e.Payload, &e.Traceparent, &e.CreatedAt); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan outbox event: %w", err)
			}
			seqs = append(seqs, seq)
			events = append(events, e)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to read outbox events: %w", err)
		}
		if len(events) == 0 {
			return nil
		}

		if err := publish(ctx, events); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `UPDATE outbox_events SET published_at = NOW() WHERE id = ANY($1)`, seqs); err != nil {
			return fmt.Errorf("failed to mark outbox events published: %w", err)
		}
		published = len(events)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return published, nil
}
