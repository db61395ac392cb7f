package events

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/salon-server/internal/config"
	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
)

// Relay polls the outbox and hands pending events to a Sink.
type Relay struct {
	store     model.OutboxStore
	sink      Sink
	logger    *logger.Logger
	pollEvery time.Duration
	batchSize int
}

// NewRelay creates a Relay. Zero poll interval or batch size fall back to 2s and 50.
func NewRelay(store model.OutboxStore, sink Sink, cfg config.Events, logger *logger.Logger) *Relay {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &Relay{
		store:     store,
		sink:      sink,
		logger:    logger,
		pollEvery: cfg.PollInterval,
		batchSize: cfg.BatchSize,
	}
}

// Run relays events until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.pollEvery)
	defer ticker.Stop()

	r.logger.Info("Event relay: started", "poll_interval", r.pollEvery.String(), "batch_size", r.batchSize)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Event relay: stopped")
			return
		case <-ticker.C:
			if _, err := r.Drain(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("Event relay: publish failed", "error", err.Error())
			}
		}
	}
}

// Drain publishes batches until the outbox has no more pending events and
// returns how many were published.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	total := 0
	for {
		n, err := r.store.PublishPending(ctx, r.batchSize, r.sink.Publish)
		total += n
		if err != nil {
			return total, fmt.Errorf("failed to publish outbox batch: %w", err)
		}
		if n > 0 {
			r.logger.Debug("Event relay: batch published", "events", n)
		}
		if n < r.batchSize {
			return total, nil
		}
	}
}
