package impl_relay

import (
	"context"
	"errors"
	"time"

	"github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/gateway/messaging"
	port_persistence "github.com/PedroCamargo-dev/core-bank-accounts/internal/ports/gateway/persistence"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

const Topic = "bank.transfers"

type Relay struct {
	outbx     port_persistence.OutboxRepository
	publisher messaging.Publisher
	interval  time.Duration
	batch     int
	logger    log.Logger
}

func NewRelay(outbx port_persistence.OutboxRepository, publisher messaging.Publisher, interval time.Duration, batch int, logger log.Logger) *Relay {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &Relay{
		outbx:     outbx,
		publisher: publisher,
		interval:  interval,
		batch:     batch,
		logger:    log.With(logger, "component", "relay"),
	}
}

// Run flushes the outbox every interval until ctx is done.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := r.Flush(ctx); err != nil && !errors.Is(err, context.Canceled) {
				level.Error(r.logger).Log("msg", "flush failed", "err", err)
			}
		}
	}
}

// Flush publishes one batch and returns how many messages went out. A message
// whose publish fails stays queued and the rest of the batch is skipped, so
// ordering is kept.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	msgs, err := r.outbx.DequeueBatch(ctx, r.batch)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, msg := range msgs {
		headers := map[string]string{
			messaging.HeaderMessageID:     msg.MessageID,
			messaging.HeaderEventType:     msg.EventType,
			messaging.HeaderAggregateType: msg.AggregateType,
			messaging.HeaderCorrelationID: msg.CorrelationID,
		}
		if msg.Traceparent != "" {
			headers[messaging.HeaderTraceparent] = msg.Traceparent
		}

		if err := r.publisher.Publish(ctx, Topic, msg.AggregateID, msg.Payload, headers); err != nil {
			level.Warn(r.logger).Log("msg", "publish failed", "message_id", msg.MessageID, "err", err)
			return sent, err
		}

		if err := r.outbx.MarkPublished(ctx, msg.MessageID); err != nil {
			return sent, err
		}

		sent++
	}

	if sent > 0 {
		level.Debug(r.logger).Log("msg", "outbox flushed", "sent", sent)
	}

	return sent, nil
}
