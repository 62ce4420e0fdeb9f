package producer

import (
	"context"
	"time"

	"hrms-lite/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// drainBatchSize caps how many outbox rows one tick relays.
const drainBatchSize = 50

// ProcessOutboxEvents polls the outbox until the context is cancelled and
// relays due rows to Kafka. A row that fails to publish is marked failed
// with a pushed-out next_retry_at, so a broker outage drains on its own
// once the broker is back.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := drainOnce(ctx, repo, writer, log); err != nil {
				log.Error("outbox drain failed", zap.Error(err))
			}
		}
	}
}

// drainOnce relays one batch of pending and retry-due rows. Publish and
// mark failures are per-row: one bad event never blocks the rest of the
// batch.
func drainOnce(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	log *zap.Logger,
) error {
	batch, err := repo.ListPending(ctx, drainBatchSize)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		return nil
	}

	log.Info("draining outbox", zap.Int("count", len(batch)))

	for _, ev := range batch {
		if err := publishEvent(ctx, writer, ev); err != nil {
			log.Error("publish failed, scheduling retry",
				zap.String("outbox_id", ev.ID),
				zap.String("event_type", ev.EventType),
				zap.Int("retry_count", ev.RetryCount),
				zap.Error(err),
			)
			_ = repo.MarkFailed(ctx, ev.ID, err.Error())
			continue
		}

		if err := repo.MarkSent(ctx, ev.ID); err != nil {
			// The event was published; the next tick re-sends it, which
			// consumers must tolerate anyway (at-least-once).
			log.Error("mark sent failed",
				zap.String("outbox_id", ev.ID),
				zap.Error(err),
			)
			continue
		}

		log.Info("outbox event sent",
			zap.String("outbox_id", ev.ID),
			zap.String("event_type", ev.EventType),
			zap.String("topic", ev.Topic),
		)
	}

	return nil
}
