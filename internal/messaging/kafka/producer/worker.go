package producer

import (
	"context"
	"time"

	"github.com/hxben0103/ojt-ai-system/internal/messaging/kafka"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	batchSize           = 50
	defaultPollInterval = 3 * time.Second
)

var (
	outboxBacklog = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ojt_outbox_pending",
		Help: "Outbox rows waiting to be published, including failed rows still under the retry ceiling.",
	})
	outboxPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ojt_outbox_published_total",
		Help: "Outbox publish attempts by outcome.",
	}, []string{"outcome"})
)

// batchResult counts what one poll did with the rows it picked up.
type batchResult struct {
	sent   int
	failed int
}

// ProcessOutboxEvents polls the outbox until ctx is cancelled. Failed rows
// come back through ListPending once their backoff expires.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
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
			refreshBacklog(ctx, repo, log)
			if err := processPendingEvents(ctx, repo, writer, log); err != nil {
				log.Error("outbox poll failed", zap.Error(err))
			}
		}
	}
}

func refreshBacklog(ctx context.Context, repo kafka.OutboxRepository, log *zap.Logger) {
	n, err := repo.CountPending(ctx)
	if err != nil {
		log.Warn("outbox backlog count failed", zap.Error(err))
		return
	}
	outboxBacklog.Set(float64(n))
}

func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	log *zap.Logger,
) error {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	var res batchResult
	for _, event := range events {
		if deliver(ctx, repo, writer, event, log) {
			res.sent++
		} else {
			res.failed++
		}
	}

	outboxPublished.WithLabelValues("sent").Add(float64(res.sent))
	outboxPublished.WithLabelValues("failed").Add(float64(res.failed))
	log.Info("outbox batch processed",
		zap.Int("picked", len(events)),
		zap.Int("sent", res.sent),
		zap.Int("failed", res.failed),
	)
	return nil
}

// deliver publishes one row and records the outcome on it. A row that was
// written to Kafka but could not be marked sent counts as sent; the consumer
// side tolerates the duplicate.
func deliver(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	event kafka.OutboxEvent,
	log *zap.Logger,
) bool {
	fields := []zap.Field{
		zap.String("outbox_id", event.ID),
		zap.String("event_type", event.EventType),
		zap.String("topic", event.Topic),
		zap.Int("retry_count", event.RetryCount),
	}

	reason := ""
	if event.Topic == "" {
		reason = "missing topic"
	} else if err := publishEvent(ctx, writer, event); err != nil {
		reason = err.Error()
	}

	if reason != "" {
		log.Error("outbox publish failed", append(fields, zap.String("reason", reason))...)
		if err := repo.MarkFailed(ctx, event.ID, reason); err != nil {
			log.Error("outbox mark failed failed", append(fields, zap.Error(err))...)
		}
		return false
	}

	if err := repo.MarkSent(ctx, event.ID); err != nil {
		log.Error("outbox mark sent failed", append(fields, zap.Error(err))...)
		return true
	}
	log.Debug("outbox event sent", fields...)
	return true
}
