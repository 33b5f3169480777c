package app

import (
	"context"
	"errors"

	"github.com/hxben0103/ojt-ai-system/internal/config"
	"github.com/hxben0103/ojt-ai-system/internal/messaging/kafka"
	"github.com/hxben0103/ojt-ai-system/internal/messaging/kafka/producer"
	"github.com/hxben0103/ojt-ai-system/internal/shared/connection"

	"go.uber.org/zap"
)

var errNoBroker = errors.New("KAFKA_BROKER is required")

// RunWorker relays outbox_events to kafka until SIGINT/SIGTERM.
func RunWorker(cfg config.App) error {
	logger := zap.L().Named("app.worker")
	if cfg.KafkaBroker == "" {
		return errNoBroker
	}

	infra, err := Connect(cfg, false)
	if err != nil {
		return err
	}
	defer infra.Close()

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, connectRetries)
	if err != nil {
		return err
	}
	defer writer.Close()

	outbox := kafka.NewOutboxRepository(infra.SQLDB)
	return runUntilSignal(logger, cfg.WorkerMetricsAddr, func(ctx context.Context) {
		producer.ProcessOutboxEvents(ctx, outbox, writer, logger, cfg.OutboxPollInterval)
	})
}
