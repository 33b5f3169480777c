package app

import (
	"context"

	"github.com/hxben0103/ojt-ai-system/internal/config"
	"github.com/hxben0103/ojt-ai-system/internal/messaging/kafka/consumer"
	"github.com/hxben0103/ojt-ai-system/internal/user"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const consumerGroupID = "ojt-ai-system-daily-prediction"

// RunConsumer refreshes daily predictions from attendance and evaluation
// events until SIGINT/SIGTERM. Offsets are committed explicitly.
func RunConsumer(cfg config.App) error {
	logger := zap.L().Named("app.consumer")
	if cfg.KafkaBroker == "" {
		return errNoBroker
	}

	infra, err := Connect(cfg, false)
	if err != nil {
		return err
	}
	defer infra.Close()

	predictions := newPredictionService(infra, user.NewRepository(infra.GormDB), logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{cfg.KafkaBroker},
		GroupID:     consumerGroupID,
		GroupTopics: consumer.ActivityTopics,
		StartOffset: kafkago.FirstOffset,
	})
	defer reader.Close()

	return runUntilSignal(logger, "", func(ctx context.Context) {
		consumer.ConsumeStudentActivity(ctx, reader, predictions, logger)
	})
}
