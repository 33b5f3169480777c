package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hxben0103/ojt-ai-system/internal/events"
	"github.com/hxben0103/ojt-ai-system/internal/prediction"
	predictionerrors "github.com/hxben0103/ojt-ai-system/internal/prediction/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ActivityTopics are the topics whose events change a student's daily
// prediction inputs.
var ActivityTopics = []string{events.AttendanceRecordedTopic, events.EvaluationSubmittedTopic}

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type DailyRefresher interface {
	DailyPrediction(ctx context.Context, studentID int64) (prediction.DailyPrediction, error)
}

func ConsumeStudentActivity(
	ctx context.Context,
	reader MessageReader,
	refresher DailyRefresher,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.student_activity")
	log.Info("student activity consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("student activity consumer stopped")
				return
			}
			log.Error("fetch student activity message failed", zap.Error(err))
			continue
		}

		if !handleActivity(ctx, msg, refresher, log) {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit student activity message failed", zap.Error(err))
		}
	}
}

// handleActivity refreshes the daily prediction for the event's student and
// reports whether the message may be committed.
func handleActivity(ctx context.Context, msg kafkago.Message, refresher DailyRefresher, log *zap.Logger) bool {
	studentID, ok := studentOf(msg, log)
	if !ok {
		return true
	}

	_, err := refresher.DailyPrediction(ctx, studentID)
	switch {
	case err == nil:
		log.Info("daily prediction refreshed", zap.Int64("student_id", studentID), zap.String("topic", msg.Topic))
		return true
	case errors.Is(err, predictionerrors.ErrAIServiceUnavailable),
		errors.Is(err, predictionerrors.ErrAIServiceBadResponse):
		log.Warn("daily prediction skipped, ai service unavailable", zap.Int64("student_id", studentID), zap.Error(err))
		return true
	case errors.Is(err, predictionerrors.ErrStudentNotFound):
		log.Warn("daily prediction skipped, unknown student", zap.Int64("student_id", studentID))
		return true
	default:
		log.Error("daily prediction refresh failed", zap.Int64("student_id", studentID), zap.Error(err))
		return false
	}
}

// studentOf decodes the student id. Undecodable messages and events that do
// not affect predictions return ok=false.
func studentOf(msg kafkago.Message, log *zap.Logger) (int64, bool) {
	switch msg.Topic {
	case events.AttendanceRecordedTopic:
		var event events.AttendanceRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance event failed", zap.Error(err))
			return 0, false
		}
		if event.EventType != events.EventAttendanceTimeOut {
			return 0, false
		}
		return event.StudentID, event.StudentID > 0
	case events.EvaluationSubmittedTopic:
		var event events.EvaluationSubmittedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode evaluation event failed", zap.Error(err))
			return 0, false
		}
		return event.StudentID, event.StudentID > 0
	default:
		log.Warn("unexpected topic", zap.String("topic", msg.Topic))
		return 0, false
	}
}
