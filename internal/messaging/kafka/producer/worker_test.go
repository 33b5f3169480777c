package producer

import (
	"context"
	"errors"
	"testing"

	"github.com/hxben0103/ojt-ai-system/internal/messaging/kafka"
	kafkaMock "github.com/hxben0103/ojt-ai-system/internal/messaging/kafka/mock"

	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	written []kafkago.Message
	failFor string
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == f.failFor {
			return errors.New("broker unavailable")
		}
		f.written = append(f.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	writer := &fakeWriter{failFor: "2"}
	ctx := context.Background()

	repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{
		{ID: "e-1", AggregateID: "1", EventType: "attendance_time_in", Topic: "ojt.attendance.recorded.v1", Payload: []byte(`{}`), RequestID: "req-1"},
		{ID: "e-2", AggregateID: "2", EventType: "attendance_time_out", Topic: "ojt.attendance.recorded.v1", Payload: []byte(`{}`)},
	}, nil)
	repo.EXPECT().MarkSent(ctx, "e-1").Return(nil)
	repo.EXPECT().MarkFailed(ctx, "e-2", "broker unavailable").Return(nil)

	err := processPendingEvents(ctx, repo, writer, zap.NewNop())

	assert.NoError(t, err)
	if assert.Len(t, writer.written, 1) {
		msg := writer.written[0]
		assert.Equal(t, "ojt.attendance.recorded.v1", msg.Topic)
		assert.Equal(t, "request_id", msg.Headers[2].Key)
		assert.Equal(t, "req-1", string(msg.Headers[2].Value))
	}
}

func TestProcessPendingEvents_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	ctx := context.Background()

	repo.EXPECT().ListPending(ctx, batchSize).Return(nil, errors.New("db down"))

	assert.Error(t, processPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop()))
}

func TestProcessPendingEvents_MissingTopic(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	writer := &fakeWriter{}
	ctx := context.Background()

	repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{
		{ID: "e-3", AggregateID: "3", EventType: "evaluation_submitted", Payload: []byte(`{}`)},
	}, nil)
	repo.EXPECT().MarkFailed(ctx, "e-3", "missing topic").Return(nil)

	assert.NoError(t, processPendingEvents(ctx, repo, writer, zap.NewNop()))
	assert.Empty(t, writer.written)
}

func TestRefreshBacklog(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	ctx := context.Background()

	repo.EXPECT().CountPending(ctx).Return(int64(7), nil)
	refreshBacklog(ctx, repo, zap.NewNop())
	assert.Equal(t, float64(7), testutil.ToFloat64(outboxBacklog))

	repo.EXPECT().CountPending(ctx).Return(int64(0), errors.New("db down"))
	refreshBacklog(ctx, repo, zap.NewNop())
	assert.Equal(t, float64(7), testutil.ToFloat64(outboxBacklog))
}
