package consumer

import (
	"context"
	"errors"
	"testing"

	"github.com/hxben0103/ojt-ai-system/internal/events"
	"github.com/hxben0103/ojt-ai-system/internal/prediction"
	predictionerrors "github.com/hxben0103/ojt-ai-system/internal/prediction/errors"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRefresher struct {
	calls []int64
	err   error
}

func (f *fakeRefresher) DailyPrediction(_ context.Context, studentID int64) (prediction.DailyPrediction, error) {
	f.calls = append(f.calls, studentID)
	return prediction.DailyPrediction{StudentID: studentID}, f.err
}

type fakeReader struct {
	msgs      []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(f.msgs) == 0 {
		f.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	m := f.msgs[0]
	f.msgs = f.msgs[1:]
	return m, nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	f.committed = append(f.committed, msgs...)
	return nil
}

func attendanceMsg(eventType string) kafkago.Message {
	return kafkago.Message{
		Topic: events.AttendanceRecordedTopic,
		Value: []byte(`{"event_type":"` + eventType + `","attendance_id":3,"student_id":10,"date":"2026-03-02","field":"time_out"}`),
	}
}

func TestHandleActivity(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	t.Run("time-out refreshes the prediction", func(t *testing.T) {
		r := &fakeRefresher{}
		assert.True(t, handleActivity(ctx, attendanceMsg(events.EventAttendanceTimeOut), r, log))
		assert.Equal(t, []int64{10}, r.calls)
	})

	t.Run("time-in is ignored", func(t *testing.T) {
		r := &fakeRefresher{}
		assert.True(t, handleActivity(ctx, attendanceMsg(events.EventAttendanceTimeIn), r, log))
		assert.Empty(t, r.calls)
	})

	t.Run("evaluation submitted", func(t *testing.T) {
		r := &fakeRefresher{}
		msg := kafkago.Message{Topic: events.EvaluationSubmittedTopic, Value: []byte(`{"evaluation_id":4,"student_id":22}`)}
		assert.True(t, handleActivity(ctx, msg, r, log))
		assert.Equal(t, []int64{22}, r.calls)
	})

	t.Run("ai outage is committed", func(t *testing.T) {
		r := &fakeRefresher{err: predictionerrors.ErrAIServiceUnavailable.WithDetails(map[string]any{})}
		assert.True(t, handleActivity(ctx, attendanceMsg(events.EventAttendanceTimeOut), r, log))
	})

	t.Run("database failure is retried", func(t *testing.T) {
		r := &fakeRefresher{err: errors.New("connection reset")}
		assert.False(t, handleActivity(ctx, attendanceMsg(events.EventAttendanceTimeOut), r, log))
	})

	t.Run("malformed payload is committed", func(t *testing.T) {
		r := &fakeRefresher{}
		msg := kafkago.Message{Topic: events.EvaluationSubmittedTopic, Value: []byte(`{`)}
		assert.True(t, handleActivity(ctx, msg, r, log))
		assert.Empty(t, r.calls)
	})
}

func TestConsumeStudentActivity(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		msgs: []kafkago.Message{
			attendanceMsg(events.EventAttendanceTimeOut),
			attendanceMsg(events.EventAttendanceTimeIn),
		},
	}
	r := &fakeRefresher{}

	ConsumeStudentActivity(ctx, reader, r, zap.NewNop())

	assert.Len(t, reader.committed, 2)
	assert.Equal(t, []int64{10}, r.calls)
}
