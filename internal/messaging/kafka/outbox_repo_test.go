package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewEvent(t *testing.T) {
	ev, err := NewEvent("req-1", "attendance", "10", "attendance_time_in", "ojt.attendance.recorded.v1", map[string]any{"student_id": 5})
	assert.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, OutboxStatusPending, ev.Status)
	assert.NoError(t, ValidateOutboxEvent(ev))

	var body map[string]any
	assert.NoError(t, json.Unmarshal(ev.Payload, &body))
	assert.Equal(t, float64(5), body["student_id"])
}

func TestOutboxRepository_CreateInTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ev, _ := NewEvent("req-1", "attendance", "10", "attendance_time_in", "topic", map[string]int{"a": 1})

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO outbox_events`).
		WithArgs(ev.ID, ev.RequestID, ev.AggregateType, ev.AggregateID, ev.EventType, ev.Topic, ev.Payload, ev.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)
	assert.NoError(t, NewOutboxRepository(db).WithTx(tx).Create(context.Background(), ev))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateRejectsInvalid(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	err = NewOutboxRepository(db).Create(context.Background(), OutboxEvent{ID: "x", Topic: "t", Status: OutboxStatusPending})
	assert.EqualError(t, err, "outbox payload is required")
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM outbox_events`).
		WithArgs(OutboxStatusPending, OutboxStatusFailed, OutboxMaxRetries, 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
			AddRow("e-1", "req-1", "attendance", "10", "attendance_time_out", "topic", []byte(`{}`), OutboxStatusPending, 0, now))

	events, err := NewOutboxRepository(db).ListPending(context.Background(), 50)
	assert.NoError(t, err)
	if assert.Len(t, events, 1) {
		assert.Equal(t, "req-1", events[0].RequestID)
		assert.Equal(t, "10", events[0].AggregateID)
	}
}

func TestOutboxRepository_CountPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM outbox_events`).
		WithArgs(OutboxStatusPending, OutboxStatusFailed, OutboxMaxRetries).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := NewOutboxRepository(db).CountPending(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE outbox_events`).
		WithArgs("e-1", OutboxStatusFailed, "broker unavailable").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, NewOutboxRepository(db).MarkFailed(context.Background(), "e-1", "broker unavailable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
