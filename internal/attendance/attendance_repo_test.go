package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)
	return db, mock
}

func TestRepository_FindByStudentAndDate(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "attendance" WHERE student_id = \$1 AND date = \$2`).
			WillReturnRows(sqlmock.NewRows([]string{"attendance_id", "student_id", "date", "morning_in", "verified"}).
				AddRow(int64(4), int64(7), date, "08:00:00", false))

		got, err := repo.FindByStudentAndDate(ctx, 7, date)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), got.ID)
		assert.Equal(t, ClockTime("08:00:00"), *got.MorningIn)
		assert.Nil(t, got.TimeIn)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "attendance"`).
			WillReturnRows(sqlmock.NewRows([]string{"attendance_id"}))

		got, err := repo.FindByStudentAndDate(ctx, 7, date)

		assert.Nil(t, got)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})
}

func TestRepository_UpdateFieldsGuardsOnNull(t *testing.T) {
	ctx := context.Background()

	t.Run("applied", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)

		mock.ExpectExec(`UPDATE "attendance" SET .* WHERE attendance_id = \$\d+ AND morning_in IS NULL`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.UpdateFields(ctx, 4, FieldMorningIn, map[string]any{"morning_in": ClockTime("08:00:00")})

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already set by another writer", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRepository(db)

		mock.ExpectExec(`UPDATE "attendance" SET .* AND overtime_out IS NULL`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.UpdateFields(ctx, 4, FieldOvertimeOut, map[string]any{"overtime_out": ClockTime("20:00:00")})

		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRepository_WithTxUsesTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)
	sqlDB, err := db.DB()
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "attendance"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx, err := sqlDB.Begin()
	assert.NoError(t, err)

	_, err = repo.WithTx(tx).UpdateFields(context.Background(), 1, FieldTimeIn, map[string]any{"time_in": ClockTime("08:00:00")})
	assert.NoError(t, err)
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
