package evaluation

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRepository_StatsByStudent(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS eval_count`).
		WithArgs("Coordinator", "Supervisor", int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"eval_count", "overall_avg", "coordinator_avg", "supervisor_avg"}).
			AddRow(int64(2), 85.0, nil, 85.0))

	stats, err := NewRepository(db).StatsByStudent(context.Background(), 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.Count)
	assert.Equal(t, 85.0, stats.Average)
	assert.Nil(t, stats.CoordinatorAvg)
	assert.Equal(t, 85.0, *stats.SupervisorAvg)
	assert.NoError(t, mock.ExpectationsWereMet())
}
