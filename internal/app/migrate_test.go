package app

import (
	"reflect"
	"testing"

	"github.com/hxben0103/ojt-ai-system/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type modelReorderer interface {
	ReorderModels(values []interface{}, autoAdd bool) []interface{}
}

func TestModels_UsersTableComesFromUserOnly(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	m, ok := db.Migrator().(modelReorderer)
	require.True(t, ok)

	ordered := m.ReorderModels(models(), true)

	assert.Len(t, ordered, len(models()))
	assert.IsType(t, &user.User{}, ordered[0])
	for _, v := range ordered {
		assert.NotContains(t, []string{"UserRef", "StudentRef"}, reflect.TypeOf(v).Elem().Name())
	}
}
