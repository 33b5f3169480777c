package connection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRetry(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = old })

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := retry(zap.NewNop(), "postgres", 3, func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("connection refused")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("wraps last error", func(t *testing.T) {
		boom := errors.New("no route to host")
		err := retry(zap.NewNop(), "redis", 2, func(context.Context) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "redis connection failed after 2 retries")
	})

	t.Run("at least one attempt", func(t *testing.T) {
		calls := 0
		_ = retry(zap.NewNop(), "kafka", 0, func(context.Context) error { calls++; return nil })
		assert.Equal(t, 1, calls)
	})
}

func TestPostgresConfig(t *testing.T) {
	cfg := PostgresConfig{Host: "db", User: "ojt", Password: "pw", DBName: "ojt_system", Port: "5432", SSLMode: "disable"}
	assert.Equal(t, "host=db user=ojt password=pw dbname=ojt_system port=5432 sslmode=disable", cfg.DSN())

	pooled := cfg.withPoolDefaults()
	assert.Equal(t, 25, pooled.MaxOpenConns)
	assert.Equal(t, 10, pooled.MaxIdleConns)
	assert.Equal(t, time.Hour, pooled.ConnMaxLifetime)

	cfg.MaxOpenConns = 5
	assert.Equal(t, 5, cfg.withPoolDefaults().MaxOpenConns)
}
