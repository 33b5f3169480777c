package counter

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const CounterOJTRecord = "ojt_record"

//go:generate mockgen -source=counter_repo.go -destination=mock/counter_repo_mock.go -package=mock
type Repository interface {
	WithDB(db *gorm.DB) Repository
	GetNextValue(ctx context.Context, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithDB(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue bumps the named counter and returns the new value in a single
// statement, so concurrent callers never observe the same number.
func (r *repository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	var nextValue int64

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (counter_type, last_value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (counter_type) DO UPDATE
		SET last_value = counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, counterType).Scan(&nextValue).Error
	if err != nil {
		return 0, fmt.Errorf("next %s counter: %w", counterType, err)
	}

	return nextValue, nil
}
