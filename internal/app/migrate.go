package app

import (
	"fmt"

	"github.com/hxben0103/ojt-ai-system/internal/attendance"
	"github.com/hxben0103/ojt-ai-system/internal/chatbot"
	"github.com/hxben0103/ojt-ai-system/internal/errorlog"
	"github.com/hxben0103/ojt-ai-system/internal/evaluation"
	"github.com/hxben0103/ojt-ai-system/internal/ojt"
	"github.com/hxben0103/ojt-ai-system/internal/prediction"
	"github.com/hxben0103/ojt-ai-system/internal/rbac"
	"github.com/hxben0103/ojt-ai-system/internal/report"
	"github.com/hxben0103/ojt-ai-system/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// infraDDL covers the tables written with raw SQL rather than gorm models.
var infraDDL = []string{
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id UUID PRIMARY KEY,
		request_id VARCHAR(64),
		aggregate_type VARCHAR(100) NOT NULL,
		aggregate_id VARCHAR(100) NOT NULL,
		event_type VARCHAR(100) NOT NULL,
		topic VARCHAR(255) NOT NULL,
		payload JSONB NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		retry_count INT NOT NULL DEFAULT 0,
		next_retry_at TIMESTAMPTZ,
		error_message TEXT,
		processed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_pending ON outbox_events (status, created_at)`,
	`CREATE TABLE IF NOT EXISTS counters (
		counter_type VARCHAR(50) PRIMARY KEY,
		last_value BIGINT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// models lists every gorm-managed table. users must share the AutoMigrate
// call with the rest so the per-module UserRef preload stubs resolve to it
// instead of being migrated as their own "users" definition.
func models() []any {
	return []any{
		&user.User{},
		&ojt.Record{},
		&attendance.Attendance{},
		&evaluation.Evaluation{},
		&report.SystemReport{},
		&prediction.Insight{},
		&chatbot.Log{},
		&errorlog.Entry{},
		&rbac.RolePermissionRow{},
	}
}

// Migrate brings the schema up to date.
func Migrate(db *gorm.DB) error {
	log := zap.L().Named("app.migrate")

	if err := db.AutoMigrate(models()...); err != nil {
		return fmt.Errorf("migrate tables: %w", err)
	}
	for _, stmt := range infraDDL {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate infrastructure tables: %w", err)
		}
	}

	log.Info("schema migrated")
	return nil
}
