package app

import (
	"database/sql"

	"github.com/hxben0103/ojt-ai-system/internal/config"
	"github.com/hxben0103/ojt-ai-system/internal/shared/clock"
	"github.com/hxben0103/ojt-ai-system/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 5

// Infra holds the shared connections every binary needs.
type Infra struct {
	Config config.App
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
	Clock  clock.Clock
}

// Connect opens postgres and, when withRedis is set, redis.
func Connect(cfg config.App, withRedis bool) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, connectRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	infra := &Infra{
		Config: cfg,
		GormDB: gormDB,
		SQLDB:  sqlDB,
		Clock:  clock.NewSystem(cfg.Timezone),
	}

	if withRedis {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		infra.Redis = rdb
	}

	if cfg.AutoMigrate {
		if err := Migrate(gormDB); err != nil {
			infra.Close()
			return nil, err
		}
	}
	return infra, nil
}

func (i *Infra) Close() {
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			zap.L().Warn("redis close failed", zap.Error(err))
		}
	}
	if err := i.SQLDB.Close(); err != nil {
		zap.L().Warn("database close failed", zap.Error(err))
	}
}

// BuildApp connects the infrastructure and mounts every module on router.
// The caller owns the returned Infra and must Close it.
func BuildApp(router *gin.Engine, cfg config.App) (*Infra, error) {
	infra, err := Connect(cfg, true)
	if err != nil {
		return nil, err
	}

	if err := registerModules(router, infra, zap.L()); err != nil {
		infra.Close()
		return nil, err
	}
	return infra, nil
}
