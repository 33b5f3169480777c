package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hxben0103/ojt-ai-system/internal/shared/connection"
	"go.uber.org/zap"
)

const devJWTSecret = "dev-secret-change-me"

// App holds the runtime configuration read from the environment.
type App struct {
	Env         string
	LogLevel    string
	Port        string
	Timezone    string
	Postgres    connection.PostgresConfig
	AutoMigrate bool
	RedisAddr   string
	KafkaBroker string

	OutboxPollInterval time.Duration
	WorkerMetricsAddr  string

	AccessTTL  time.Duration
	RefreshTTL time.Duration

	AIServiceURL     string
	AIServiceTimeout time.Duration
	AIServiceSkip    bool

	CORSAllowedOrigins []string
}

func Load() App {
	return App{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: os.Getenv("LOG_LEVEL"),
		Port:     getEnv("PORT", "5000"),
		Timezone: getEnv("APP_TIMEZONE", "Asia/Manila"),
		Postgres: connection.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "ojt_system"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),

			MaxOpenConns:    intEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    intEnv("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: durationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		AutoMigrate:        boolEnv("DB_AUTO_MIGRATE", true),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		OutboxPollInterval: durationEnv("OUTBOX_POLL_INTERVAL", 3*time.Second),
		WorkerMetricsAddr:  os.Getenv("WORKER_METRICS_ADDR"),
		AccessTTL:          durationEnv("ACCESS_TTL", 15*time.Minute),
		RefreshTTL:         durationEnv("REFRESH_TTL", 7*24*time.Hour),
		AIServiceURL:       strings.TrimRight(getEnv("AI_SERVICE_URL", "http://localhost:5001"), "/"),
		AIServiceTimeout:   durationEnv("AI_SERVICE_TIMEOUT", 10*time.Second),
		AIServiceSkip:      boolEnv("AI_SERVICE_SKIP", false),
		CORSAllowedOrigins: listEnv("CORS_ALLOWED_ORIGINS"),
	}
}

func (a App) IsProduction() bool {
	return a.Env == "production"
}

// JWTSecret is read on every call so tests can swap it with t.Setenv.
func JWTSecret() string {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		return v
	}
	return devJWTSecret
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		zap.L().Warn("invalid duration, using fallback", zap.String("key", key), zap.Duration("fallback", fallback), zap.Error(err))
		return fallback
	}
	return d
}

func intEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		zap.L().Warn("invalid int, using fallback", zap.String("key", key), zap.Int("fallback", fallback))
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		zap.L().Warn("invalid bool, using fallback", zap.String("key", key), zap.Bool("fallback", fallback))
		return fallback
	}
	return b
}

func listEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
