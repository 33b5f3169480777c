package health

import (
	"context"
	"net/http"
	"time"

	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"
	"github.com/hxben0103/ojt-ai-system/internal/shared/clock"
	"github.com/hxben0103/ojt-ai-system/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	statusUp   = "up"
	statusDown = "down"

	pingTimeout = 2 * time.Second
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Report struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis,omitempty"`
	Timestamp string `json:"timestamp"`
}

type Handler struct {
	db     Pinger
	rdb    *redis.Client
	clock  clock.Clock
	logger *zap.Logger
}

// NewHandler builds the health probe. rdb may be nil.
func NewHandler(db Pinger, rdb *redis.Client, clk clock.Clock) *Handler {
	return &Handler{db: db, rdb: rdb, clock: clk, logger: zap.L().Named("health")}
}

// Check reports 503 only when postgres is unreachable; a redis outage
// degrades the report but keeps the service routable.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	report := Report{
		Status:    "healthy",
		Database:  statusUp,
		Timestamp: h.clock.Now().Format(time.RFC3339),
	}

	if h.rdb != nil {
		report.Redis = statusUp
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			h.logger.Warn("redis ping failed", zap.Error(err))
			report.Redis = statusDown
			report.Status = "degraded"
		}
	}

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("database ping failed", zap.Error(err))
		report.Database = statusDown
		report.Status = "unhealthy"
		response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "Database unavailable", report)
		return
	}

	response.Success(c, http.StatusOK, report, nil)
}

func RegisterRoutes(r gin.IRoutes, h *Handler) {
	r.GET("/api/health", h.Check)
}
