package app

import (
	"context"

	"github.com/hxben0103/ojt-ai-system/internal/aiclient"
	"github.com/hxben0103/ojt-ai-system/internal/attendance"
	"github.com/hxben0103/ojt-ai-system/internal/auth"
	"github.com/hxben0103/ojt-ai-system/internal/chatbot"
	"github.com/hxben0103/ojt-ai-system/internal/errorlog"
	"github.com/hxben0103/ojt-ai-system/internal/evaluation"
	"github.com/hxben0103/ojt-ai-system/internal/health"
	"github.com/hxben0103/ojt-ai-system/internal/messaging/kafka"
	"github.com/hxben0103/ojt-ai-system/internal/middleware"
	"github.com/hxben0103/ojt-ai-system/internal/ojt"
	"github.com/hxben0103/ojt-ai-system/internal/prediction"
	"github.com/hxben0103/ojt-ai-system/internal/rbac"
	"github.com/hxben0103/ojt-ai-system/internal/rbac/infra"
	"github.com/hxben0103/ojt-ai-system/internal/report"
	"github.com/hxben0103/ojt-ai-system/internal/shared/counter"
	"github.com/hxben0103/ojt-ai-system/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func newPredictor(i *Infra) aiclient.Predictor {
	if i.Config.AIServiceSkip {
		zap.L().Named("app").Warn("AI service disabled, daily predictions will return 503")
		return aiclient.Disabled()
	}
	return aiclient.New(i.Config.AIServiceURL, i.Config.AIServiceTimeout)
}

func newPredictionService(i *Infra, users user.Repository, logger *zap.Logger) prediction.Service {
	return prediction.NewService(
		prediction.NewRepository(i.GormDB),
		prediction.Deps{
			Users:       users,
			OJT:         ojt.NewRepository(i.GormDB),
			Evaluations: evaluation.NewRepository(i.GormDB),
			Attendance:  attendance.NewRepository(i.GormDB),
		},
		newPredictor(i),
		i.Redis,
		i.Clock,
		logger,
	)
}

func registerModules(router *gin.Engine, i *Infra, logger *zap.Logger) error {
	cfg := i.Config
	db, gormDB, rdb, clk := i.SQLDB, i.GormDB, i.Redis, i.Clock

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	ojtRepo := ojt.NewRepository(gormDB)
	evaluationRepo := evaluation.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	chatbotRepo := chatbot.NewRepository(gormDB)
	errorLogRepo := errorlog.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	if err := rbacService.LoadPolicy(context.Background()); err != nil {
		return err
	}

	// --- Services ---
	ttl := auth.TokenTTL{Access: cfg.AccessTTL, Refresh: cfg.RefreshTTL}
	authService := auth.NewService(userRepo, ttl, clk, logger)
	userService := user.NewService(userRepo, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, outboxRepo, clk, logger)
	ojtService := ojt.NewService(db, ojtRepo, userRepo, counterRepo, logger)
	evaluationService := evaluation.NewService(db, evaluationRepo, userRepo, outboxRepo, clk, logger)
	reportService := report.NewService(reportRepo, userRepo, logger)
	predictionService := newPredictionService(i, userRepo, logger)
	chatbotService := chatbot.NewService(chatbotRepo, userRepo, clk, logger)
	errorLogService := errorlog.NewService(errorLogRepo, clk, logger)

	// --- Global middleware ---
	router.Use(
		middleware.RequestID(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.Metrics(),
		middleware.ErrorLog(errorLogService),
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, auth.CookieOptions{Secure: cfg.IsProduction(), TTL: ttl})
	userHandler := user.NewHandler(userService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService)
	ojtHandler := ojt.NewHandler(ojtService)
	evaluationHandler := evaluation.NewHandler(evaluationService)
	reportHandler := report.NewHandler(reportService)
	predictionHandler := prediction.NewHandler(predictionService)
	chatbotHandler := chatbot.NewHandler(chatbotService)
	errorLogHandler := errorlog.NewHandler(errorLogService)
	rbacHandler := rbac.NewHandler(rbacService)
	healthHandler := health.NewHandler(db, rdb, clk)

	// --- Routes Registration ---
	health.RegisterRoutes(router, healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, rbacService, logger)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb)
		ojt.RegisterRoutes(api, ojtHandler, rbacService)
		evaluation.RegisterRoutes(api, evaluationHandler, rbacService, rdb)
		report.RegisterRoutes(api, reportHandler, rbacService)
		prediction.RegisterRoutes(api, predictionHandler, rbacService)
		chatbot.RegisterRoutes(api, chatbotHandler, rbacService)
		errorlog.RegisterRoutes(api, errorLogHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
