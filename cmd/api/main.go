package main

import (
	"log"
	"time"

	"github.com/hxben0103/ojt-ai-system/internal/app"
	"github.com/hxben0103/ojt-ai-system/internal/bootstrap"
	"github.com/hxben0103/ojt-ai-system/internal/config"
	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := bootstrap.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	apperror.Init()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	infra, err := app.BuildApp(r, cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer infra.Close()

	err = bootstrap.StartHTTPServer(r, bootstrap.ServerConfig{
		Port:            cfg.Port,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    20 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 15 * time.Second,
	}, bootstrap.NewStdoutAuditLogger())
	if err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}
