package main

import (
	"log"

	"github.com/hxben0103/ojt-ai-system/internal/app"
	"github.com/hxben0103/ojt-ai-system/internal/bootstrap"
	"github.com/hxben0103/ojt-ai-system/internal/config"
	"github.com/hxben0103/ojt-ai-system/internal/shared/apperror"

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

	apperror.Init()

	if err := app.RunWorker(cfg); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
