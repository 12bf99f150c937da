package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"go.uber.org/zap"

	"github.com/dlwlehd/geultto-challenge-bot/config"
	"github.com/dlwlehd/geultto-challenge-bot/internal/handler"
	"github.com/dlwlehd/geultto-challenge-bot/internal/router"
	"github.com/dlwlehd/geultto-challenge-bot/internal/schedule"
	"github.com/dlwlehd/geultto-challenge-bot/internal/service"
	"github.com/dlwlehd/geultto-challenge-bot/pkg/logger"
	"github.com/dlwlehd/geultto-challenge-bot/pkg/snowflake"
	"github.com/dlwlehd/geultto-challenge-bot/storage"
)

func main() {
	logger.Init()
	defer logger.Sync()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake generator", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, err := storage.Init(ctx, config.Cfg.DataDir)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close(stores)

	resetHours := service.NewResetHour(stores)
	checkins := service.NewCheckin(stores, resetHours)

	// 스위퍼는 별도 바이너리 없이 서버 프로세스 안에서 돈다.
	// 개발 환경에서는 동작 확인이 쉽도록 짧은 주기를 쓴다.
	sweepInterval := config.Cfg.ResetSweepInterval
	if config.Cfg.IsDevelopment() {
		sweepInterval = time.Minute
	}
	sweeper := schedule.NewResetSweeper(resetHours, sweepInterval)
	go sweeper.Run(ctx)

	addr := fmt.Sprintf("%s:%s", config.Cfg.ServerHost, config.Cfg.ServerPort)
	h := server.Default(
		server.WithHostPorts(addr),
		server.WithExitWaitTime(5*time.Second),
	)

	router.Register(h,
		handler.NewCheckinHandler(checkins),
		handler.NewResetHourHandler(resetHours),
	)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit

		logger.Logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = h.Shutdown(shutdownCtx)
	}()

	logger.Logger.Info("Server starting",
		zap.String("service", config.Cfg.ServiceName),
		zap.String("addr", addr),
		zap.String("environment", config.Cfg.Environment),
		zap.Duration("sweep_interval", sweepInterval),
	)

	h.Spin()

	logger.Logger.Info("Server stopped")
}
