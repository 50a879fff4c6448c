package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/esport-datanal/internal/app"
	"github.com/riskibarqy/esport-datanal/internal/config"
	"github.com/riskibarqy/esport-datanal/internal/observability"
	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName+"-scheduler", "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	telemetry, err := observability.Start(cfg, "scheduler", logger)
	if err != nil {
		logger.Error("start telemetry", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	scheduler, err := application.NewScheduler(ctx)
	if err != nil {
		logger.Error("build scheduler", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	logger.Info("scheduler started",
		"watch_spec", cfg.ScheduleWatchSpec,
		"analyze_spec", cfg.ScheduleAnalyzeSpec,
	)

	<-ctx.Done()

	// Wait for running jobs; their ctx is already cancelled.
	<-scheduler.Stop().Done()
	if err := application.Close(); err != nil {
		logger.Error("close app resources", "error", err)
	}
	if err := telemetry.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown telemetry", "error", err)
	}
	logger.Info("scheduler stopped")
}
