package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
	"github.com/riskibarqy/esport-datanal/internal/usecase"
)

var schedulerTracer = otel.Tracer("esport-datanal/internal/app")

// cronLogger adapts logging.Logger to cron.Logger.
type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}

// NewScheduler registers the watch cycle and the analyzer on their cron
// specs. Overlapping runs of the same job are skipped.
func (a *App) NewScheduler(ctx context.Context) (*cron.Cron, error) {
	logger := a.logger.Named("scheduler")
	cl := cronLogger{logger: logger}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	if _, err := c.AddFunc(a.Config.ScheduleWatchSpec, func() { a.runWatchCycle(ctx, logger) }); err != nil {
		return nil, fmt.Errorf("schedule watch cycle %q: %w", a.Config.ScheduleWatchSpec, err)
	}
	if _, err := c.AddFunc(a.Config.ScheduleAnalyzeSpec, func() { a.runAnalyzer(ctx, logger) }); err != nil {
		return nil, fmt.Errorf("schedule analyzer %q: %w", a.Config.ScheduleAnalyzeSpec, err)
	}
	return c, nil
}

func (a *App) runWatchCycle(ctx context.Context, logger *logging.Logger) {
	ctx, span := schedulerTracer.Start(ctx, "scheduler.watch_cycle", trace.WithNewRoot())
	defer span.End()

	result, err := a.Services.Cycle.RunWatchCycle(ctx, nil)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "watch cycle failed", "error", err)
		return
	}
	logger.InfoContext(ctx, "watch cycle finished",
		"target_count", result.TargetCount,
		"success_count", result.SuccessCount,
		"skipped_count", result.SkippedCount,
		"failed_count", result.FailedCount,
	)
}

func (a *App) runAnalyzer(ctx context.Context, logger *logging.Logger) {
	ctx, span := schedulerTracer.Start(ctx, "scheduler.analyze", trace.WithNewRoot())
	defer span.End()

	for _, target := range a.Services.Cycle.DefaultTargets() {
		if ctx.Err() != nil {
			return
		}
		report, err := a.Services.Analyzer.Analyze(ctx, target.Provider, target.Game, usecase.AnalyzeInput{})
		switch {
		case errors.Is(err, usecase.ErrNothingToAnalyze):
			logger.DebugContext(ctx, "nothing to analyze", "provider", target.Provider, "game", target.Game)
		case err != nil:
			logger.WarnContext(ctx, "analyze failed", "provider", target.Provider, "game", target.Game, "error", err)
		default:
			logger.InfoContext(ctx, "analysis stored",
				"provider", target.Provider,
				"game", target.Game,
				"games_watch_count", report.GamesWatchCount,
			)
		}
	}
}
