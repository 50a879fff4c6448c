package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
	"github.com/riskibarqy/esport-datanal/internal/provider"
)

const (
	cycleStatusSuccess = "success"
	cycleStatusSkipped = "skipped"
	cycleStatusFailed  = "failed"
)

type CycleTarget struct {
	Provider string `json:"provider"`
	Game     string `json:"game"`
}

type CycleTargetResult struct {
	Provider   string          `json:"provider"`
	Game       string          `json:"game"`
	Status     string          `json:"status"`
	Message    string          `json:"message,omitempty"`
	Discover   *DiscoverResult `json:"discover,omitempty"`
	Collect    *CollectResult  `json:"collect,omitempty"`
	DurationMs int64           `json:"duration_ms"`
}

type CycleResult struct {
	TargetCount  int                 `json:"target_count"`
	SuccessCount int                 `json:"success_count"`
	SkippedCount int                 `json:"skipped_count"`
	FailedCount  int                 `json:"failed_count"`
	Targets      []CycleTargetResult `json:"targets"`
}

// CycleService runs one discover pass followed by one collect pass for each
// (provider, game) target, spread over a worker pool.
type CycleService struct {
	watcher  *WatcherService
	registry *provider.Registry
	settings *SettingsService
	workers  int
	logger   *logging.Logger

	poolOptions []ants.Option
}

func NewCycleService(
	watcher *WatcherService,
	registry *provider.Registry,
	settings *SettingsService,
	workers int,
	logger *logging.Logger,
) *CycleService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = 4
	}
	return &CycleService{
		watcher:  watcher,
		registry: registry,
		settings: settings,
		workers:  workers,
		logger:   logger,
	}
}

// DefaultTargets pairs every registered provider with every configured game.
func (s *CycleService) DefaultTargets() []CycleTarget {
	providers := s.registry.Providers()
	games := s.settings.Games()
	out := make([]CycleTarget, 0, len(providers)*len(games))
	for _, p := range providers {
		for _, g := range games {
			out = append(out, CycleTarget{Provider: p.String(), Game: g.String()})
		}
	}
	return out
}

// RunWatchCycle runs the targets, or DefaultTargets when none are given.
// Targets without tournaments are skipped; other failures are reported per
// target and never stop the cycle.
func (s *CycleService) RunWatchCycle(ctx context.Context, targets []CycleTarget) (CycleResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CycleService.RunWatchCycle")
	defer span.End()

	if len(targets) == 0 {
		targets = s.DefaultTargets()
	}
	result := CycleResult{TargetCount: len(targets)}
	if len(targets) == 0 {
		return result, nil
	}

	workerCount := s.workers
	if workerCount > len(targets) {
		workerCount = len(targets)
	}

	results := make(chan CycleTargetResult, len(targets))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	pool, err := ants.NewPool(workerCount, s.poolOptions...)
	if err != nil {
		return CycleResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, target := range targets {
		target := target
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := s.runTarget(ctx, target)
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case cycleStatusSuccess:
				successCount.Add(1)
			case cycleStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			// targets already submitted still write to results and the store
			workers.Wait()
			return CycleResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Targets = append(result.Targets, row)
	}
	sort.SliceStable(result.Targets, func(i, j int) bool {
		if result.Targets[i].Provider != result.Targets[j].Provider {
			return result.Targets[i].Provider < result.Targets[j].Provider
		}
		return result.Targets[i].Game < result.Targets[j].Game
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())

	s.logger.InfoContext(ctx, "watch cycle completed",
		"target_count", result.TargetCount,
		"success_count", result.SuccessCount,
		"skipped_count", result.SkippedCount,
		"failed_count", result.FailedCount,
	)
	return result, nil
}

func (s *CycleService) runTarget(ctx context.Context, target CycleTarget) CycleTargetResult {
	row := CycleTargetResult{Provider: target.Provider, Game: target.Game}

	discover, err := s.watcher.WatchCurrentGames(ctx, target.Provider, target.Game)
	switch {
	case errors.Is(err, ErrNoTournaments):
		row.Status = cycleStatusSkipped
		row.Message = err.Error()
		return row
	case err != nil:
		row.Status = cycleStatusFailed
		row.Message = err.Error()
		return row
	}
	row.Discover = &discover

	collect, err := s.watcher.CollectCurrentData(ctx, target.Provider, target.Game)
	if err != nil {
		row.Status = cycleStatusFailed
		row.Message = err.Error()
		return row
	}
	row.Collect = &collect
	row.Status = cycleStatusSuccess
	return row
}
