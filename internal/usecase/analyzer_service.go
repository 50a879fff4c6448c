package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/analysis"
	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
	"github.com/riskibarqy/esport-datanal/internal/domain/snapshot"
	"github.com/riskibarqy/esport-datanal/internal/domain/watch"
	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
	"github.com/riskibarqy/esport-datanal/internal/provider"
)

type AnalyzeInput struct {
	TournamentID *int64
}

// AnalyzerService reports how often and how late providers corrected the
// stats of watched games.
type AnalyzerService struct {
	registry *provider.Registry
	tx       Transactor
	settings *SettingsService
	logger   *logging.Logger
	now      func() time.Time
}

func NewAnalyzerService(
	registry *provider.Registry,
	tx Transactor,
	settings *SettingsService,
	logger *logging.Logger,
) *AnalyzerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AnalyzerService{
		registry: registry,
		tx:       tx,
		settings: settings,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AnalyzerService) Analyze(ctx context.Context, providerName, gameName string, input AnalyzeInput) (analysis.Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyzerService.Analyze", passAttributes(providerName, gameName)...)
	defer span.End()

	adapter, err := s.registry.ResolveName(providerName)
	if err != nil {
		return analysis.Report{}, err
	}
	game, cfg, err := s.settings.GameConfig(gameName)
	if err != nil {
		return analysis.Report{}, err
	}

	var report analysis.Report
	err = s.tx.InTx(ctx, func(ctx context.Context, store Store) error {
		entries, err := store.Watches().ListActive(ctx, adapter.Provider, game, input.TournamentID)
		if err != nil {
			return fmt.Errorf("list watched games: %w", err)
		}

		histories := make([]analysis.GameHistory, 0, len(entries))
		for _, entry := range entries {
			history, err := loadHistory(ctx, store.Snapshots(), entry)
			if err != nil {
				return err
			}
			histories = append(histories, history)
		}

		computed, err := analysis.Compute(histories, cfg.Datapoints)
		if err != nil {
			if errors.Is(err, analysis.ErrNoWatchedGames) || errors.Is(err, analysis.ErrNoStats) {
				return fmt.Errorf("%w: %v", ErrNothingToAnalyze, err)
			}
			return err
		}
		computed.Provider = adapter.Provider
		computed.Game = game
		computed.TournamentID = input.TournamentID
		computed.UpdatedAt = s.now().UTC()

		if err := store.Analyses().Save(ctx, computed); err != nil {
			return fmt.Errorf("save analysis: %w", err)
		}
		report = computed
		return nil
	})
	if err != nil {
		return analysis.Report{}, fmt.Errorf("analyze %s %s: %w", adapter.Provider, game, err)
	}

	s.logger.InfoContext(ctx, "analysis completed",
		"provider", adapter.Provider.String(),
		"game", game.String(),
		"games_watch_count", report.GamesWatchCount,
		"games_corrected_count", report.GamesCorrectedCount,
	)
	return report, nil
}

// loadHistory replays the retained snapshots of entry in order and counts
// the datapoints each one changed against the data known before it.
func loadHistory(ctx context.Context, repo snapshot.Repository, entry watch.Entry) (analysis.GameHistory, error) {
	history := analysis.GameHistory{WatchID: entry.ID, FinishAt: entry.FinishAt}

	snapshots, err := repo.ListSnapshots(ctx, entry.ID)
	if err != nil {
		return history, fmt.Errorf("list snapshots of entry %d: %w", entry.ID, err)
	}
	if len(snapshots) == 0 {
		return history, nil
	}

	ids := make([]int64, 0, len(snapshots))
	for _, snap := range snapshots {
		ids = append(ids, snap.ID)
	}

	changes := make(map[int64]int, len(snapshots))
	for _, kind := range []gamestats.EntityKind{gamestats.KindTeam, gamestats.KindPlayer} {
		rows, err := repo.ListStatsRows(ctx, ids, kind)
		if err != nil {
			return history, fmt.Errorf("list %s rows of entry %d: %w", kind, entry.ID, err)
		}
		bySnapshot := make(map[int64]gamestats.EntitySet, len(snapshots))
		for _, row := range rows {
			set := bySnapshot[row.ParentID]
			if set == nil {
				set = gamestats.EntitySet{}
				bySnapshot[row.ParentID] = set
			}
			set[row.EntityID] = row.Values
		}

		known := gamestats.EntitySet{}
		for _, snap := range snapshots {
			current := bySnapshot[snap.ID]
			for _, n := range gamestats.CountChanges(kind.Fields(), known, current) {
				changes[snap.ID] += n
			}
			for entityID, values := range current {
				known[entityID] = values
			}
		}
	}

	history.Snapshots = make([]analysis.SnapshotStat, 0, len(snapshots))
	for _, snap := range snapshots {
		history.Snapshots = append(history.Snapshots, analysis.SnapshotStat{
			ID:         snap.ID,
			InsertedAt: snap.InsertedAt,
			Changes:    changes[snap.ID],
		})
	}
	return history, nil
}
