package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/audit"
	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
	"github.com/riskibarqy/esport-datanal/internal/domain/snapshot"
	"github.com/riskibarqy/esport-datanal/internal/domain/watch"
	"github.com/riskibarqy/esport-datanal/internal/platform/id"
	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
	"github.com/riskibarqy/esport-datanal/internal/provider"
)

type DiscoverResult struct {
	RunID          string `json:"run_id"`
	Provider       string `json:"provider"`
	Game           string `json:"game"`
	MatchesListed  int    `json:"matches_listed"`
	MatchesSkipped int    `json:"matches_skipped"`
	MatchesInvalid int    `json:"matches_invalid"`
	GamesExisting  int    `json:"games_existing"`
	GamesWatched   int    `json:"games_watched"`
	GamesInvalid   int    `json:"games_invalid"`
}

type CollectResult struct {
	RunID           string                           `json:"run_id"`
	Provider        string                           `json:"provider"`
	Game            string                           `json:"game"`
	Watching        int                              `json:"watching"`
	Collected       int                              `json:"collected"`
	Invalid         int                              `json:"invalid"`
	Stopped         int                              `json:"stopped"`
	Classifications map[gamestats.Classification]int `json:"classifications"`
}

// WatcherService discovers finished games and polls them for stat
// corrections until their observation window closes.
type WatcherService struct {
	registry    *provider.Registry
	tx          Transactor
	settings    *SettingsService
	ids         id.Generator
	logger      *logging.Logger
	passTimeout time.Duration
	now         func() time.Time
}

func NewWatcherService(
	registry *provider.Registry,
	tx Transactor,
	settings *SettingsService,
	ids id.Generator,
	passTimeout time.Duration,
	logger *logging.Logger,
) *WatcherService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if passTimeout <= 0 {
		passTimeout = DefaultPassTimeout
	}
	return &WatcherService{
		registry:    registry,
		tx:          tx,
		settings:    settings,
		ids:         ids,
		logger:      logger,
		passTimeout: passTimeout,
		now:         time.Now,
	}
}

// WatchCurrentGames lists recently finished matches of the configured
// tournaments and starts watching every game not seen before.
func (s *WatcherService) WatchCurrentGames(ctx context.Context, providerName, gameName string) (DiscoverResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WatcherService.WatchCurrentGames", passAttributes(providerName, gameName)...)
	defer span.End()

	target, err := resolvePassTarget(ctx, s.registry, s.settings, providerName, gameName)
	if err != nil {
		return DiscoverResult{}, err
	}
	limit, err := s.settings.WatchLimit(ctx)
	if err != nil {
		return DiscoverResult{}, err
	}
	ctx, runID, err := withRunID(ctx, s.ids)
	if err != nil {
		return DiscoverResult{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.passTimeout)
	defer cancel()
	budget := newPassBudget(s.now, s.passTimeout)

	var result DiscoverResult
	err = s.tx.InTx(ctx, func(ctx context.Context, store Store) error {
		result = DiscoverResult{
			RunID:    runID,
			Provider: target.adapter.Provider.String(),
			Game:     target.game.String(),
		}
		return s.discover(ctx, store, budget, target, limit, &result)
	})
	if err != nil {
		err = passError(err)
		s.logger.WarnContext(ctx, "watch current games failed",
			"provider", target.adapter.Provider.String(),
			"game", target.game.String(),
			"error", err,
		)
		return DiscoverResult{}, fmt.Errorf("watch current games: %w", err)
	}

	s.logger.InfoContext(ctx, "watch current games completed",
		"provider", result.Provider,
		"game", result.Game,
		"matches_listed", result.MatchesListed,
		"games_watched", result.GamesWatched,
		"games_invalid", result.GamesInvalid,
	)
	return result, nil
}

func (s *WatcherService) discover(
	ctx context.Context,
	store Store,
	budget passBudget,
	target passTarget,
	limit time.Duration,
	result *DiscoverResult,
) error {
	adapter := target.adapter
	cutoff := s.now().Add(-limit)

	return walkListing(ctx, budget, target, provider.ListRecent, func(page provider.Page, match provider.Payload) error {
		result.MatchesListed++
		info := adapter.Reader.MatchInfo(match)
		if !containsID(target.tournamentIDs, info.TournamentRef) || info.EndAt == nil || info.EndAt.Before(cutoff) {
			result.MatchesSkipped++
			return nil
		}

		expanded, err := adapter.Source.ExpandMatch(ctx, target.cfg, match)
		if err != nil {
			return fmt.Errorf("expand match %d: %w", info.ExternalID, err)
		}
		if err := budget.check(ctx); err != nil {
			return err
		}
		if err := adapter.Validator.ValidateMatch(target.game, expanded.Body); err != nil {
			if !isValidation(err) {
				return err
			}
			result.MatchesInvalid++
			return recordInvalid(ctx, store.Audits(), audit.ScopeCurrent, nil, expanded.URL, err, s.now())
		}

		for _, ref := range adapter.Reader.Games(expanded.Body) {
			if err := s.watchGame(ctx, store, budget, target, page.URL, ref, result); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *WatcherService) watchGame(
	ctx context.Context,
	store Store,
	budget passBudget,
	target passTarget,
	listingURL string,
	ref provider.GameRef,
	result *DiscoverResult,
) error {
	adapter := target.adapter
	exists, err := store.Watches().ExistsActive(ctx, adapter.Provider, ref.ExternalID)
	if err != nil {
		return fmt.Errorf("check watch entry %d: %w", ref.ExternalID, err)
	}
	if exists {
		result.GamesExisting++
		return nil
	}

	entry := watch.Entry{
		Provider:        adapter.Provider,
		Game:            target.game,
		SourceURL:       listingURL,
		ExternalID:      ref.ExternalID,
		Title:           ref.Title,
		StartAt:         ref.StartAt,
		FinishAt:        ref.EndAt,
		TournamentID:    ref.TournamentID,
		TournamentTitle: ref.TournamentTitle,
		IsWatching:      true,
		InsertedAt:      s.now(),
	}
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: watch entry %d: %v", ErrInvalidInput, ref.ExternalID, err)
	}
	entryID, err := store.Watches().Insert(ctx, entry)
	switch {
	case errors.Is(err, watch.ErrAlreadyWatched):
		// a concurrent pass inserted it after ExistsActive
		result.GamesExisting++
		return nil
	case err != nil:
		return fmt.Errorf("insert watch entry %d: %w", ref.ExternalID, err)
	}
	result.GamesWatched++

	detail, err := adapter.Source.FetchGame(ctx, target.cfg, ref.ExternalID)
	if err != nil {
		return fmt.Errorf("fetch game %d: %w", ref.ExternalID, err)
	}
	if err := budget.check(ctx); err != nil {
		return err
	}
	if err := adapter.Validator.ValidateGame(target.game, ref.Match, detail.Body); err != nil {
		if !isValidation(err) {
			return err
		}
		result.GamesInvalid++
		if err := recordInvalid(ctx, store.Audits(), audit.ScopeCurrent, &entryID, detail.URL, err, s.now()); err != nil {
			return err
		}
		if err := store.Watches().Invalidate(ctx, entryID); err != nil {
			return fmt.Errorf("invalidate watch entry %d: %w", entryID, err)
		}
	}
	return nil
}

// CollectCurrentData polls every watched game once, stores the poll as a
// snapshot pair and keeps only what changed against the baseline.
func (s *WatcherService) CollectCurrentData(ctx context.Context, providerName, gameName string) (CollectResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WatcherService.CollectCurrentData", passAttributes(providerName, gameName)...)
	defer span.End()

	target, err := resolveGameTarget(s.registry, s.settings, providerName, gameName)
	if err != nil {
		return CollectResult{}, err
	}
	adapter, game := target.adapter, target.game
	limit, err := s.settings.WatchLimit(ctx)
	if err != nil {
		return CollectResult{}, err
	}
	ctx, runID, err := withRunID(ctx, s.ids)
	if err != nil {
		return CollectResult{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.passTimeout)
	defer cancel()
	budget := newPassBudget(s.now, s.passTimeout)

	var result CollectResult
	err = s.tx.InTx(ctx, func(ctx context.Context, store Store) error {
		result = CollectResult{
			RunID:           runID,
			Provider:        adapter.Provider.String(),
			Game:            game.String(),
			Classifications: make(map[gamestats.Classification]int, 3),
		}
		entries, err := store.Watches().ListWatching(ctx, adapter.Provider, game)
		if err != nil {
			return fmt.Errorf("list watching entries: %w", err)
		}
		result.Watching = len(entries)
		for _, entry := range entries {
			if err := s.collectEntry(ctx, store, budget, target, entry, limit, &result); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		err = passError(err)
		s.logger.WarnContext(ctx, "collect current data failed",
			"provider", adapter.Provider.String(),
			"game", game.String(),
			"error", err,
		)
		return CollectResult{}, fmt.Errorf("collect current data: %w", err)
	}

	s.logger.InfoContext(ctx, "collect current data completed",
		"provider", result.Provider,
		"game", result.Game,
		"watching", result.Watching,
		"collected", result.Collected,
		"stopped", result.Stopped,
	)
	return result, nil
}

func (s *WatcherService) collectEntry(
	ctx context.Context,
	store Store,
	budget passBudget,
	target passTarget,
	entry watch.Entry,
	limit time.Duration,
	result *CollectResult,
) error {
	adapter := target.adapter
	detail, err := adapter.Source.FetchGame(ctx, target.cfg, entry.ExternalID)
	if err != nil {
		return fmt.Errorf("fetch game %d: %w", entry.ExternalID, err)
	}
	if err := budget.check(ctx); err != nil {
		return err
	}

	teams, players, err := s.readGame(target, detail)
	switch {
	case err == nil:
		if err := s.storePoll(ctx, store.Snapshots(), entry.ID, detail.URL, teams, players, result); err != nil {
			return err
		}
	case isValidation(err):
		result.Invalid++
		if err := recordInvalid(ctx, store.Audits(), audit.ScopeCurrent, &entry.ID, detail.URL, err, s.now()); err != nil {
			return err
		}
	default:
		return err
	}

	if entry.WindowClosed(s.now(), limit) {
		if err := store.Watches().StopWatching(ctx, entry.ID); err != nil {
			return fmt.Errorf("stop watching entry %d: %w", entry.ID, err)
		}
		result.Stopped++
	}
	return nil
}

func (s *WatcherService) readGame(target passTarget, detail provider.Document) (gamestats.EntitySet, gamestats.EntitySet, error) {
	if err := target.adapter.Validator.ValidateGame(target.game, nil, detail.Body); err != nil {
		return nil, nil, err
	}
	return provider.Transform(target.adapter.Transformer, target.game, detail.Body)
}

func (s *WatcherService) storePoll(
	ctx context.Context,
	repo snapshot.Repository,
	watchID int64,
	sourceURL string,
	teams, players gamestats.EntitySet,
	result *CollectResult,
) error {
	pair, err := repo.CreatePair(ctx, watchID, s.now())
	if err != nil {
		return fmt.Errorf("create snapshot pair for entry %d: %w", watchID, err)
	}
	for _, side := range []gamestats.Side{gamestats.SideStats, gamestats.SideUnchanged} {
		if err := repo.InsertRows(ctx, side, pair.ParentID(side), gamestats.KindTeam, sourceURL, teams); err != nil {
			return fmt.Errorf("insert %s team rows: %w", side, err)
		}
		if err := repo.InsertRows(ctx, side, pair.ParentID(side), gamestats.KindPlayer, sourceURL, players); err != nil {
			return fmt.Errorf("insert %s player rows: %w", side, err)
		}
	}

	baseline, err := repo.Baseline(ctx, watchID, pair.SnapshotID)
	if err != nil {
		return fmt.Errorf("load baseline for entry %d: %w", watchID, err)
	}
	outcome := gamestats.Classify(baseline, teams, players)
	if err := applyPlan(ctx, repo, pair, outcome.Plan()); err != nil {
		return err
	}

	result.Collected++
	result.Classifications[outcome.Classification]++
	return nil
}

// applyPlan deletes whatever the poll's classification says is redundant.
func applyPlan(ctx context.Context, repo snapshot.Repository, pair snapshot.Pair, plan gamestats.Plan) error {
	if plan.DeleteMarker {
		if err := repo.DeleteMarker(ctx, pair.MarkerID); err != nil {
			return fmt.Errorf("delete unchanged marker %d: %w", pair.MarkerID, err)
		}
	}
	if plan.DeleteSnapshot {
		if err := repo.DeleteSnapshot(ctx, pair.SnapshotID); err != nil {
			return fmt.Errorf("delete stats snapshot %d: %w", pair.SnapshotID, err)
		}
	}
	for _, prune := range plan.Prune {
		if err := repo.DeleteEntityRow(ctx, prune.Side, pair.ParentID(prune.Side), prune.Kind, prune.EntityID); err != nil {
			return fmt.Errorf("prune %s %s row %d: %w", prune.Side, prune.Kind, prune.EntityID, err)
		}
	}
	return nil
}
