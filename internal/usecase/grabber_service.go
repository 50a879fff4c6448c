package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/audit"
	"github.com/riskibarqy/esport-datanal/internal/domain/backfill"
	"github.com/riskibarqy/esport-datanal/internal/platform/id"
	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
	"github.com/riskibarqy/esport-datanal/internal/provider"
)

type GrabInput struct {
	DateFrom  string
	DateTo    string
	DeleteOld bool
}

type GrabResult struct {
	RunID string           `json:"run_id"`
	Pass  backfill.Summary `json:"pass"`
	Total backfill.Summary `json:"total"`
}

// GrabberService backfills historical games of the configured tournaments.
type GrabberService struct {
	registry    *provider.Registry
	tx          Transactor
	settings    *SettingsService
	ids         id.Generator
	logger      *logging.Logger
	passTimeout time.Duration
	now         func() time.Time
}

// NewGrabberService builds the backfill service. passTimeout bounds a whole
// grab; zero disables the bound since history walks are long.
func NewGrabberService(
	registry *provider.Registry,
	tx Transactor,
	settings *SettingsService,
	ids id.Generator,
	passTimeout time.Duration,
	logger *logging.Logger,
) *GrabberService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &GrabberService{
		registry:    registry,
		tx:          tx,
		settings:    settings,
		ids:         ids,
		logger:      logger,
		passTimeout: passTimeout,
		now:         time.Now,
	}
}

func (s *GrabberService) GrabPastData(ctx context.Context, providerName, gameName string, input GrabInput) (GrabResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GrabberService.GrabPastData", passAttributes(providerName, gameName)...)
	defer span.End()

	target, err := resolvePassTarget(ctx, s.registry, s.settings, providerName, gameName)
	if err != nil {
		return GrabResult{}, err
	}
	dates, err := backfill.ParseDateRange(input.DateFrom, input.DateTo)
	if err != nil {
		return GrabResult{}, fmt.Errorf("%w: date range: %v", ErrInvalidInput, err)
	}
	ctx, runID, err := withRunID(ctx, s.ids)
	if err != nil {
		return GrabResult{}, err
	}
	if s.passTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.passTimeout)
		defer cancel()
	}
	budget := newPassBudget(s.now, s.passTimeout)

	var result GrabResult
	err = s.tx.InTx(ctx, func(ctx context.Context, store Store) error {
		repo := store.Backfill()
		if input.DeleteOld {
			if err := repo.Reset(ctx, target.adapter.Provider, target.game); err != nil {
				return fmt.Errorf("reset past data: %w", err)
			}
		}

		pass := backfill.Summary{Provider: target.adapter.Provider, Game: target.game}
		err := walkListing(ctx, budget, target, provider.ListHistory, func(page provider.Page, match provider.Payload) error {
			return s.grabMatch(ctx, store, budget, target, dates, page.URL, match, &pass)
		})
		if err != nil {
			return err
		}
		pass.Finalize(target.cfg)

		at := s.now()
		if err := repo.AccumulateSummary(ctx, pass, at); err != nil {
			return fmt.Errorf("accumulate past summary: %w", err)
		}
		total, _, err := repo.GetSummary(ctx, target.adapter.Provider, target.game)
		if err != nil {
			return fmt.Errorf("get past summary: %w", err)
		}
		pass.UpdatedAt = &at
		result = GrabResult{RunID: runID, Pass: pass, Total: total}
		return nil
	})
	if err != nil {
		err = passError(err)
		s.logger.WarnContext(ctx, "grab past data failed",
			"provider", target.adapter.Provider.String(),
			"game", target.game.String(),
			"error", err,
		)
		return GrabResult{}, fmt.Errorf("grab past data: %w", err)
	}

	s.logger.InfoContext(ctx, "grab past data completed",
		"provider", target.adapter.Provider.String(),
		"game", target.game.String(),
		"matches_total", result.Pass.MatchesTotal,
		"games_total", result.Pass.GamesTotal,
		"games_invalid", result.Pass.GamesInvalid,
	)
	return result, nil
}

func (s *GrabberService) grabMatch(
	ctx context.Context,
	store Store,
	budget passBudget,
	target passTarget,
	dates backfill.DateRange,
	listingURL string,
	match provider.Payload,
	pass *backfill.Summary,
) error {
	adapter := target.adapter
	info := adapter.Reader.MatchInfo(match)
	if !containsID(target.tournamentIDs, info.TournamentRef) || dates.Excludes(info.StartAt, info.EndAt) {
		return nil
	}
	pass.MatchesTotal++

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
		pass.MatchesInvalid++
		return recordInvalid(ctx, store.Audits(), audit.ScopePast, nil, expanded.URL, err, s.now())
	}

	for _, ref := range adapter.Reader.Games(expanded.Body) {
		if err := s.grabGame(ctx, store, budget, target, listingURL, ref, pass); err != nil {
			return err
		}
	}
	return nil
}

func (s *GrabberService) grabGame(
	ctx context.Context,
	store Store,
	budget passBudget,
	target passTarget,
	listingURL string,
	ref provider.GameRef,
	pass *backfill.Summary,
) error {
	adapter := target.adapter
	repo := store.Backfill()
	pass.GamesTotal++

	incoming := backfill.Game{
		Provider:        adapter.Provider,
		Game:            target.game,
		SourceURL:       listingURL,
		ExternalID:      ref.ExternalID,
		Title:           ref.Title,
		StartAt:         ref.StartAt,
		FinishAt:        ref.EndAt,
		TournamentID:    ref.TournamentID,
		TournamentTitle: ref.TournamentTitle,
		InsertedAt:      s.now(),
	}
	gameID, err := s.upsertGame(ctx, repo, incoming)
	if err != nil {
		return err
	}

	detail, err := adapter.Source.FetchGame(ctx, target.cfg, ref.ExternalID)
	if err != nil {
		return fmt.Errorf("fetch game %d: %w", ref.ExternalID, err)
	}
	if err := budget.check(ctx); err != nil {
		return err
	}

	err = adapter.Validator.ValidateGame(target.game, ref.Match, detail.Body)
	if err == nil {
		teams, players, transformErr := provider.Transform(adapter.Transformer, target.game, detail.Body)
		if transformErr == nil {
			if err := repo.ReplaceStats(ctx, gameID, detail.URL, teams, players); err != nil {
				return fmt.Errorf("replace stats of past game %d: %w", gameID, err)
			}
			pass.AddUnavailable(teams.CountUnavailable() + players.CountUnavailable())
			return nil
		}
		err = transformErr
	}
	if !isValidation(err) {
		return err
	}
	pass.GamesInvalid++
	return recordInvalid(ctx, store.Audits(), audit.ScopePast, &gameID, detail.URL, err, s.now())
}

// upsertGame inserts a new past game or rewrites only the changed columns of
// a stored one.
func (s *GrabberService) upsertGame(ctx context.Context, repo backfill.Repository, incoming backfill.Game) (int64, error) {
	stored, found, err := repo.FindByExternalID(ctx, incoming.Provider, incoming.ExternalID)
	if err != nil {
		return 0, fmt.Errorf("find past game %d: %w", incoming.ExternalID, err)
	}
	if !found {
		gameID, err := repo.Insert(ctx, incoming)
		if err != nil {
			return 0, fmt.Errorf("insert past game %d: %w", incoming.ExternalID, err)
		}
		return gameID, nil
	}

	if columns := backfill.Delta(stored, incoming); len(columns) > 0 {
		if err := repo.Update(ctx, stored.ID, incoming, columns, s.now()); err != nil {
			return 0, fmt.Errorf("update past game %d: %w", stored.ID, err)
		}
	}
	return stored.ID, nil
}
