package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/tournament"
)

const DefaultWatchLimitMinutes = 20

// WatchLimitStore persists the observation window length in minutes.
type WatchLimitStore interface {
	GetWatchLimit(ctx context.Context) (minutes int, found bool, err error)
	SaveWatchLimit(ctx context.Context, minutes int) error
}

type SettingsService struct {
	limits       WatchLimitStore
	tournaments  tournament.Repository
	games        esport.GameConfigs
	defaultLimit int
}

func NewSettingsService(
	limits WatchLimitStore,
	tournaments tournament.Repository,
	games esport.GameConfigs,
	defaultLimit int,
) *SettingsService {
	if games == nil {
		games = esport.DefaultGameConfigs()
	}
	if defaultLimit <= 0 {
		defaultLimit = DefaultWatchLimitMinutes
	}
	return &SettingsService{
		limits:       limits,
		tournaments:  tournaments,
		games:        games,
		defaultLimit: defaultLimit,
	}
}

// GameConfig parses gameName and returns its configuration.
func (s *SettingsService) GameConfig(gameName string) (esport.Game, esport.GameConfig, error) {
	game, err := esport.ParseGame(gameName)
	if err != nil {
		return "", esport.GameConfig{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	cfg, err := s.games.Get(game)
	if err != nil {
		return "", esport.GameConfig{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return game, cfg, nil
}

func (s *SettingsService) Games() []esport.Game {
	return s.games.Games()
}

func (s *SettingsService) GetWatchLimitMinutes(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.GetWatchLimitMinutes")
	defer span.End()

	minutes, found, err := s.limits.GetWatchLimit(ctx)
	if err != nil {
		return 0, fmt.Errorf("get watch limit: %w", err)
	}
	if !found || minutes <= 0 {
		return s.defaultLimit, nil
	}
	return minutes, nil
}

func (s *SettingsService) WatchLimit(ctx context.Context) (time.Duration, error) {
	minutes, err := s.GetWatchLimitMinutes(ctx)
	if err != nil {
		return 0, err
	}
	return time.Duration(minutes) * time.Minute, nil
}

func (s *SettingsService) SetWatchLimitMinutes(ctx context.Context, minutes int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.SetWatchLimitMinutes")
	defer span.End()

	if minutes <= 0 {
		return fmt.Errorf("%w: watch limit must be > 0 minutes", ErrInvalidInput)
	}
	if err := s.limits.SaveWatchLimit(ctx, minutes); err != nil {
		return fmt.Errorf("save watch limit: %w", err)
	}
	return nil
}

func (s *SettingsService) ListTournaments(ctx context.Context, gameName string) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.ListTournaments")
	defer span.End()

	game, _, err := s.GameConfig(gameName)
	if err != nil {
		return nil, err
	}
	items, err := s.tournaments.ListByGame(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return items, nil
}

func (s *SettingsService) ReplaceTournaments(ctx context.Context, gameName string, items []tournament.Tournament) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.ReplaceTournaments")
	defer span.End()

	game, _, err := s.GameConfig(gameName)
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if _, ok := seen[item.ID]; ok {
			return fmt.Errorf("%w: duplicate tournament id %s", ErrInvalidInput, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	if err := s.tournaments.ReplaceByGame(ctx, game, items); err != nil {
		return fmt.Errorf("replace tournaments: %w", err)
	}
	return nil
}

// TournamentIDs returns the configured tournament ids of game for p.
func (s *SettingsService) TournamentIDs(ctx context.Context, game esport.Game, p esport.Provider) ([]int64, error) {
	items, err := s.tournaments.ListByGame(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	ids := tournament.ProviderIDs(items, p)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s has no %s tournaments", ErrNoTournaments, game, p)
	}
	return ids, nil
}
