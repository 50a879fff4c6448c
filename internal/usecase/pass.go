package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/audit"
	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/platform/id"
	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
	"github.com/riskibarqy/esport-datanal/internal/provider"
)

const DefaultPassTimeout = 60 * time.Second

// passBudget bounds the wall time of one pass. It is checked between
// provider calls so a slow provider surfaces as ErrTimeoutExceeded.
type passBudget struct {
	deadline time.Time
	now      func() time.Time
}

func newPassBudget(now func() time.Time, timeout time.Duration) passBudget {
	if timeout <= 0 {
		return passBudget{now: now}
	}
	return passBudget{deadline: now().Add(timeout), now: now}
}

func (b passBudget) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return passError(err)
	}
	if !b.deadline.IsZero() && !b.now().Before(b.deadline) {
		return fmt.Errorf("%w: deadline %s", ErrTimeoutExceeded, b.deadline.UTC().Format(time.RFC3339))
	}
	return nil
}

// passTarget is a resolved (provider, game) pair with its tournament ids.
type passTarget struct {
	adapter       provider.Adapter
	game          esport.Game
	cfg           esport.GameConfig
	tournamentIDs []int64
}

func resolvePassTarget(
	ctx context.Context,
	registry *provider.Registry,
	settings *SettingsService,
	providerName, gameName string,
) (passTarget, error) {
	target, err := resolveGameTarget(registry, settings, providerName, gameName)
	if err != nil {
		return passTarget{}, err
	}
	ids, err := settings.TournamentIDs(ctx, target.game, target.adapter.Provider)
	if err != nil {
		return passTarget{}, err
	}
	target.tournamentIDs = ids
	return target, nil
}

// resolveGameTarget resolves the adapter and game config only; passes that
// never walk a listing skip the tournament lookup.
func resolveGameTarget(registry *provider.Registry, settings *SettingsService, providerName, gameName string) (passTarget, error) {
	adapter, err := registry.ResolveName(strings.TrimSpace(providerName))
	if err != nil {
		return passTarget{}, err
	}
	game, cfg, err := settings.GameConfig(strings.TrimSpace(gameName))
	if err != nil {
		return passTarget{}, err
	}
	return passTarget{adapter: adapter, game: game, cfg: cfg}, nil
}

func withRunID(ctx context.Context, ids id.Generator) (context.Context, string, error) {
	runID, err := ids.NewID()
	if err != nil {
		return ctx, "", fmt.Errorf("generate run id: %w", err)
	}
	return logging.ContextWithRunID(ctx, runID), runID, nil
}

// walkListing pages through every tournament scope of the listing and hands
// each match to fn.
func walkListing(
	ctx context.Context,
	budget passBudget,
	target passTarget,
	mode provider.ListMode,
	fn func(page provider.Page, match provider.Payload) error,
) error {
	source := target.adapter.Source
	for _, scope := range source.TournamentScopes(mode, target.tournamentIDs) {
		for pageNo := 1; ; pageNo++ {
			page, err := source.ListMatches(ctx, provider.ListQuery{
				Mode:          mode,
				Game:          target.cfg,
				TournamentIDs: scope,
				Page:          pageNo,
			})
			if err != nil {
				return fmt.Errorf("list matches page %d: %w", pageNo, err)
			}
			if err := budget.check(ctx); err != nil {
				return err
			}
			for _, match := range page.Matches {
				if err := fn(page, match); err != nil {
					return err
				}
			}
			if len(page.Matches) == 0 || page.LastPage <= pageNo {
				break
			}
		}
	}
	return nil
}

func containsID(ids []int64, target int64) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}

func isValidation(err error) bool {
	return errors.Is(err, provider.ErrValidation)
}

func recordInvalid(
	ctx context.Context,
	repo audit.Repository,
	scope audit.Scope,
	parentID *int64,
	sourceURL string,
	cause error,
	at time.Time,
) error {
	item := audit.Invalid{
		Scope:      scope,
		ParentID:   parentID,
		SourceURL:  sourceURL,
		Problem:    cause.Error(),
		InsertedAt: at,
	}
	if err := repo.Record(ctx, item); err != nil {
		return fmt.Errorf("record invalid payload: %w", err)
	}
	return nil
}
