package backfill

import (
	"context"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
)

type Repository interface {
	// Reset wipes past games of (provider, game) with their rows and zeroes
	// the stored counters.
	Reset(ctx context.Context, provider esport.Provider, game esport.Game) error
	FindByExternalID(ctx context.Context, provider esport.Provider, externalID int64) (Game, bool, error)
	Insert(ctx context.Context, item Game) (int64, error)
	Update(ctx context.Context, id int64, item Game, columns []string, at time.Time) error
	// ReplaceStats swaps the team and player rows of a past game.
	ReplaceStats(ctx context.Context, gameID int64, sourceURL string, teams, players gamestats.EntitySet) error
	AccumulateSummary(ctx context.Context, pass Summary, at time.Time) error
	GetSummary(ctx context.Context, provider esport.Provider, game esport.Game) (Summary, bool, error)
}
