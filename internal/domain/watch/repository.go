package watch

import (
	"context"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
)

type Repository interface {
	// ExistsActive reports a non-deleted entry for the provider's external id.
	ExistsActive(ctx context.Context, provider esport.Provider, externalID int64) (bool, error)
	Insert(ctx context.Context, entry Entry) (int64, error)
	Invalidate(ctx context.Context, id int64) error
	StopWatching(ctx context.Context, id int64) error
	ListWatching(ctx context.Context, provider esport.Provider, game esport.Game) ([]Entry, error)
	// ListActive returns non-deleted entries, optionally narrowed to one tournament.
	ListActive(ctx context.Context, provider esport.Provider, game esport.Game, tournamentID *int64) ([]Entry, error)
}
