package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/watch"
)

type watchRepository struct {
	st *state
}

func (r watchRepository) ExistsActive(_ context.Context, provider esport.Provider, externalID int64) (bool, error) {
	for _, entry := range r.st.watches {
		if entry.Provider == provider && entry.ExternalID == externalID && !entry.IsDeleted {
			return true, nil
		}
	}
	return false, nil
}

func (r watchRepository) Insert(ctx context.Context, entry watch.Entry) (int64, error) {
	if exists, _ := r.ExistsActive(ctx, entry.Provider, entry.ExternalID); exists && !entry.IsDeleted {
		return 0, fmt.Errorf("insert watch %s/%d: %w", entry.Provider, entry.ExternalID, watch.ErrAlreadyWatched)
	}
	entry.ID = r.st.nextID()
	r.st.watches[entry.ID] = entry
	return entry.ID, nil
}

func (r watchRepository) Invalidate(_ context.Context, id int64) error {
	entry, ok := r.st.watches[id]
	if !ok {
		return fmt.Errorf("watch entry %d not found", id)
	}
	entry.IsDeleted = true
	entry.IsWatching = false
	r.st.watches[id] = entry
	return nil
}

func (r watchRepository) StopWatching(_ context.Context, id int64) error {
	entry, ok := r.st.watches[id]
	if !ok {
		return fmt.Errorf("watch entry %d not found", id)
	}
	entry.IsWatching = false
	r.st.watches[id] = entry
	return nil
}

func (r watchRepository) ListWatching(_ context.Context, provider esport.Provider, game esport.Game) ([]watch.Entry, error) {
	return r.list(func(e watch.Entry) bool {
		return e.Provider == provider && e.Game == game && e.IsWatching && !e.IsDeleted
	}), nil
}

func (r watchRepository) ListActive(_ context.Context, provider esport.Provider, game esport.Game, tournamentID *int64) ([]watch.Entry, error) {
	return r.list(func(e watch.Entry) bool {
		if e.Provider != provider || e.Game != game || e.IsDeleted {
			return false
		}
		return tournamentID == nil || e.TournamentID == *tournamentID
	}), nil
}

func (r watchRepository) list(keep func(watch.Entry) bool) []watch.Entry {
	out := make([]watch.Entry, 0)
	for _, entry := range r.st.watches {
		if keep(entry) {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
