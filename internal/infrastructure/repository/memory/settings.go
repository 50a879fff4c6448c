package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/tournament"
)

type WatchLimitStore struct {
	mu      sync.RWMutex
	minutes int
}

func NewWatchLimitStore(minutes int) *WatchLimitStore {
	return &WatchLimitStore{minutes: minutes}
}

func (s *WatchLimitStore) GetWatchLimit(_ context.Context) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minutes, s.minutes > 0, nil
}

func (s *WatchLimitStore) SaveWatchLimit(_ context.Context, minutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minutes = minutes
	return nil
}

type TournamentRepository struct {
	mu    sync.RWMutex
	items map[esport.Game][]tournament.Tournament
}

func NewTournamentRepository(items map[esport.Game][]tournament.Tournament) *TournamentRepository {
	copied := make(map[esport.Game][]tournament.Tournament, len(items))
	for game, list := range items {
		copied[game] = append([]tournament.Tournament(nil), list...)
	}
	return &TournamentRepository{items: copied}
}

func (r *TournamentRepository) ListByGame(_ context.Context, game esport.Game) ([]tournament.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]tournament.Tournament(nil), r.items[game]...), nil
}

func (r *TournamentRepository) ReplaceByGame(_ context.Context, game esport.Game, items []tournament.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[game] = append([]tournament.Tournament(nil), items...)
	return nil
}
