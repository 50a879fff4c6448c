// Package cache decorates settings repositories with read-through caching.
package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/tournament"
	basecache "github.com/riskibarqy/esport-datanal/internal/platform/cache"
	"github.com/riskibarqy/esport-datanal/internal/usecase"
)

type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store[[]tournament.Tournament]
}

// NewTournamentRepository caches ListByGame per game until the next
// ReplaceByGame of that game. A zero ttl keeps entries until replaced.
func NewTournamentRepository(next tournament.Repository, ttl time.Duration) *TournamentRepository {
	return &TournamentRepository{next: next, cache: basecache.NewStore[[]tournament.Tournament](ttl)}
}

func (r *TournamentRepository) ListByGame(ctx context.Context, game esport.Game) ([]tournament.Tournament, error) {
	items, err := r.cache.GetOrLoad(ctx, "tournament:list:"+game.String(), func(ctx context.Context) ([]tournament.Tournament, error) {
		items, err := r.next.ListByGame(ctx, game)
		if err != nil {
			return nil, err
		}
		return append([]tournament.Tournament(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]tournament.Tournament(nil), items...), nil
}

func (r *TournamentRepository) ReplaceByGame(ctx context.Context, game esport.Game, items []tournament.Tournament) error {
	defer r.cache.Delete(ctx, "tournament:list:"+game.String())
	return r.next.ReplaceByGame(ctx, game, items)
}

type cachedWatchLimit struct {
	minutes int
	found   bool
}

type WatchLimitStore struct {
	next  usecase.WatchLimitStore
	cache *basecache.Store[cachedWatchLimit]
}

// NewWatchLimitStore caches the watch limit for ttl so that every pass does
// not round-trip to the backing store.
func NewWatchLimitStore(next usecase.WatchLimitStore, ttl time.Duration) *WatchLimitStore {
	return &WatchLimitStore{next: next, cache: basecache.NewStore[cachedWatchLimit](ttl)}
}

func (s *WatchLimitStore) GetWatchLimit(ctx context.Context) (int, bool, error) {
	cached, err := s.cache.GetOrLoad(ctx, "watch_limit", func(ctx context.Context) (cachedWatchLimit, error) {
		minutes, found, err := s.next.GetWatchLimit(ctx)
		if err != nil {
			return cachedWatchLimit{}, err
		}
		return cachedWatchLimit{minutes: minutes, found: found}, nil
	})
	if err != nil {
		return 0, false, err
	}
	return cached.minutes, cached.found, nil
}

func (s *WatchLimitStore) SaveWatchLimit(ctx context.Context, minutes int) error {
	defer s.cache.Delete(ctx, "watch_limit")
	return s.next.SaveWatchLimit(ctx, minutes)
}
