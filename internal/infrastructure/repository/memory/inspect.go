package memory

import (
	"sort"

	"github.com/riskibarqy/esport-datanal/internal/domain/audit"
	"github.com/riskibarqy/esport-datanal/internal/domain/backfill"
	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
	"github.com/riskibarqy/esport-datanal/internal/domain/snapshot"
	"github.com/riskibarqy/esport-datanal/internal/domain/watch"
)

// Read-only views of the committed state, used by tests.

func (s *Store) Watch(id int64) (watch.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.state.watches[id]
	return entry, ok
}

// Rows returns the stored rows of side under parentID.
func (s *Store) Rows(side gamestats.Side, parentID int64) []snapshot.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]snapshot.Row, 0)
	for _, row := range s.state.rows {
		if row.Side == side && row.ParentID == parentID {
			out = append(out, row)
		}
	}
	return out
}

// MarkerIDs returns the unchanged marker ids of a watch entry, oldest first.
func (s *Store) MarkerIDs(watchID int64) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, 0)
	for id, m := range s.state.markers {
		if m.WatchID == watchID {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Store) Invalid() []audit.Invalid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]audit.Invalid(nil), s.state.invalid...)
}

// PastRows returns the team or player rows stored for a past game.
func (s *Store) PastRows(gameID int64, kind gamestats.EntityKind) gamestats.EntitySet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := gamestats.EntitySet{}
	for _, row := range s.state.pastRows[gameID] {
		if row.Kind == kind {
			out[row.EntityID] = row.Values
		}
	}
	return out
}

func (s *Store) PastGames() []backfill.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]backfill.Game, 0, len(s.state.pastGames))
	for _, g := range s.state.pastGames {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
