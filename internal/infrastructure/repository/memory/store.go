package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/esport-datanal/internal/domain/analysis"
	"github.com/riskibarqy/esport-datanal/internal/domain/audit"
	"github.com/riskibarqy/esport-datanal/internal/domain/backfill"
	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
	"github.com/riskibarqy/esport-datanal/internal/domain/snapshot"
	"github.com/riskibarqy/esport-datanal/internal/domain/unitofwork"
	"github.com/riskibarqy/esport-datanal/internal/domain/watch"
)

// Store keeps every table in process memory. InTx works on a copy of the
// state and publishes it only when fn succeeds, so a failed pass leaves no
// trace.
type Store struct {
	mu    sync.Mutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, store unitofwork.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, txStore{st: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

// View runs fn against the committed state without a transaction. Changes
// fn makes are discarded.
func (s *Store) View(ctx context.Context, fn func(ctx context.Context, store unitofwork.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, txStore{st: s.state.clone()})
}

type txStore struct {
	st *state
}

func (t txStore) Watches() watch.Repository { return watchRepository{st: t.st} }
func (t txStore) Snapshots() snapshot.Repository { return snapshotRepository{st: t.st} }
func (t txStore) Audits() audit.Repository { return auditRepository{st: t.st} }
func (t txStore) Backfill() backfill.Repository { return backfillRepository{st: t.st} }
func (t txStore) Analyses() analysis.Repository { return analysisRepository{st: t.st} }

type marker struct {
	ID         int64
	WatchID    int64
	SnapshotID int64
}

type pastRow struct {
	Kind      gamestats.EntityKind
	EntityID  int64
	SourceURL string
	Values    gamestats.Values
}

type summaryKey struct {
	provider esport.Provider
	game     esport.Game
}

type analysisKey struct {
	provider     esport.Provider
	game         esport.Game
	tournamentID int64
}

type state struct {
	seq       int64
	watches   map[int64]watch.Entry
	snapshots map[int64]snapshot.Snapshot
	markers   map[int64]marker
	rows      []snapshot.Row
	invalid   []audit.Invalid
	pastGames map[int64]backfill.Game
	pastRows  map[int64][]pastRow
	summaries map[summaryKey]backfill.Summary
	analyses  map[analysisKey]analysis.Report
}

func newState() *state {
	return &state{
		watches:   make(map[int64]watch.Entry),
		snapshots: make(map[int64]snapshot.Snapshot),
		markers:   make(map[int64]marker),
		pastGames: make(map[int64]backfill.Game),
		pastRows:  make(map[int64][]pastRow),
		summaries: make(map[summaryKey]backfill.Summary),
		analyses:  make(map[analysisKey]analysis.Report),
	}
}

func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

// clone copies the containers. Stored values are never mutated in place, so
// they can be shared between copies.
func (s *state) clone() *state {
	out := &state{
		seq:       s.seq,
		watches:   make(map[int64]watch.Entry, len(s.watches)),
		snapshots: make(map[int64]snapshot.Snapshot, len(s.snapshots)),
		markers:   make(map[int64]marker, len(s.markers)),
		rows:      append([]snapshot.Row(nil), s.rows...),
		invalid:   append([]audit.Invalid(nil), s.invalid...),
		pastGames: make(map[int64]backfill.Game, len(s.pastGames)),
		pastRows:  make(map[int64][]pastRow, len(s.pastRows)),
		summaries: make(map[summaryKey]backfill.Summary, len(s.summaries)),
		analyses:  make(map[analysisKey]analysis.Report, len(s.analyses)),
	}
	for k, v := range s.watches {
		out.watches[k] = v
	}
	for k, v := range s.snapshots {
		out.snapshots[k] = v
	}
	for k, v := range s.markers {
		out.markers[k] = v
	}
	for k, v := range s.pastGames {
		out.pastGames[k] = v
	}
	for k, v := range s.pastRows {
		out.pastRows[k] = append([]pastRow(nil), v...)
	}
	for k, v := range s.summaries {
		out.summaries[k] = v
	}
	for k, v := range s.analyses {
		out.analyses[k] = v
	}
	return out
}
