package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
	"github.com/riskibarqy/esport-datanal/internal/domain/snapshot"
)

type snapshotRepository struct {
	st *state
}

func (r snapshotRepository) CreatePair(_ context.Context, watchID int64, at time.Time) (snapshot.Pair, error) {
	if _, ok := r.st.watches[watchID]; !ok {
		return snapshot.Pair{}, fmt.Errorf("watch entry %d not found", watchID)
	}
	snapID := r.st.nextID()
	markerID := r.st.nextID()
	r.st.snapshots[snapID] = snapshot.Snapshot{ID: snapID, WatchID: watchID, MarkerID: &markerID, InsertedAt: at}
	r.st.markers[markerID] = marker{ID: markerID, WatchID: watchID, SnapshotID: snapID}
	return snapshot.Pair{SnapshotID: snapID, MarkerID: markerID}, nil
}

func (r snapshotRepository) Baseline(_ context.Context, watchID, before int64) (gamestats.Baseline, error) {
	older := make(map[int64]struct{})
	for id, snap := range r.st.snapshots {
		if snap.WatchID == watchID && id < before {
			older[id] = struct{}{}
		}
	}
	baseline := gamestats.Baseline{
		Found:   len(older) > 0,
		Teams:   gamestats.EntitySet{},
		Players: gamestats.EntitySet{},
	}

	latest := make(map[gamestats.EntityKind]map[int64]int64)
	for _, row := range r.st.rows {
		if row.Side != gamestats.SideStats {
			continue
		}
		if _, ok := older[row.ParentID]; !ok {
			continue
		}
		seen := latest[row.Kind]
		if seen == nil {
			seen = make(map[int64]int64)
			latest[row.Kind] = seen
		}
		if prev, ok := seen[row.EntityID]; ok && prev > row.ParentID {
			continue
		}
		seen[row.EntityID] = row.ParentID
		if row.Kind == gamestats.KindTeam {
			baseline.Teams[row.EntityID] = row.Values
		} else {
			baseline.Players[row.EntityID] = row.Values
		}
	}
	return baseline, nil
}

func (r snapshotRepository) InsertRows(
	_ context.Context,
	side gamestats.Side,
	parentID int64,
	kind gamestats.EntityKind,
	sourceURL string,
	set gamestats.EntitySet,
) error {
	if !r.parentExists(side, parentID) {
		return fmt.Errorf("%s parent %d not found", side, parentID)
	}
	for _, entityID := range set.IDs() {
		r.st.rows = append(r.st.rows, snapshot.Row{
			ParentID:  parentID,
			Side:      side,
			Kind:      kind,
			EntityID:  entityID,
			SourceURL: sourceURL,
			Values:    set[entityID].Clone(),
		})
	}
	return nil
}

func (r snapshotRepository) DeleteSnapshot(_ context.Context, id int64) error {
	snap, ok := r.st.snapshots[id]
	if !ok {
		return nil
	}
	delete(r.st.snapshots, id)
	if snap.MarkerID != nil {
		if m, ok := r.st.markers[*snap.MarkerID]; ok {
			m.SnapshotID = 0
			r.st.markers[m.ID] = m
		}
	}
	r.dropRows(func(row snapshot.Row) bool {
		return row.Side == gamestats.SideStats && row.ParentID == id
	})
	return nil
}

func (r snapshotRepository) DeleteMarker(_ context.Context, id int64) error {
	m, ok := r.st.markers[id]
	if !ok {
		return nil
	}
	delete(r.st.markers, id)
	if snap, ok := r.st.snapshots[m.SnapshotID]; ok {
		snap.MarkerID = nil
		r.st.snapshots[snap.ID] = snap
	}
	r.dropRows(func(row snapshot.Row) bool {
		return row.Side == gamestats.SideUnchanged && row.ParentID == id
	})
	return nil
}

func (r snapshotRepository) DeleteEntityRow(
	_ context.Context,
	side gamestats.Side,
	parentID int64,
	kind gamestats.EntityKind,
	entityID int64,
) error {
	r.dropRows(func(row snapshot.Row) bool {
		return row.Side == side && row.ParentID == parentID && row.Kind == kind && row.EntityID == entityID
	})
	return nil
}

func (r snapshotRepository) ListSnapshots(_ context.Context, watchID int64) ([]snapshot.Snapshot, error) {
	out := make([]snapshot.Snapshot, 0)
	for _, snap := range r.st.snapshots {
		if snap.WatchID == watchID {
			out = append(out, snap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r snapshotRepository) ListStatsRows(_ context.Context, snapshotIDs []int64, kind gamestats.EntityKind) ([]snapshot.Row, error) {
	wanted := make(map[int64]struct{}, len(snapshotIDs))
	for _, id := range snapshotIDs {
		wanted[id] = struct{}{}
	}
	out := make([]snapshot.Row, 0)
	for _, row := range r.st.rows {
		if row.Side != gamestats.SideStats || row.Kind != kind {
			continue
		}
		if _, ok := wanted[row.ParentID]; ok {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ParentID != out[j].ParentID {
			return out[i].ParentID < out[j].ParentID
		}
		return out[i].EntityID < out[j].EntityID
	})
	return out, nil
}

func (r snapshotRepository) parentExists(side gamestats.Side, parentID int64) bool {
	if side == gamestats.SideUnchanged {
		_, ok := r.st.markers[parentID]
		return ok
	}
	_, ok := r.st.snapshots[parentID]
	return ok
}

func (r snapshotRepository) dropRows(match func(snapshot.Row) bool) {
	kept := r.st.rows[:0]
	for _, row := range r.st.rows {
		if !match(row) {
			kept = append(kept, row)
		}
	}
	r.st.rows = kept
}
