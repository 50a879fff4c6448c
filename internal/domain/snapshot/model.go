package snapshot

import (
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
)

// Pair is a stats snapshot and its unchanged marker, created together for
// every poll of a watch entry.
type Pair struct {
	SnapshotID int64
	MarkerID   int64
}

// ParentID returns the id rows of side hang off.
func (p Pair) ParentID(side gamestats.Side) int64 {
	if side == gamestats.SideUnchanged {
		return p.MarkerID
	}
	return p.SnapshotID
}

// Snapshot is a retained stats snapshot header.
type Snapshot struct {
	ID         int64
	WatchID    int64
	MarkerID   *int64
	InsertedAt time.Time
}

// Row is one stored team or player row.
type Row struct {
	ParentID  int64
	Side      gamestats.Side
	Kind      gamestats.EntityKind
	EntityID  int64
	SourceURL string
	Values    gamestats.Values
}
