package snapshot

import (
	"context"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
)

type Repository interface {
	CreatePair(ctx context.Context, watchID int64, at time.Time) (Pair, error)
	// Baseline collects, per entity, the latest stats-side row of watchID
	// under a snapshot older than before.
	Baseline(ctx context.Context, watchID, before int64) (gamestats.Baseline, error)
	InsertRows(ctx context.Context, side gamestats.Side, parentID int64, kind gamestats.EntityKind, sourceURL string, set gamestats.EntitySet) error
	DeleteSnapshot(ctx context.Context, id int64) error
	DeleteMarker(ctx context.Context, id int64) error
	DeleteEntityRow(ctx context.Context, side gamestats.Side, parentID int64, kind gamestats.EntityKind, entityID int64) error
	ListSnapshots(ctx context.Context, watchID int64) ([]Snapshot, error)
	ListStatsRows(ctx context.Context, snapshotIDs []int64, kind gamestats.EntityKind) ([]Row, error)
}
