package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
	"github.com/riskibarqy/esport-datanal/internal/domain/snapshot"
	qb "github.com/riskibarqy/esport-datanal/internal/platform/querybuilder"
)

const (
	snapshotTable = "current_game_stats"
	markerTable   = "current_game_unchanged"
)

type snapshotHeaderModel struct {
	WatchID    int64     `db:"watch_game_id"`
	InsertedAt time.Time `db:"insert_datetime"`
}

type snapshotTableModel struct {
	ID         int64         `db:"id"`
	WatchID    int64         `db:"watch_game_id"`
	MarkerID   sql.NullInt64 `db:"unchanged_game_id"`
	InsertedAt time.Time     `db:"insert_datetime"`
}

type snapshotRepository struct {
	q dbtx
}

// CreatePair inserts the stats snapshot and its marker and links them both
// ways.
func (r snapshotRepository) CreatePair(ctx context.Context, watchID int64, at time.Time) (snapshot.Pair, error) {
	header := snapshotHeaderModel{WatchID: watchID, InsertedAt: at.UTC()}

	snapshotID, err := r.insertHeader(ctx, snapshotTable, header)
	if err != nil {
		return snapshot.Pair{}, err
	}
	markerID, err := r.insertHeader(ctx, markerTable, header)
	if err != nil {
		return snapshot.Pair{}, err
	}

	if err := r.link(ctx, snapshotTable, "unchanged_game_id", snapshotID, markerID); err != nil {
		return snapshot.Pair{}, err
	}
	if err := r.link(ctx, markerTable, "stats_game_id", markerID, snapshotID); err != nil {
		return snapshot.Pair{}, err
	}
	return snapshot.Pair{SnapshotID: snapshotID, MarkerID: markerID}, nil
}

func (r snapshotRepository) insertHeader(ctx context.Context, table string, header snapshotHeaderModel) (int64, error) {
	query, args, err := insertQuery(table, header, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert %s query: %w", table, err)
	}
	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert %s: %w", table, err)
	}
	return id, nil
}

func (r snapshotRepository) link(ctx context.Context, table, column string, id, target int64) error {
	query, args, err := qb.Update(table).
		Set(column, target).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build link %s query: %w", table, err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("link %s %d: %w", table, id, err)
	}
	return nil
}

func (r snapshotRepository) Baseline(ctx context.Context, watchID, before int64) (gamestats.Baseline, error) {
	baseline := gamestats.Baseline{Teams: gamestats.EntitySet{}, Players: gamestats.EntitySet{}}

	query, args, err := qb.Select("id").From(snapshotTable).
		Where(
			qb.Eq("watch_game_id", watchID),
			qb.Lt("id", before),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return baseline, fmt.Errorf("build select older snapshot query: %w", err)
	}
	var olderID int64
	if err := r.q.GetContext(ctx, &olderID, query, args...); err != nil {
		if isNotFound(err) {
			return baseline, nil
		}
		return baseline, fmt.Errorf("select older snapshot: %w", err)
	}
	baseline.Found = true

	for _, kind := range []gamestats.EntityKind{gamestats.KindTeam, gamestats.KindPlayer} {
		column := "r." + entityColumn(kind)
		query, args, err := qb.Select(rowColumns("r", kind)...).
			From(currentRowsTable(gamestats.SideStats, kind) + " r").
			DistinctOn(column).
			Join("JOIN " + snapshotTable + " s ON s.id = r.stats_game_id").
			Where(
				qb.Eq("s.watch_game_id", watchID),
				qb.Lt("s.id", before),
			).
			OrderBy(column, "r.stats_game_id DESC").
			ToSQL()
		if err != nil {
			return baseline, fmt.Errorf("build select %s baseline query: %w", kind, err)
		}

		rows, err := selectRows(ctx, r.q, kind, query, args)
		if err != nil {
			return baseline, fmt.Errorf("select %s baseline: %w", kind, err)
		}
		target := baseline.Teams
		if kind == gamestats.KindPlayer {
			target = baseline.Players
		}
		for _, row := range rows {
			target[row.EntityID] = row.Values
		}
	}
	return baseline, nil
}

func (r snapshotRepository) InsertRows(
	ctx context.Context,
	side gamestats.Side,
	parentID int64,
	kind gamestats.EntityKind,
	sourceURL string,
	set gamestats.EntitySet,
) error {
	if len(set) == 0 {
		return nil
	}
	table := currentRowsTable(side, kind)
	query, args, err := insertRowsQuery(table, kind, parentID, sourceURL, set)
	if err != nil {
		return fmt.Errorf("build insert %s query: %w", table, err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// DeleteSnapshot removes a stats snapshot with its rows; the marker keeps
// existing with its link cleared.
func (r snapshotRepository) DeleteSnapshot(ctx context.Context, id int64) error {
	return r.deleteHeader(ctx, snapshotTable, id)
}

func (r snapshotRepository) DeleteMarker(ctx context.Context, id int64) error {
	return r.deleteHeader(ctx, markerTable, id)
}

func (r snapshotRepository) deleteHeader(ctx context.Context, table string, id int64) error {
	query, args, err := qb.Delete(table).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete %s query: %w", table, err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s %d: %w", table, id, err)
	}
	return nil
}

func (r snapshotRepository) DeleteEntityRow(
	ctx context.Context,
	side gamestats.Side,
	parentID int64,
	kind gamestats.EntityKind,
	entityID int64,
) error {
	table := currentRowsTable(side, kind)
	query, args, err := qb.Delete(table).
		Where(
			qb.Eq("stats_game_id", parentID),
			qb.Eq(entityColumn(kind), entityID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete %s row query: %w", table, err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s row: %w", table, err)
	}
	return nil
}

func (r snapshotRepository) ListSnapshots(ctx context.Context, watchID int64) ([]snapshot.Snapshot, error) {
	query, args, err := qb.Select("id", "watch_game_id", "unchanged_game_id", "insert_datetime").
		From(snapshotTable).
		Where(qb.Eq("watch_game_id", watchID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select snapshots query: %w", err)
	}

	var rows []snapshotTableModel
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select snapshots: %w", err)
	}

	out := make([]snapshot.Snapshot, 0, len(rows))
	for _, row := range rows {
		item := snapshot.Snapshot{ID: row.ID, WatchID: row.WatchID, InsertedAt: row.InsertedAt}
		if row.MarkerID.Valid {
			markerID := row.MarkerID.Int64
			item.MarkerID = &markerID
		}
		out = append(out, item)
	}
	return out, nil
}

func (r snapshotRepository) ListStatsRows(ctx context.Context, snapshotIDs []int64, kind gamestats.EntityKind) ([]snapshot.Row, error) {
	if len(snapshotIDs) == 0 {
		return nil, nil
	}
	ids := make([]any, 0, len(snapshotIDs))
	for _, id := range snapshotIDs {
		ids = append(ids, id)
	}

	table := currentRowsTable(gamestats.SideStats, kind)
	query, args, err := qb.Select(rowColumns("", kind)...).
		From(table).
		Where(qb.In("stats_game_id", ids)).
		OrderBy("stats_game_id", entityColumn(kind)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s query: %w", table, err)
	}

	rows, err := selectRows(ctx, r.q, kind, query, args)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	out := make([]snapshot.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, snapshot.Row{
			ParentID: row.ParentID,
			Side:     gamestats.SideStats,
			Kind:     kind,
			EntityID: row.EntityID,
			Values:   row.Values,
		})
	}
	return out, nil
}
