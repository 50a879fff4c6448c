package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/watch"
	qb "github.com/riskibarqy/esport-datanal/internal/platform/querybuilder"
)

const watchTable = "current_game_watch"

// insertWatchSuffix turns a race on the partial unique index into an empty
// RETURNING row instead of aborting the pass transaction.
const insertWatchSuffix = "ON CONFLICT (data_src, data_src_game_id) WHERE is_deleted = FALSE DO NOTHING RETURNING id"

type watchRepository struct {
	q dbtx
}

func (r watchRepository) ExistsActive(ctx context.Context, provider esport.Provider, externalID int64) (bool, error) {
	query, args, err := qb.Select("id").From(watchTable).
		Where(
			qb.Eq("data_src", provider.String()),
			qb.Eq("data_src_game_id", externalID),
			qb.Eq("is_deleted", false),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build select active watch query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("select active watch: %w", err)
	}
	return true, nil
}

func (r watchRepository) Insert(ctx context.Context, entry watch.Entry) (int64, error) {
	if err := entry.Validate(); err != nil {
		return 0, fmt.Errorf("invalid watch entry: %w", err)
	}

	query, args, err := insertQuery(watchTable, watchRowFromDomain(entry), insertWatchSuffix)
	if err != nil {
		return 0, fmt.Errorf("build insert watch query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) || isUniqueViolation(err) {
			return 0, fmt.Errorf("insert watch %s/%d: %w", entry.Provider, entry.ExternalID, watch.ErrAlreadyWatched)
		}
		return 0, fmt.Errorf("insert watch: %w", err)
	}
	return id, nil
}

func (r watchRepository) Invalidate(ctx context.Context, id int64) error {
	query, args, err := qb.Update(watchTable).
		Set("is_watching", false).
		Set("is_deleted", true).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build invalidate watch query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("invalidate watch %d: %w", id, err)
	}
	return nil
}

func (r watchRepository) StopWatching(ctx context.Context, id int64) error {
	query, args, err := qb.Update(watchTable).
		Set("is_watching", false).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build stop watching query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("stop watching %d: %w", id, err)
	}
	return nil
}

func (r watchRepository) ListWatching(ctx context.Context, provider esport.Provider, game esport.Game) ([]watch.Entry, error) {
	return r.list(ctx, "watching",
		qb.Eq("data_src", provider.String()),
		qb.Eq("game_name", game.String()),
		qb.Eq("is_watching", true),
		qb.Eq("is_deleted", false),
	)
}

func (r watchRepository) ListActive(ctx context.Context, provider esport.Provider, game esport.Game, tournamentID *int64) ([]watch.Entry, error) {
	conditions := []qb.Condition{
		qb.Eq("data_src", provider.String()),
		qb.Eq("game_name", game.String()),
		qb.Eq("is_deleted", false),
	}
	if tournamentID != nil {
		conditions = append(conditions, qb.Eq("data_src_tournament_id", *tournamentID))
	}
	return r.list(ctx, "active", conditions...)
}

func (r watchRepository) list(ctx context.Context, label string, conditions ...qb.Condition) ([]watch.Entry, error) {
	query, args, err := qb.Select("*").From(watchTable).
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s watches query: %w", label, err)
	}

	var rows []watchTableModel
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select %s watches: %w", label, err)
	}

	out := make([]watch.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
