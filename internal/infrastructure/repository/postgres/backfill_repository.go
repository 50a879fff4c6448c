package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/backfill"
	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
	qb "github.com/riskibarqy/esport-datanal/internal/platform/querybuilder"
)

const (
	pastGameTable    = "past_game_stats"
	pastSummaryTable = "past_game_analysis"
)

type backfillRepository struct {
	q dbtx
}

func (r backfillRepository) Reset(ctx context.Context, provider esport.Provider, game esport.Game) error {
	query, args, err := qb.Delete(pastGameTable).
		Where(
			qb.Eq("data_src", provider.String()),
			qb.Eq("game_name", game.String()),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete past games query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete past games: %w", err)
	}

	update := qb.Update(pastSummaryTable)
	for _, column := range summaryCounterColumns {
		update.Set(column, 0)
	}
	query, args, err = update.
		Where(
			qb.Eq("data_src", provider.String()),
			qb.Eq("game_name", game.String()),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reset past summary query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset past summary: %w", err)
	}
	return nil
}

func (r backfillRepository) FindByExternalID(ctx context.Context, provider esport.Provider, externalID int64) (backfill.Game, bool, error) {
	query, args, err := qb.Select("*").From(pastGameTable).
		Where(
			qb.Eq("data_src", provider.String()),
			qb.Eq("data_src_game_id", externalID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return backfill.Game{}, false, fmt.Errorf("build select past game query: %w", err)
	}

	var row pastGameTableModel
	if err := r.q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return backfill.Game{}, false, nil
		}
		return backfill.Game{}, false, fmt.Errorf("select past game: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r backfillRepository) Insert(ctx context.Context, item backfill.Game) (int64, error) {
	query, args, err := insertQuery(pastGameTable, pastGameRowFromDomain(item), "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert past game query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert past game: %w", err)
	}
	return id, nil
}

// Update writes only the listed columns and stamps update_datetime.
func (r backfillRepository) Update(ctx context.Context, id int64, item backfill.Game, columns []string, at time.Time) error {
	update := qb.Update(pastGameTable)
	for _, column := range columns {
		switch column {
		case backfill.ColumnSourceURL:
			update.Set(column, item.SourceURL)
		case backfill.ColumnTitle:
			update.Set(column, item.Title)
		case backfill.ColumnStartAt:
			update.Set(column, item.StartAt)
		case backfill.ColumnFinishAt:
			update.Set(column, item.FinishAt)
		case backfill.ColumnTournamentID:
			update.Set(column, item.TournamentID)
		case backfill.ColumnTournamentTitle:
			update.Set(column, item.TournamentTitle)
		default:
			return fmt.Errorf("unknown past game column %q", column)
		}
	}
	query, args, err := update.
		Set("update_datetime", at.UTC()).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update past game query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update past game %d: %w", id, err)
	}
	return nil
}

func (r backfillRepository) ReplaceStats(ctx context.Context, gameID int64, sourceURL string, teams, players gamestats.EntitySet) error {
	for _, kind := range []gamestats.EntityKind{gamestats.KindTeam, gamestats.KindPlayer} {
		table := pastRowsTable(kind)
		query, args, err := qb.Delete(table).Where(qb.Eq("stats_game_id", gameID)).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete %s query: %w", table, err)
		}
		if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}

		set := teams
		if kind == gamestats.KindPlayer {
			set = players
		}
		if len(set) == 0 {
			continue
		}
		query, args, err = insertRowsQuery(table, kind, gameID, sourceURL, set)
		if err != nil {
			return fmt.Errorf("build insert %s query: %w", table, err)
		}
		if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}

// AccumulateSummary adds the pass counters onto the stored totals, creating
// the row on first use.
func (r backfillRepository) AccumulateSummary(ctx context.Context, pass backfill.Summary, at time.Time) error {
	columns := make([]string, 0, 3+len(summaryCounterColumns))
	columns = append(columns, "data_src", "game_name")
	columns = append(columns, summaryCounterColumns...)
	columns = append(columns, "update_datetime")

	values := make([]any, 0, len(columns))
	values = append(values, pass.Provider.String(), pass.Game.String())
	values = append(values, summaryCounters(pass)...)
	values = append(values, at.UTC())

	sets := make([]string, 0, len(summaryCounterColumns)+1)
	for _, column := range summaryCounterColumns {
		sets = append(sets, fmt.Sprintf("%s = %s.%s + EXCLUDED.%s", column, pastSummaryTable, column, column))
	}
	sets = append(sets, "update_datetime = EXCLUDED.update_datetime")

	query, args, err := qb.InsertInto(pastSummaryTable).
		Columns(columns...).
		Values(values...).
		Suffix("ON CONFLICT (data_src, game_name) DO UPDATE SET " + strings.Join(sets, ", ")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build accumulate past summary query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("accumulate past summary: %w", err)
	}
	return nil
}

func (r backfillRepository) GetSummary(ctx context.Context, provider esport.Provider, game esport.Game) (backfill.Summary, bool, error) {
	query, args, err := qb.Select("*").From(pastSummaryTable).
		Where(
			qb.Eq("data_src", provider.String()),
			qb.Eq("game_name", game.String()),
		).
		ToSQL()
	if err != nil {
		return backfill.Summary{}, false, fmt.Errorf("build select past summary query: %w", err)
	}

	var row pastSummaryTableModel
	if err := r.q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return backfill.Summary{}, false, nil
		}
		return backfill.Summary{}, false, fmt.Errorf("select past summary: %w", err)
	}
	return row.toDomain(), true, nil
}
