package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/esport-datanal/internal/domain/audit"
	qb "github.com/riskibarqy/esport-datanal/internal/platform/querybuilder"
)

type auditRepository struct {
	q dbtx
}

// Record writes to current_game_invalid or past_game_invalid depending on the
// scope; the parent column is left NULL when the item has no parent.
func (r auditRepository) Record(ctx context.Context, item audit.Invalid) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid audit item: %w", err)
	}

	table, parentColumn := "current_game_invalid", "watch_game_id"
	if item.Scope == audit.ScopePast {
		table, parentColumn = "past_game_invalid", "stats_game_id"
	}

	columns := []string{"data_src_url", "problem", "insert_datetime"}
	values := []any{item.SourceURL, item.Problem, item.InsertedAt.UTC()}
	if item.ParentID != nil {
		columns = append(columns, parentColumn)
		values = append(values, *item.ParentID)
	}

	query, args, err := qb.InsertInto(table).Columns(columns...).Values(values...).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert %s query: %w", table, err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}
