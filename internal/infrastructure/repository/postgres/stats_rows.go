package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
	qb "github.com/riskibarqy/esport-datanal/internal/platform/querybuilder"
)

func currentRowsTable(side gamestats.Side, kind gamestats.EntityKind) string {
	return fmt.Sprintf("current_game_%s_%s", kind, side)
}

func pastRowsTable(kind gamestats.EntityKind) string {
	return fmt.Sprintf("past_game_%s_stats", kind)
}

func entityColumn(kind gamestats.EntityKind) string {
	return fmt.Sprintf("data_src_%s_id", kind)
}

// insertRowsQuery writes one row per entity of set. Fields the entity does
// not report are stored as NULL like unavailable ones.
func insertRowsQuery(table string, kind gamestats.EntityKind, parentID int64, sourceURL string, set gamestats.EntitySet) (string, []any, error) {
	fields := kind.Fields()
	columns := make([]string, 0, 3+len(fields))
	columns = append(columns, "stats_game_id", "data_src_url", entityColumn(kind))
	for _, field := range fields {
		columns = append(columns, string(field))
	}

	builder := qb.InsertInto(table).Columns(columns...)
	for _, entityID := range set.IDs() {
		values := set[entityID]
		row := make([]any, 0, len(columns))
		row = append(row, parentID, sourceURL, entityID)
		for _, field := range fields {
			row = append(row, values[field])
		}
		builder.Values(row...)
	}
	return builder.ToSQL()
}

// statsRow is one scanned stats row.
type statsRow struct {
	ParentID int64
	EntityID int64
	Values   gamestats.Values
}

// selectRows runs a query whose columns are the parent id, the entity id and
// then every field of kind, in order.
func selectRows(ctx context.Context, q dbtx, kind gamestats.EntityKind, query string, args []any) ([]statsRow, error) {
	rows, err := q.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := kind.Fields()
	var out []statsRow
	for rows.Next() {
		var row statsRow
		values := make([]gamestats.Value, len(fields))
		dest := make([]any, 0, 2+len(fields))
		dest = append(dest, &row.ParentID, &row.EntityID)
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", kind, err)
		}

		row.Values = make(gamestats.Values, len(fields))
		for i, field := range fields {
			row.Values[field] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// rowColumns lists the parent id, entity id and field columns of kind,
// prefixed with alias when one is given.
func rowColumns(alias string, kind gamestats.EntityKind) []string {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	fields := kind.Fields()
	out := make([]string, 0, 2+len(fields))
	out = append(out, prefix+"stats_game_id", prefix+entityColumn(kind))
	for _, field := range fields {
		out = append(out, prefix+string(field))
	}
	return out
}
