package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// sqlWriter accumulates statement text and its positional arguments.
type sqlWriter struct {
	strings.Builder
	args []any
}

func newSQLWriter(capacity int) *sqlWriter {
	return &sqlWriter{args: make([]any, 0, capacity)}
}

// bind appends value and writes its $n placeholder.
func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.WriteString("$")
	w.WriteString(strconv.Itoa(len(w.args)))
}

// bindList writes a comma separated placeholder list for values.
func (w *sqlWriter) bindList(values []any) {
	for i, v := range values {
		if i > 0 {
			w.WriteString(", ")
		}
		w.bind(v)
	}
}

// fragment writes sql, binding one value per '?' until values run out.
func (w *sqlWriter) fragment(sql string, values []any) {
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' && len(values) > 0 {
			w.bind(values[0])
			values = values[1:]
			continue
		}
		w.WriteByte(sql[i])
	}
}

func (w *sqlWriter) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.WriteString(" WHERE ")
		} else {
			w.WriteString(" AND ")
		}
		c.render(w)
	}
}

func (w *sqlWriter) suffix(sql string) {
	if sql == "" {
		return
	}
	w.WriteByte(' ')
	w.fragment(sql, nil)
}

func (w *sqlWriter) result() (string, []any, error) {
	return w.String(), w.args, nil
}

// Condition is one AND-ed term of a WHERE clause.
type Condition interface {
	render(w *sqlWriter)
}

type compare struct {
	column string
	op     string
	value  any
}

func (c compare) render(w *sqlWriter) {
	w.WriteString(c.column)
	w.WriteString(c.op)
	w.bind(c.value)
}

func Eq(column string, value any) Condition {
	return compare{column: column, op: " = ", value: value}
}

// Lt renders column < value.
func Lt(column string, value any) Condition {
	return compare{column: column, op: " < ", value: value}
}

type membership struct {
	column string
	values []any
}

// In renders column IN (...); an empty set matches nothing.
func In(column string, values []any) Condition {
	return membership{column: column, values: values}
}

func (c membership) render(w *sqlWriter) {
	if len(c.values) == 0 {
		w.WriteString("1=0")
		return
	}
	w.WriteString(c.column)
	w.WriteString(" IN (")
	w.bindList(c.values)
	w.WriteString(")")
}

type SelectBuilder struct {
	distinctOn []string
	columns    []string
	table      string
	joins      []string
	where      []Condition
	orderBy    []string
	limit      int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// DistinctOn renders the postgres DISTINCT ON (...) prefix; pair it with an
// ORDER BY that starts with the same columns.
func (b *SelectBuilder) DistinctOn(columns ...string) *SelectBuilder {
	b.distinctOn = append(b.distinctOn, columns...)
	return b
}

// Join appends a raw join clause, e.g. "JOIN b ON b.id = a.b_id".
func (b *SelectBuilder) Join(clause string) *SelectBuilder {
	b.joins = append(b.joins, strings.TrimSpace(clause))
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("select columns are required")
	case blank(b.table):
		return "", nil, fmt.Errorf("select table is required")
	}

	w := newSQLWriter(len(b.where))
	w.WriteString("SELECT ")
	if len(b.distinctOn) > 0 {
		fmt.Fprintf(w, "DISTINCT ON (%s) ", strings.Join(b.distinctOn, ", "))
	}
	fmt.Fprintf(w, "%s FROM %s", strings.Join(b.columns, ", "), b.table)
	for _, join := range b.joins {
		w.WriteByte(' ')
		w.WriteString(join)
	}
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.WriteString(" ORDER BY ")
		w.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.WriteString(" LIMIT ")
		w.WriteString(strconv.Itoa(b.limit))
	}
	return w.result()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values adds one row; its length must match Columns.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends raw sql such as "RETURNING id" or an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case blank(b.table):
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert values are required")
	}

	w := newSQLWriter(len(b.rows) * len(b.columns))
	fmt.Fprintf(w, "INSERT INTO %s (%s) VALUES ", b.table, strings.Join(b.columns, ", "))
	for n, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", n, len(row), len(b.columns))
		}
		if n > 0 {
			w.WriteString(", ")
		}
		w.WriteByte('(')
		w.bindList(row)
		w.WriteByte(')')
	}
	w.suffix(b.suffix)
	return w.result()
}

type assignment struct {
	column string
	sql    string
	values []any
}

type UpdateBuilder struct {
	table  string
	sets   []assignment
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, sql: "?", values: []any{value}})
	return b
}

// SetExpr assigns a raw expression; each '?' in expr binds the next arg.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, sql: expr, values: args})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case blank(b.table):
		return "", nil, fmt.Errorf("update table is required")
	case len(b.sets) == 0:
		return "", nil, fmt.Errorf("update sets are required")
	}

	w := newSQLWriter(len(b.sets) + len(b.where))
	fmt.Fprintf(w, "UPDATE %s SET ", b.table)
	for i, s := range b.sets {
		if i > 0 {
			w.WriteString(", ")
		}
		w.WriteString(s.column)
		w.WriteString(" = ")
		w.fragment(s.sql, s.values)
	}
	w.where(b.where)
	w.suffix(b.suffix)
	return w.result()
}

type DeleteBuilder struct {
	table  string
	where  []Condition
	suffix string
}

func Delete(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) Suffix(sql string) *DeleteBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

// ToSQL refuses to build an unconditional delete.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	switch {
	case blank(b.table):
		return "", nil, fmt.Errorf("delete table is required")
	case len(b.where) == 0:
		return "", nil, fmt.Errorf("delete conditions are required")
	}

	w := newSQLWriter(len(b.where))
	w.WriteString("DELETE FROM ")
	w.WriteString(b.table)
	w.where(b.where)
	w.suffix(b.suffix)
	return w.result()
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
