package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"restaurant-pos/internal/infra"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Tables struct {
	db     DBTX
	logger *slog.Logger
}

func NewTables(db DBTX, logger *slog.Logger) *Tables {
	return &Tables{db: db, logger: logger}
}

func (t *Tables) Select(ctx context.Context, table string, q wire.Query) ([]wire.Record, error) {
	sql, args, err := buildSelect(table, q)
	if err != nil {
		return nil, infra.WrapBackendErr(t.logger, infra.KindInvalidRequest, "select "+table, err)
	}
	return t.collect(ctx, "select "+table, sql, args)
}

func (t *Tables) Insert(ctx context.Context, table string, rec wire.Record) (wire.Record, error) {
	sql, args, err := buildInsert(table, rec)
	if err != nil {
		return nil, infra.WrapBackendErr(t.logger, infra.KindInvalidRequest, "insert "+table, err)
	}
	return t.one(ctx, "insert "+table, sql, args)
}

func (t *Tables) Update(ctx context.Context, table, id string, patch wire.Record) (wire.Record, error) {
	sql, args, err := buildUpdate(table, id, patch)
	if err != nil {
		return nil, infra.WrapBackendErr(t.logger, infra.KindInvalidRequest, "update "+table, err)
	}
	return t.one(ctx, "update "+table, sql, args)
}

func (t *Tables) Delete(ctx context.Context, table, id string) error {
	if _, ok := schemas[table]; !ok {
		return infra.WrapBackendErr(t.logger, infra.KindInvalidRequest, "delete "+table, fmt.Errorf("unknown table %q", table))
	}
	tag, err := t.db.Exec(ctx, "DELETE FROM "+ident(table)+" WHERE id = $1", id)
	if err != nil {
		return infra.WrapBackendErr(t.logger, infra.Classify(err), "delete "+table, err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapBackendErr(t.logger, infra.KindNotFound, "delete "+table, nil)
	}
	return nil
}

func (t *Tables) collect(ctx context.Context, op, sql string, args []any) ([]wire.Record, error) {
	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapBackendErr(t.logger, infra.Classify(err), op, err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, infra.WrapBackendErr(t.logger, infra.Classify(err), op, err)
	}

	out := make([]wire.Record, 0, len(maps))
	for _, m := range maps {
		row, err := pgconv.NormalizeRow(m)
		if err != nil {
			return nil, infra.WrapBackendErr(t.logger, infra.KindFailure, op, err)
		}
		out = append(out, wire.Record(row))
	}
	return out, nil
}

func (t *Tables) one(ctx context.Context, op, sql string, args []any) (wire.Record, error) {
	rows, err := t.collect(ctx, op, sql, args)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, infra.WrapBackendErr(t.logger, infra.KindNotFound, op, nil)
	}
	return rows[0], nil
}

func buildSelect(table string, q wire.Query) (string, []any, error) {
	schema, ok := schemas[table]
	if !ok {
		return "", nil, fmt.Errorf("unknown table %q", table)
	}

	var (
		sb    strings.Builder
		args  []any
		where []string
	)
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(ident(table))

	for _, f := range q.Filters {
		if !schema.has(f.Column) {
			return "", nil, fmt.Errorf("unknown column %q on %s", f.Column, table)
		}
		col := ident(f.Column)
		switch f.Op {
		case wire.OpEq:
			if f.Value == nil {
				where = append(where, col+" IS NULL")
				continue
			}
			args = append(args, f.Value)
			where = append(where, fmt.Sprintf("%s = $%d", col, len(args)))
		case wire.OpIn:
			values, ok := f.Value.([]string)
			if !ok {
				return "", nil, fmt.Errorf("in filter on %s needs []string, got %T", f.Column, f.Value)
			}
			if len(values) == 0 {
				where = append(where, "FALSE")
				continue
			}
			args = append(args, values)
			where = append(where, fmt.Sprintf("%s::text = ANY($%d::text[])", col, len(args)))
		default:
			return "", nil, fmt.Errorf("unsupported filter op %q", f.Op)
		}
	}
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}

	if len(q.OrderBy) > 0 {
		parts := make([]string, 0, len(q.OrderBy))
		for _, o := range q.OrderBy {
			if !schema.has(o.Column) {
				return "", nil, fmt.Errorf("unknown order column %q on %s", o.Column, table)
			}
			dir := " ASC"
			if o.Desc {
				dir = " DESC"
			}
			parts = append(parts, ident(o.Column)+dir)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(parts, ", "))
	}
	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}
	return sb.String(), args, nil
}

func buildInsert(table string, rec wire.Record) (string, []any, error) {
	schema, ok := schemas[table]
	if !ok {
		return "", nil, fmt.Errorf("unknown table %q", table)
	}
	cols, err := sortedColumns(schema, table, rec)
	if err != nil {
		return "", nil, err
	}
	if len(cols) == 0 {
		return "INSERT INTO " + ident(table) + " DEFAULT VALUES RETURNING *", nil, nil
	}

	names := make([]string, len(cols))
	params := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = ident(c)
		params[i] = fmt.Sprintf("$%d", i+1)
		args[i] = rec[c]
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		ident(table), strings.Join(names, ", "), strings.Join(params, ", "))
	return sql, args, nil
}

func buildUpdate(table, id string, patch wire.Record) (string, []any, error) {
	schema, ok := schemas[table]
	if !ok {
		return "", nil, fmt.Errorf("unknown table %q", table)
	}
	cols, err := sortedColumns(schema, table, patch)
	if err != nil {
		return "", nil, err
	}
	cols = slices.DeleteFunc(cols, func(c string) bool { return c == "id" })

	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	for _, c := range cols {
		args = append(args, patch[c])
		sets = append(sets, fmt.Sprintf("%s = $%d", ident(c), len(args)))
	}
	if schema.hasUpdatedAt && !slices.Contains(cols, "updated_at") {
		sets = append(sets, ident("updated_at")+" = now()")
	}
	if len(sets) == 0 {
		return "", nil, fmt.Errorf("empty update on %s", table)
	}

	args = append(args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING *",
		ident(table), strings.Join(sets, ", "), len(args))
	return sql, args, nil
}

func sortedColumns(schema tableSchema, table string, rec wire.Record) ([]string, error) {
	cols := make([]string, 0, len(rec))
	for c := range rec {
		if !schema.has(c) {
			return nil, fmt.Errorf("unknown column %q on %s", c, table)
		}
		cols = append(cols, c)
	}
	slices.Sort(cols)
	return cols, nil
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
