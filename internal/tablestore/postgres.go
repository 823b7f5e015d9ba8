package tablestore

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// DB is the database interface used by [PostgresStore]. Both *pgxpool.Pool
// and *pgx.Conn satisfy this interface.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore is a [Store] that queries the investor table directly over a
// Postgres connection. Supabase projects expose their database as plain
// Postgres, so this backend serves deployments that hold a DSN.
type PostgresStore struct {
	db DB
}

// Compile-time interface check.
var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a store using the given connection or pool.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Fetch executes q as a parameterised SELECT. Identifiers are quoted because
// the investor table and its columns carry spaces and hyphens.
func (s *PostgresStore) Fetch(ctx context.Context, q Query) ([]Row, error) {
	if q.Table == "" {
		return nil, fmt.Errorf("tablestore: fetch: table name must not be empty")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(q.Columns) == 0 {
		sb.WriteString("*")
	} else {
		for i, col := range q.Columns {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(sqlIdent(col))
		}
	}
	sb.WriteString(" FROM ")
	sb.WriteString(sqlIdent(q.Table))

	var args []any
	if len(q.Filters) > 0 {
		sb.WriteString(" WHERE ")
		// Iterate the selected column order first for a stable clause order,
		// then any remaining filter keys.
		first := true
		appendClause := func(col, val string) {
			if !first {
				sb.WriteString(" AND ")
			}
			first = false
			args = append(args, val)
			sb.WriteString(sqlIdent(col))
			sb.WriteString(" = $")
			sb.WriteString(strconv.Itoa(len(args)))
		}
		done := make(map[string]bool, len(q.Filters))
		for _, col := range q.Columns {
			if val, ok := q.Filters[col]; ok {
				appendClause(col, val)
				done[col] = true
			}
		}
		for col, val := range q.Filters {
			if !done[col] {
				appendClause(col, val)
			}
		}
	}
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(q.Limit))
	}

	rows, err := s.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("tablestore: fetch %q: %w", q.Table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var result []Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("tablestore: fetch %q: scan: %w", q.Table, err)
		}
		row := make(Row, len(fields))
		for i, fd := range fields {
			if i >= len(values) || values[i] == nil {
				continue
			}
			if s, ok := values[i].(string); ok {
				row[fd.Name] = s
			} else {
				row[fd.Name] = fmt.Sprint(values[i])
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tablestore: fetch %q: %w", q.Table, err)
	}
	return result, nil
}

// sqlIdent double-quotes an identifier, escaping embedded quotes.
func sqlIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
