// Package tablestore provides read-only access to the hosted investor table.
//
// The package exposes the single generic fetch contract the query layer
// depends on (table name, optional column selection, optional equality
// filters, optional row limit) and two backends that implement it:
//
//   - [RESTStore] talks to the Supabase PostgREST endpoint over HTTPS. This
//     is the default and matches how the hosted table is normally reached.
//   - [PostgresStore] queries the underlying Postgres database directly via
//     pgx, for deployments that have a DSN and want to skip the REST hop.
//
// Missing credentials surface as [ErrNotConfigured] so callers can
// distinguish configuration mistakes from execution failures.
package tablestore

import (
	"context"
	"errors"
	"fmt"
)

// Row is one fetched record: a mapping from column name to value. Absent or
// NULL columns have no entry.
type Row map[string]string

// Query describes one fetch against the table store.
type Query struct {
	// Table is the table name to fetch from.
	Table string

	// Columns optionally restricts the selected columns, in order. Nil or
	// empty selects all columns.
	Columns []string

	// Filters optionally constrains rows by exact column equality.
	Filters map[string]string

	// Limit optionally caps the number of returned rows. Zero means no limit.
	Limit int
}

// Store is the fetch contract required by the query layer. Implementations
// must be safe for concurrent use and must respect context cancellation.
type Store interface {
	// Fetch executes the query and returns the matching rows in the order the
	// backend produced them.
	Fetch(ctx context.Context, q Query) ([]Row, error)
}

// ErrNotConfigured reports that the store is missing its credentials or
// connection settings. It is a configuration error, distinct from execution
// errors (connectivity, malformed query, remote failure).
var ErrNotConfigured = errors.New("tablestore: credentials not configured")

// unconfigured is a Store whose every fetch fails with [ErrNotConfigured].
type unconfigured struct{}

func (unconfigured) Fetch(context.Context, Query) ([]Row, error) {
	return nil, fmt.Errorf("%w: set SUPABASE_URL and SUPABASE_KEY or the supabase config section", ErrNotConfigured)
}

// Unconfigured returns a Store that always fails with [ErrNotConfigured].
// It lets the server start without credentials and report the problem from
// each tool call instead of refusing to boot.
func Unconfigured() Store {
	return unconfigured{}
}
