// Package mock provides an in-memory mock implementation of
// [tablestore.Store] for use in unit tests.
//
// The mock records every Fetch call and allows the test to configure return
// values via exported fields. It is safe for concurrent use.
package mock

import (
	"context"
	"sync"

	"github.com/iamfaham/investor-data-mcp/internal/tablestore"
)

// Compile-time interface assertion.
var _ tablestore.Store = (*Store)(nil)

// Store is a mock implementation of [tablestore.Store].
type Store struct {
	mu sync.Mutex

	// FetchFunc, when non-nil, handles every Fetch call. Use it when a test
	// needs per-query results (e.g. a filtered lookup followed by a full
	// scan). When nil, FetchRows and FetchError are returned instead.
	FetchFunc func(ctx context.Context, q tablestore.Query) ([]tablestore.Row, error)

	// FetchRows is returned by Fetch when FetchFunc is nil.
	FetchRows []tablestore.Row

	// FetchError is the error returned by Fetch when FetchFunc is nil.
	FetchError error

	// FetchCalls records all Fetch invocations in order.
	FetchCalls []tablestore.Query
}

// Fetch implements [tablestore.Store].
func (s *Store) Fetch(ctx context.Context, q tablestore.Query) ([]tablestore.Row, error) {
	s.mu.Lock()
	s.FetchCalls = append(s.FetchCalls, q)
	fn := s.FetchFunc
	rows, err := s.FetchRows, s.FetchError
	s.mu.Unlock()

	if fn != nil {
		return fn(ctx, q)
	}
	return rows, err
}

// CallCount returns how many times Fetch was invoked.
func (s *Store) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.FetchCalls)
}
