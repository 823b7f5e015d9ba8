package tablestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Option is a functional option for configuring the REST store.
type Option func(*RESTStore)

// WithHTTPClient overrides the HTTP client used for requests. Useful for
// tests and for injecting custom timeouts.
func WithHTTPClient(c *http.Client) Option {
	return func(s *RESTStore) {
		s.httpClient = c
	}
}

// RESTStore is a [Store] backed by the Supabase PostgREST endpoint.
// The zero value is not usable; create instances with [NewRESTStore].
type RESTStore struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time interface check.
var _ Store = (*RESTStore)(nil)

// NewRESTStore creates a REST store for the Supabase project at baseURL
// (e.g. "https://abc.supabase.co") authenticated with apiKey. It returns
// [ErrNotConfigured] when either value is empty.
func NewRESTStore(baseURL, apiKey string, opts ...Option) (*RESTStore, error) {
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("%w: set SUPABASE_URL and SUPABASE_KEY or the supabase config section", ErrNotConfigured)
	}
	s := &RESTStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Fetch executes q as a PostgREST GET request. Column names contain spaces in
// this table, so they are double-quoted in the select list and in filter keys.
func (s *RESTStore) Fetch(ctx context.Context, q Query) ([]Row, error) {
	if q.Table == "" {
		return nil, fmt.Errorf("tablestore: fetch: table name must not be empty")
	}

	params := url.Values{}
	params.Set("select", selectList(q.Columns))
	for col, val := range q.Filters {
		params.Set(quoteIdent(col), "eq."+val)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	endpoint := s.baseURL + "/rest/v1/" + url.PathEscape(q.Table) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("tablestore: fetch %q: build request: %w", q.Table, err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tablestore: fetch %q: %w", q.Table, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tablestore: fetch %q: read response: %w", q.Table, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tablestore: fetch %q: status %d: %s", q.Table, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("tablestore: fetch %q: decode response: %w", q.Table, err)
	}

	rows := make([]Row, 0, len(raw))
	for _, obj := range raw {
		rows = append(rows, toRow(obj))
	}
	return rows, nil
}

// selectList builds the PostgREST select parameter. An empty column set
// selects everything.
func selectList(columns []string) string {
	if len(columns) == 0 {
		return "*"
	}
	quoted := make([]string, 0, len(columns))
	for _, col := range columns {
		quoted = append(quoted, quoteIdent(col))
	}
	return strings.Join(quoted, ",")
}

// quoteIdent wraps a column name in double quotes so names with spaces parse.
func quoteIdent(col string) string {
	return `"` + col + `"`
}

// toRow converts a decoded JSON object into a Row. NULL values are dropped;
// non-string values keep their JSON text form.
func toRow(obj map[string]any) Row {
	row := make(Row, len(obj))
	for col, val := range obj {
		switch v := val.(type) {
		case nil:
			// absent
		case string:
			row[col] = v
		case json.Number:
			row[col] = v.String()
		default:
			row[col] = fmt.Sprint(v)
		}
	}
	return row
}
