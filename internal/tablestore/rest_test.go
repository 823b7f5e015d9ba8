package tablestore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestNewRESTStore(t *testing.T) {
	t.Parallel()

	t.Run("missing credentials", func(t *testing.T) {
		t.Parallel()
		_, err := NewRESTStore("", "")
		if !errors.Is(err, ErrNotConfigured) {
			t.Errorf("err = %v, want ErrNotConfigured", err)
		}
		_, err = NewRESTStore("https://abc.supabase.co", "")
		if !errors.Is(err, ErrNotConfigured) {
			t.Errorf("err = %v, want ErrNotConfigured", err)
		}
	})

	t.Run("trailing slash is trimmed", func(t *testing.T) {
		t.Parallel()
		s, err := NewRESTStore("https://abc.supabase.co/", "key")
		if err != nil {
			t.Fatalf("NewRESTStore: %v", err)
		}
		if s.baseURL != "https://abc.supabase.co" {
			t.Errorf("baseURL = %q", s.baseURL)
		}
	})
}

func TestRESTStoreFetch(t *testing.T) {
	t.Parallel()

	t.Run("request shape and decoding", func(t *testing.T) {
		t.Parallel()

		var gotPath string
		var gotQuery url.Values
		var gotHeader http.Header
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query()
			gotHeader = r.Header.Clone()
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{"Investor name": "Alpha Fund", "Website": null, "Stage of investment": "Seed"},
				{"Investor name": "Beta Fund", "Stage of investment": "Series A"}
			]`))
		}))
		defer srv.Close()

		store, err := NewRESTStore(srv.URL, "secret", WithHTTPClient(srv.Client()))
		if err != nil {
			t.Fatalf("NewRESTStore: %v", err)
		}

		rows, err := store.Fetch(context.Background(), Query{
			Table:   "dec-2024",
			Columns: []string{"Investor name", "Stage of investment"},
			Filters: map[string]string{"Investor type": "VC"},
			Limit:   50,
		})
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}

		if gotPath != "/rest/v1/dec-2024" {
			t.Errorf("path = %q, want /rest/v1/dec-2024", gotPath)
		}
		if got := gotQuery.Get("select"); got != `"Investor name","Stage of investment"` {
			t.Errorf("select = %q", got)
		}
		if got := gotQuery.Get(`"Investor type"`); got != "eq.VC" {
			t.Errorf("filter param = %q, want eq.VC", got)
		}
		if got := gotQuery.Get("limit"); got != "50" {
			t.Errorf("limit = %q, want 50", got)
		}
		if got := gotHeader.Get("apikey"); got != "secret" {
			t.Errorf("apikey header = %q", got)
		}
		if got := gotHeader.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("authorization header = %q", got)
		}

		if len(rows) != 2 {
			t.Fatalf("got %d rows, want 2", len(rows))
		}
		if rows[0]["Investor name"] != "Alpha Fund" {
			t.Errorf("row 0 name = %q", rows[0]["Investor name"])
		}
		if _, ok := rows[0]["Website"]; ok {
			t.Error("null column should be absent from the row")
		}
		if rows[1]["Stage of investment"] != "Series A" {
			t.Errorf("row 1 stage = %q", rows[1]["Stage of investment"])
		}
	})

	t.Run("empty column set selects everything", func(t *testing.T) {
		t.Parallel()
		var gotSelect string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotSelect = r.URL.Query().Get("select")
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		store, _ := NewRESTStore(srv.URL, "key", WithHTTPClient(srv.Client()))
		if _, err := store.Fetch(context.Background(), Query{Table: "dec-2024"}); err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if gotSelect != "*" {
			t.Errorf("select = %q, want *", gotSelect)
		}
	})

	t.Run("non-200 becomes an error with the body", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"permission denied"}`, http.StatusUnauthorized)
		}))
		defer srv.Close()

		store, _ := NewRESTStore(srv.URL, "key", WithHTTPClient(srv.Client()))
		_, err := store.Fetch(context.Background(), Query{Table: "dec-2024"})
		if err == nil {
			t.Fatal("expected an error for status 401")
		}
	})

	t.Run("empty table name is rejected", func(t *testing.T) {
		t.Parallel()
		store, _ := NewRESTStore("https://abc.supabase.co", "key")
		if _, err := store.Fetch(context.Background(), Query{}); err == nil {
			t.Fatal("expected an error for empty table name")
		}
	})
}

func TestUnconfiguredStore(t *testing.T) {
	t.Parallel()

	_, err := Unconfigured().Fetch(context.Background(), Query{Table: "dec-2024"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}
