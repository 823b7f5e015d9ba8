// Package health serves the liveness and readiness probes of the admin
// listener. Liveness (/healthz) only proves the process answers HTTP;
// readiness (/readyz) additionally runs every registered [Checker], which for
// this server means a single-row probe of the investor table.
//
// Both endpoints answer JSON: a top-level "status" of "ok" or "fail", and on
// /readyz a "checks" map with one entry per checker.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/iamfaham/investor-data-mcp/internal/investor"
	"github.com/iamfaham/investor-data-mcp/internal/tablestore"
)

// checkTimeout bounds a single readiness check.
const checkTimeout = 5 * time.Second

// Checker is a named readiness check. Check returns nil when the dependency
// is usable and must respect context cancellation.
type Checker struct {
	// Name keys this check in the /readyz response, e.g. "tablestore".
	Name string

	Check func(ctx context.Context) error
}

// TableChecker probes the investor table with a single-row fetch of the name
// column. A store that cannot serve that fetch cannot serve any tool call, so
// this is the readiness signal for the whole server.
func TableChecker(store tablestore.Store, table string) Checker {
	return Checker{
		Name: "tablestore",
		Check: func(ctx context.Context) error {
			_, err := store.Fetch(ctx, tablestore.Query{
				Table:   table,
				Columns: []string{investor.ColName},
				Limit:   1,
			})
			return err
		},
	}
}

// Handler answers /healthz and /readyz. The checker list is fixed at
// construction, which makes the handler safe for concurrent use.
type Handler struct {
	checkers []Checker
}

// New builds a [Handler] over the given checkers. /readyz evaluates them
// sequentially in this order.
func New(checkers ...Checker) *Handler {
	return &Handler{checkers: append([]Checker(nil), checkers...)}
}

// report is the response body of both endpoints.
type report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz always answers 200. A process that got this far can serve HTTP,
// which is all liveness promises.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, report{Status: "ok"})
}

// Readyz answers 200 only when every checker passes, 503 otherwise. Each
// checker runs under its own [checkTimeout] deadline derived from the request
// context, and a failing check reports its cause as "fail: <error>".
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	res := report{Status: "ok", Checks: make(map[string]string, len(h.checkers))}
	status := http.StatusOK

	for _, c := range h.checkers {
		if err := h.run(r.Context(), c); err != nil {
			res.Checks[c.Name] = "fail: " + err.Error()
			res.Status = "fail"
			status = http.StatusServiceUnavailable
		} else {
			res.Checks[c.Name] = "ok"
		}
	}

	writeJSON(w, status, res)
}

func (h *Handler) run(ctx context.Context, c Checker) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	return c.Check(ctx)
}

// Register adds the probe routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
	}
}
