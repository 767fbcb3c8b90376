// Package report exposes the engine over HTTP for the editor: submit a
// graph, get the full analysis back; or fetch the last computed report.
package report

import (
	"encoding/json"
	"net/http"

	"github.com/kerguelen/boatgrid/core/engine"
	"github.com/kerguelen/boatgrid/core/model"
)

// Analyzer runs an analysis over a network snapshot.
type Analyzer interface {
	Analyze(nodes []model.Node, conns []model.Connection) engine.Result
}

// Store hands out the last computed report.
type Store interface {
	Latest() (engine.Result, bool)
}

// AnalyzeRequest is the graph payload the editor submits.
type AnalyzeRequest struct {
	Nodes       []model.Node       `json:"nodes"`
	Connections []model.Connection `json:"connections"`
}

// NewAnalyzeHandler returns the POST /api/analyze handler: graph in,
// full analysis out.
func NewAnalyzeHandler(a Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for _, n := range req.Nodes {
			if err := n.Validate(); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		for _, c := range req.Connections {
			if err := c.Validate(); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		res := a.Analyze(req.Nodes, req.Connections)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// NewReportHandler returns the GET /api/report handler serving the last
// computed analysis.
func NewReportHandler(store Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		res, ok := store.Latest()
		if !ok {
			http.Error(w, "no analysis computed yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// NewHealthHandler returns a trivial liveness handler.
func NewHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}
