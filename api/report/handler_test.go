package report

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kerguelen/boatgrid/core/engine"
	"github.com/kerguelen/boatgrid/core/model"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.New(engine.Config{})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return eng
}

const analyzeBody = `{
  "nodes": [
    {"id": "b1", "type": "battery", "voltage": 12,
     "battery": {"capacity_ah": 200, "chemistry": "agm"}},
    {"id": "c1", "type": "consumer", "voltage": 12,
     "consumer": {"power_w": 120, "daily_hours": 4, "duty_cycle": 0.5}}
  ],
  "connections": [
    {"id": "k1", "from_node_id": "b1", "to_node_id": "c1", "section_mm2": 6, "length_m": 3}
  ]
}`

func TestAnalyzeHandler(t *testing.T) {
	h := NewAnalyzeHandler(newTestEngine(t))
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(analyzeBody))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var res engine.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if res.Balance.DailyConsumptionAh != 20 {
		t.Fatalf("daily consumption = %v, want 20", res.Balance.DailyConsumptionAh)
	}
	if len(res.Cables) != 1 {
		t.Fatalf("want one cable row, got %d", len(res.Cables))
	}
}

func TestAnalyzeHandlerRejectsBadPayload(t *testing.T) {
	h := NewAnalyzeHandler(newTestEngine(t))

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"nodes": [{"id": "x", "type": "battery", "voltage": 5}]}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid node: status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`not json`))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("garbage body: status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeHandlerMethod(t *testing.T) {
	h := NewAnalyzeHandler(newTestEngine(t))
	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

type fakeStore struct {
	res engine.Result
	ok  bool
}

func (s fakeStore) Latest() (engine.Result, bool) { return s.res, s.ok }

func TestReportHandler(t *testing.T) {
	h := NewReportHandler(fakeStore{ok: false})
	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("empty store: status = %d, want 404", rec.Code)
	}

	res := engine.Result{}
	res.Validation.IsValid = true
	h = NewReportHandler(fakeStore{res: res, ok: true})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var back engine.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &back); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !back.Validation.IsValid {
		t.Fatal("report lost validation state")
	}
}

type noopAnalyzer struct{}

func (noopAnalyzer) Analyze([]model.Node, []model.Connection) engine.Result {
	return engine.Result{}
}

func TestHandlersAcceptAnyAnalyzer(t *testing.T) {
	h := NewAnalyzeHandler(noopAnalyzer{})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
