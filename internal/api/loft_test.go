package api

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chordline-aero/wingloft/internal/testutil"
)

func postLoft(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, "/api/loft", nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, "/api/loft", bytes.NewBufferString(body))
	}
	w := httptest.NewRecorder()
	server.handleLoft(w, req)
	return w
}

func decodeLoft(t *testing.T, w *httptest.ResponseRecorder) LoftResponse {
	t.Helper()

	var resp LoftResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode loft response: %v", err)
	}
	return resp
}

func TestHandleLoft_Defaults(t *testing.T) {
	server, _ := setupTestServer(t)
	withMockClock(server, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	w := postLoft(t, server, "")
	testutil.AssertStatusCode(t, w.Code, http.StatusOK)

	resp := decodeLoft(t, w)
	if resp.RunID == "" {
		t.Error("run_id is empty")
	}
	if resp.Airfoil != "demo" || resp.Planform != "demo" {
		t.Errorf("geometry = %q/%q, want demo/demo", resp.Airfoil, resp.Planform)
	}
	if resp.GridU != 11 || resp.GridV != 4 {
		t.Errorf("grid = %dx%d, want 11x4", resp.GridU, resp.GridV)
	}
	if resp.DegreeU != 3 || resp.DegreeV != 3 {
		t.Errorf("degree = %dx%d, want 3x3", resp.DegreeU, resp.DegreeV)
	}
	if resp.SamplesU != 50 || resp.SamplesV != 50 {
		t.Errorf("samples = %dx%d, want 50x50", resp.SamplesU, resp.SamplesV)
	}
	if resp.Metrics.Span != 10 {
		t.Errorf("span = %v, want 10", resp.Metrics.Span)
	}
	if math.Abs(resp.Metrics.Area-10.5) > 1e-3 {
		t.Errorf("area = %v, want 10.5", resp.Metrics.Area)
	}
	// The mock clock never advances during the build.
	if resp.BuildMs != 0 {
		t.Errorf("build_ms = %v, want 0 under mock clock", resp.BuildMs)
	}
	if resp.Points != nil {
		t.Error("points included without include_points")
	}
}

func TestHandleLoft_IncludePoints(t *testing.T) {
	server, _ := setupTestServer(t)

	w := postLoft(t, server, `{"samples_u": 8, "samples_v": 5, "include_points": true}`)
	testutil.AssertStatusCode(t, w.Code, http.StatusOK)

	resp := decodeLoft(t, w)
	if len(resp.Points) != 8 {
		t.Fatalf("points rows = %d, want 8", len(resp.Points))
	}
	for i, row := range resp.Points {
		if len(row) != 5 {
			t.Fatalf("points row %d = %d samples, want 5", i, len(row))
		}
	}

	// Row zero runs along the root-to-tip edge through the clamped
	// corner, so the last sample sits at full span.
	last := resp.Points[0][len(resp.Points[0])-1]
	if math.Abs(last[2]-10) > 1e-9 {
		t.Errorf("corner sample z = %v, want 10", last[2])
	}
}

func TestHandleLoft_InlineGeometry(t *testing.T) {
	server, dbInst := setupTestServer(t)

	// A sparse inline grid has to ask for the degree it can support.
	body := `{
		"airfoil_points": [[1, 0, 0], [0.5, 0.1, 0], [0, 0, 0]],
		"stations": [
			{"span_pos": 0, "chord": 2, "sweep_deg": 0},
			{"span_pos": 8, "chord": 1, "sweep_deg": 10}
		],
		"max_degree": 1
	}`

	w := postLoft(t, server, body)
	testutil.AssertStatusCode(t, w.Code, http.StatusOK)

	resp := decodeLoft(t, w)
	if resp.Airfoil != "inline" || resp.Planform != "inline" {
		t.Errorf("geometry = %q/%q, want inline/inline", resp.Airfoil, resp.Planform)
	}
	if resp.GridU != 3 || resp.GridV != 2 {
		t.Errorf("grid = %dx%d, want 3x2", resp.GridU, resp.GridV)
	}
	if resp.DegreeU != 1 || resp.DegreeV != 1 {
		t.Errorf("degree = %dx%d, want 1x1", resp.DegreeU, resp.DegreeV)
	}

	// Inline geometry records a run without catalog references.
	runs, err := dbInst.GetRecentLoftRuns(10)
	testutil.AssertNoError(t, err)
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	if runs[0].AirfoilID != nil || runs[0].PlanformID != nil {
		t.Error("inline run should not reference catalog rows")
	}
}

func TestHandleLoft_RecordsNamedRun(t *testing.T) {
	server, dbInst := setupTestServer(t)

	w := postLoft(t, server, `{"airfoil": "naca2412", "planform": "demo"}`)
	testutil.AssertStatusCode(t, w.Code, http.StatusOK)

	resp := decodeLoft(t, w)

	run, err := dbInst.GetLoftRun(resp.RunID)
	testutil.AssertNoError(t, err)
	if run.AirfoilID == nil || run.PlanformID == nil {
		t.Fatal("named run should reference catalog rows")
	}
	if run.DegreeU != resp.DegreeU || run.DegreeV != resp.DegreeV {
		t.Errorf("recorded degree = %dx%d, want %dx%d", run.DegreeU, run.DegreeV, resp.DegreeU, resp.DegreeV)
	}
	if run.Span != resp.Metrics.Span {
		t.Errorf("recorded span = %v, want %v", run.Span, resp.Metrics.Span)
	}
}

func TestHandleLoft_UnknownGeometry(t *testing.T) {
	server, _ := setupTestServer(t)

	for _, body := range []string{
		`{"airfoil": "no-such-airfoil"}`,
		`{"planform": "no-such-planform"}`,
	} {
		w := postLoft(t, server, body)
		if w.Code != http.StatusNotFound {
			t.Errorf("loft %s = %d, want 404", body, w.Code)
		}
	}
}

func TestHandleLoft_BadRequests(t *testing.T) {
	server, _ := setupTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{not json`},
		{"degree too high", `{"max_degree": 9}`},
		{"degree negative", `{"max_degree": -1}`},
		{"samples too small", `{"samples_u": 1}`},
		{"single inline point", `{"airfoil_points": [[0, 0, 0]]}`},
		{"single station", `{"stations": [{"span_pos": 0, "chord": 1}]}`},
		{"too few stations for cubic", `{"stations": [
			{"span_pos": 0, "chord": 2},
			{"span_pos": 4, "chord": 1.5},
			{"span_pos": 8, "chord": 1}
		]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postLoft(t, server, tt.body)
			testutil.AssertStatusCode(t, w.Code, http.StatusBadRequest)
		})
	}
}

func TestHandleLoft_MethodNotAllowed(t *testing.T) {
	server, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/loft", nil)
	w := httptest.NewRecorder()
	server.handleLoft(w, req)

	testutil.AssertStatusCode(t, w.Code, http.StatusMethodNotAllowed)
}
