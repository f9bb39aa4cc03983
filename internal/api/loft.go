package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/chordline-aero/wingloft/internal/db"
	"github.com/chordline-aero/wingloft/internal/geom"
	"github.com/chordline-aero/wingloft/internal/httputil"
	"github.com/chordline-aero/wingloft/internal/loft"
)

// LoftRequest selects the geometry and sampling for one surface build.
// Airfoil and Planform accept a stored name or numeric ID; the inline
// fields override them when present. Zero-valued knobs fall back to the
// server configuration.
type LoftRequest struct {
	Airfoil       string         `json:"airfoil,omitempty"`
	AirfoilPoints []vec3.T       `json:"airfoil_points,omitempty"`
	Planform      string         `json:"planform,omitempty"`
	Stations      []geom.Station `json:"stations,omitempty"`
	MaxDegree     int            `json:"max_degree,omitempty"`
	SamplesU      int            `json:"samples_u,omitempty"`
	SamplesV      int            `json:"samples_v,omitempty"`
	IncludePoints bool           `json:"include_points,omitempty"`
}

// LoftResponse reports the recorded run plus the numbers a client needs
// to describe the surface. Points is only filled when the request asked
// for it; a 50x50 grid is 2500 vertices and most callers only want the
// metrics.
type LoftResponse struct {
	RunID       string       `json:"run_id"`
	Airfoil     string       `json:"airfoil"`
	Planform    string       `json:"planform"`
	DegreeU     int          `json:"degree_u"`
	DegreeV     int          `json:"degree_v"`
	GridU       int          `json:"grid_u"`
	GridV       int          `json:"grid_v"`
	SamplesU    int          `json:"samples_u"`
	SamplesV    int          `json:"samples_v"`
	Metrics     geom.Metrics `json:"metrics"`
	BuildMs     float64      `json:"build_ms"`
	Points      [][]vec3.T   `json:"points,omitempty"`
}

// handleLoft builds a spline surface from the requested geometry, samples
// it, records the run, and returns the run summary.
func (s *Server) handleLoft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var req LoftRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(w, fmt.Sprintf("invalid JSON: %v", err))
			return
		}
	}

	opts := loft.Options{
		MaxDegree: req.MaxDegree,
		SamplesU:  req.SamplesU,
		SamplesV:  req.SamplesV,
	}
	if opts.MaxDegree == 0 {
		opts.MaxDegree = s.cfg.GetMaxDegree()
	}
	if opts.SamplesU == 0 {
		opts.SamplesU = s.cfg.GetSamplesU()
	}
	if opts.SamplesV == 0 {
		opts.SamplesV = s.cfg.GetSamplesV()
	}
	if err := opts.Validate(); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	airfoil, airfoilID, err := s.resolveAirfoil(&req)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			httputil.NotFound(w, err.Error())
			return
		}
		httputil.BadRequest(w, err.Error())
		return
	}
	planform, planformID, err := s.resolvePlanform(&req)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			httputil.NotFound(w, err.Error())
			return
		}
		httputil.BadRequest(w, err.Error())
		return
	}

	start := s.clock.Now()
	sections := geom.GenerateSections(airfoil, planform)
	surface, err := loft.BuildSurface(sections, opts.MaxDegree)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	samples, err := loft.SampleGrid(surface, opts.SamplesU, opts.SamplesV)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("sampling failed: %v", err))
		return
	}
	buildMs := float64(s.clock.Since(start).Nanoseconds()) / 1e6

	metrics, err := geom.ComputeMetrics(planform)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("metrics failed: %v", err))
		return
	}

	run := &db.LoftRun{
		AirfoilID:   airfoilID,
		PlanformID:  planformID,
		DegreeU:     surface.DegreeU(),
		DegreeV:     surface.DegreeV(),
		SamplesU:    opts.SamplesU,
		SamplesV:    opts.SamplesV,
		Span:        metrics.Span,
		Area:        metrics.Area,
		MeanChord:   metrics.MeanAeroChord,
		AspectRatio: metrics.AspectRatio,
		TaperRatio:  metrics.TaperRatio,
	}
	if err := s.db.CreateLoftRun(run); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to record run: %v", err))
		return
	}

	resp := LoftResponse{
		RunID:    run.ID,
		Airfoil:  airfoil.Name,
		Planform: planform.Name,
		DegreeU:  surface.DegreeU(),
		DegreeV:  surface.DegreeV(),
		GridU:    airfoil.PointCount(),
		GridV:    len(planform.Stations),
		SamplesU: opts.SamplesU,
		SamplesV: opts.SamplesV,
		Metrics:  metrics,
		BuildMs:  buildMs,
	}
	if req.IncludePoints {
		resp.Points = samples
	}

	httputil.WriteJSONOK(w, resp)
}
