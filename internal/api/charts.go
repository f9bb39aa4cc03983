package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/chordline-aero/wingloft/internal/db"
	"github.com/chordline-aero/wingloft/internal/geom"
	"github.com/chordline-aero/wingloft/internal/httputil"
	"github.com/chordline-aero/wingloft/internal/loft"
	"github.com/chordline-aero/wingloft/internal/render"
)

// chartLoftOptions reads the sampling knobs from the query string,
// falling back to the server configuration.
func (s *Server) chartLoftOptions(r *http.Request) (loft.Options, error) {
	opts := loft.Options{
		MaxDegree: s.cfg.GetMaxDegree(),
		SamplesU:  s.cfg.GetSamplesU(),
		SamplesV:  s.cfg.GetSamplesV(),
	}
	query := r.URL.Query()
	for _, knob := range []struct {
		name string
		dst  *int
	}{
		{"max_degree", &opts.MaxDegree},
		{"samples_u", &opts.SamplesU},
		{"samples_v", &opts.SamplesV},
	} {
		raw := query.Get(knob.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid %s: %q", knob.name, raw)
		}
		*knob.dst = v
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// chartGeometry resolves the airfoil and planform named in the query
// string, defaulting both to the seeded demo rows.
func (s *Server) chartGeometry(r *http.Request) (geom.Airfoil, geom.Planform, error) {
	airfoilKey := r.URL.Query().Get("airfoil")
	if airfoilKey == "" {
		airfoilKey = "demo"
	}
	planformKey := r.URL.Query().Get("planform")
	if planformKey == "" {
		planformKey = "demo"
	}

	storedAirfoil, err := s.lookupAirfoil(airfoilKey)
	if err != nil {
		return geom.Airfoil{}, geom.Planform{}, err
	}
	storedPlanform, err := s.lookupPlanform(planformKey)
	if err != nil {
		return geom.Airfoil{}, geom.Planform{}, err
	}
	return storedAirfoil.Section(), storedPlanform.Geometry(), nil
}

// handleWingChart runs the loft pipeline for the requested geometry and
// renders the sampled surface plus its control net as an HTML chart.
// Query params: airfoil, planform, max_degree, samples_u, samples_v.
func (s *Server) handleWingChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	opts, err := s.chartLoftOptions(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	airfoil, planform, err := s.chartGeometry(r)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			httputil.NotFound(w, err.Error())
			return
		}
		httputil.InternalServerError(w, fmt.Sprintf("lookup failed: %v", err))
		return
	}

	sections := geom.GenerateSections(airfoil, planform)
	grid, err := loft.BuildControlGrid(sections)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	surface, err := loft.BuildSurfaceFromGrid(grid, opts.MaxDegree)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	samples, err := loft.SampleGrid(surface, opts.SamplesU, opts.SamplesV)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("sampling failed: %v", err))
		return
	}

	meta := render.WingMeta{
		AirfoilName:  airfoil.Name,
		PlanformName: planform.Name,
		DegreeU:      surface.DegreeU(),
		DegreeV:      surface.DegreeV(),
		SamplesU:     opts.SamplesU,
		SamplesV:     opts.SamplesV,
	}

	var buf bytes.Buffer
	if err := render.WingSurfaceChart(&buf, samples, grid, meta, s.chartOptions()); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handlePlanformChart renders the plan view of a stored planform.
func (s *Server) handlePlanformChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	key := r.URL.Query().Get("planform")
	if key == "" {
		key = "demo"
	}
	stored, err := s.lookupPlanform(key)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			httputil.NotFound(w, err.Error())
			return
		}
		httputil.InternalServerError(w, fmt.Sprintf("lookup failed: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := render.PlanformChart(&buf, stored.Geometry(), s.chartOptions()); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleAirfoilChart renders the section profile of a stored airfoil.
func (s *Server) handleAirfoilChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	key := r.URL.Query().Get("airfoil")
	if key == "" {
		key = "demo"
	}
	stored, err := s.lookupAirfoil(key)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			httputil.NotFound(w, err.Error())
			return
		}
		httputil.InternalServerError(w, fmt.Sprintf("lookup failed: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := render.AirfoilChart(&buf, stored.Section(), s.chartOptions()); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
