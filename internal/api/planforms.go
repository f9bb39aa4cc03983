package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/chordline-aero/wingloft/internal/db"
	"github.com/chordline-aero/wingloft/internal/geom"
	"github.com/chordline-aero/wingloft/internal/httputil"
)

// handlePlanforms handles /api/planforms (list and create).
func (s *Server) handlePlanforms(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListPlanforms(w, r)
	case http.MethodPost:
		s.handleCreatePlanform(w, r)
	default:
		httputil.MethodNotAllowed(w)
	}
}

// handleListPlanforms lists stored planforms with station counts and the
// headline span/chord numbers.
func (s *Server) handleListPlanforms(w http.ResponseWriter, r *http.Request) {
	planforms, err := s.db.GetAllPlanforms()
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("query failed: %v", err))
		return
	}

	type planformSummary struct {
		ID           int     `json:"id"`
		Name         string  `json:"name"`
		Description  *string `json:"description"`
		StationCount int     `json:"station_count"`
		Span         float64 `json:"span"`
		RootChord    float64 `json:"root_chord"`
		TipChord     float64 `json:"tip_chord"`
		IsSystem     bool    `json:"is_system"`
	}

	summaries := make([]planformSummary, 0, len(planforms))
	for _, p := range planforms {
		g := p.Geometry()
		summaries = append(summaries, planformSummary{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			StationCount: len(p.Stations),
			Span:         g.Span(),
			RootChord:    g.RootChord(),
			TipChord:     g.TipChord(),
			IsSystem:     p.IsSystem,
		})
	}

	httputil.WriteJSONOK(w, map[string]interface{}{
		"planforms": summaries,
		"count":     len(summaries),
	})
}

// handleCreatePlanform stores a new planform from the request body.
func (s *Server) handleCreatePlanform(w http.ResponseWriter, r *http.Request) {
	var planform db.Planform
	if err := json.NewDecoder(r.Body).Decode(&planform); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	geometry := planform.Geometry()
	if err := geometry.Validate(); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	planform.IsSystem = false

	if err := s.db.CreatePlanform(&planform); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("insert failed: %v", err))
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, planform)
}

// handlePlanformByID handles /api/planforms/{id} (get and delete). The
// path segment may be a numeric ID or a planform name.
func (s *Server) handlePlanformByID(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/api/planforms/"))
	if key == "" || strings.Contains(key, "/") {
		httputil.BadRequest(w, "planform id or name is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetPlanform(w, r, key)
	case http.MethodDelete:
		s.handleDeletePlanform(w, r, key)
	default:
		httputil.MethodNotAllowed(w)
	}
}

// lookupPlanform fetches a planform by numeric ID or by name.
func (s *Server) lookupPlanform(key string) (*db.Planform, error) {
	if id, err := strconv.Atoi(key); err == nil {
		return s.db.GetPlanform(id)
	}
	planform, err := s.db.GetPlanformByName(key)
	if err != nil {
		return nil, err
	}
	if planform == nil {
		return nil, fmt.Errorf("planform %q: %w", key, db.ErrNotFound)
	}
	return planform, nil
}

func (s *Server) handleGetPlanform(w http.ResponseWriter, r *http.Request, key string) {
	planform, err := s.lookupPlanform(key)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			httputil.NotFound(w, err.Error())
			return
		}
		httputil.InternalServerError(w, fmt.Sprintf("query failed: %v", err))
		return
	}

	// Attach computed metrics so clients get span and area without
	// running a loft.
	metrics, err := geom.ComputeMetrics(planform.Geometry())
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("metrics failed: %v", err))
		return
	}

	httputil.WriteJSONOK(w, map[string]interface{}{
		"planform": planform,
		"metrics":  metrics,
	})
}

func (s *Server) handleDeletePlanform(w http.ResponseWriter, r *http.Request, key string) {
	planform, err := s.lookupPlanform(key)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			httputil.NotFound(w, err.Error())
			return
		}
		httputil.InternalServerError(w, fmt.Sprintf("query failed: %v", err))
		return
	}
	if planform.IsSystem {
		httputil.WriteJSONError(w, http.StatusForbidden, fmt.Sprintf("planform %q is a system planform and cannot be deleted", planform.Name))
		return
	}

	if err := s.db.DeletePlanform(planform.ID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			httputil.NotFound(w, err.Error())
			return
		}
		httputil.InternalServerError(w, fmt.Sprintf("delete failed: %v", err))
		return
	}

	httputil.WriteJSONOK(w, map[string]interface{}{
		"deleted": planform.ID,
		"name":    planform.Name,
	})
}

// resolvePlanform picks the spanwise schedule for a loft: inline stations
// win, then a stored planform by name or ID, then the demo planform.
func (s *Server) resolvePlanform(req *LoftRequest) (geom.Planform, *int, error) {
	if len(req.Stations) > 0 {
		p := geom.Planform{Name: "inline", Stations: req.Stations}
		if err := p.Validate(); err != nil {
			return geom.Planform{}, nil, err
		}
		return p, nil, nil
	}

	key := req.Planform
	if key == "" {
		key = "demo"
	}
	stored, err := s.lookupPlanform(key)
	if err != nil {
		return geom.Planform{}, nil, err
	}
	return stored.Geometry(), &stored.ID, nil
}
