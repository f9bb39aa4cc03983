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

// handleAirfoils handles /api/airfoils (list and create).
func (s *Server) handleAirfoils(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListAirfoils(w, r)
	case http.MethodPost:
		s.handleCreateAirfoil(w, r)
	default:
		httputil.MethodNotAllowed(w)
	}
}

// handleListAirfoils lists stored airfoils. Point arrays are omitted from
// the listing; fetch a single airfoil to get its coordinates.
func (s *Server) handleListAirfoils(w http.ResponseWriter, r *http.Request) {
	airfoils, err := s.db.GetAllAirfoils()
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("query failed: %v", err))
		return
	}

	type airfoilSummary struct {
		ID          int     `json:"id"`
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Source      string  `json:"source"`
		PointCount  int     `json:"point_count"`
		IsSystem    bool    `json:"is_system"`
	}

	summaries := make([]airfoilSummary, 0, len(airfoils))
	for _, a := range airfoils {
		summaries = append(summaries, airfoilSummary{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Source:      a.Source,
			PointCount:  len(a.Points),
			IsSystem:    a.IsSystem,
		})
	}

	httputil.WriteJSONOK(w, map[string]interface{}{
		"airfoils": summaries,
		"count":    len(summaries),
	})
}

// handleCreateAirfoil stores a new airfoil from the request body.
func (s *Server) handleCreateAirfoil(w http.ResponseWriter, r *http.Request) {
	var airfoil db.Airfoil
	if err := json.NewDecoder(r.Body).Decode(&airfoil); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	section := airfoil.Section()
	if err := section.Validate(); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if airfoil.Source == "" {
		airfoil.Source = "api"
	}

	// Client-supplied rows never become system rows; those only come
	// from the seeder.
	airfoil.IsSystem = false

	if err := s.db.CreateAirfoil(&airfoil); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("insert failed: %v", err))
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, airfoil)
}

// handleAirfoilByID handles /api/airfoils/{id} (get and delete). The path
// segment may be a numeric ID or an airfoil name.
func (s *Server) handleAirfoilByID(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/api/airfoils/"))
	if key == "" || strings.Contains(key, "/") {
		httputil.BadRequest(w, "airfoil id or name is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetAirfoil(w, r, key)
	case http.MethodDelete:
		s.handleDeleteAirfoil(w, r, key)
	default:
		httputil.MethodNotAllowed(w)
	}
}

// lookupAirfoil fetches an airfoil by numeric ID or by name.
func (s *Server) lookupAirfoil(key string) (*db.Airfoil, error) {
	if id, err := strconv.Atoi(key); err == nil {
		return s.db.GetAirfoil(id)
	}
	airfoil, err := s.db.GetAirfoilByName(key)
	if err != nil {
		return nil, err
	}
	if airfoil == nil {
		return nil, fmt.Errorf("airfoil %q: %w", key, db.ErrNotFound)
	}
	return airfoil, nil
}

func (s *Server) handleGetAirfoil(w http.ResponseWriter, r *http.Request, key string) {
	airfoil, err := s.lookupAirfoil(key)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			httputil.NotFound(w, err.Error())
			return
		}
		httputil.InternalServerError(w, fmt.Sprintf("query failed: %v", err))
		return
	}

	httputil.WriteJSONOK(w, airfoil)
}

func (s *Server) handleDeleteAirfoil(w http.ResponseWriter, r *http.Request, key string) {
	airfoil, err := s.lookupAirfoil(key)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			httputil.NotFound(w, err.Error())
			return
		}
		httputil.InternalServerError(w, fmt.Sprintf("query failed: %v", err))
		return
	}
	if airfoil.IsSystem {
		httputil.WriteJSONError(w, http.StatusForbidden, fmt.Sprintf("airfoil %q is a system airfoil and cannot be deleted", airfoil.Name))
		return
	}

	if err := s.db.DeleteAirfoil(airfoil.ID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			httputil.NotFound(w, err.Error())
			return
		}
		httputil.InternalServerError(w, fmt.Sprintf("delete failed: %v", err))
		return
	}

	httputil.WriteJSONOK(w, map[string]interface{}{
		"deleted": airfoil.ID,
		"name":    airfoil.Name,
	})
}

// resolveAirfoil picks the section geometry for a loft: inline points win,
// then a stored airfoil by name or ID, then the built-in demo section.
func (s *Server) resolveAirfoil(req *LoftRequest) (geom.Airfoil, *int, error) {
	if len(req.AirfoilPoints) > 0 {
		a := geom.Airfoil{Name: "inline", Points: req.AirfoilPoints}
		if err := a.Validate(); err != nil {
			return geom.Airfoil{}, nil, err
		}
		return a, nil, nil
	}

	key := req.Airfoil
	if key == "" {
		key = "demo"
	}
	stored, err := s.lookupAirfoil(key)
	if err != nil {
		return geom.Airfoil{}, nil, err
	}
	return stored.Section(), &stored.ID, nil
}
