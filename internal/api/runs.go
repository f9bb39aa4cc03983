package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/chordline-aero/wingloft/internal/db"
	"github.com/chordline-aero/wingloft/internal/httputil"
)

// maxRunsPerQuery caps the run history listing. Older runs stay in the
// database; clients page with the limit parameter.
const maxRunsPerQuery = 100

// handleRuns handles /api/runs (list).
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	limit := maxRunsPerQuery
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.BadRequest(w, fmt.Sprintf("invalid limit: %q", raw))
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	runs, err := s.db.GetRecentLoftRuns(limit)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("query failed: %v", err))
		return
	}

	httputil.WriteJSONOK(w, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// handleRunByID handles /api/runs/{id} (get and delete).
func (s *Server) handleRunByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/api/runs/"))
	if id == "" || strings.Contains(id, "/") {
		httputil.BadRequest(w, "run id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		run, err := s.db.GetLoftRun(id)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				httputil.NotFound(w, err.Error())
				return
			}
			httputil.InternalServerError(w, fmt.Sprintf("query failed: %v", err))
			return
		}
		httputil.WriteJSONOK(w, run)
	case http.MethodDelete:
		if err := s.db.DeleteLoftRun(id); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				httputil.NotFound(w, err.Error())
				return
			}
			httputil.InternalServerError(w, fmt.Sprintf("delete failed: %v", err))
			return
		}
		httputil.WriteJSONOK(w, map[string]interface{}{"deleted": id})
	default:
		httputil.MethodNotAllowed(w)
	}
}
