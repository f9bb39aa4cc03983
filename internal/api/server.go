// Package api serves the wingloft HTTP surface: JSON CRUD for stored
// airfoils and planforms, the loft endpoint that builds and samples a
// spline surface, run history, and the rendered geometry charts.
package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/chordline-aero/wingloft/internal/config"
	"github.com/chordline-aero/wingloft/internal/db"
	"github.com/chordline-aero/wingloft/internal/httputil"
	"github.com/chordline-aero/wingloft/internal/render"
	"github.com/chordline-aero/wingloft/internal/timeutil"
	"github.com/chordline-aero/wingloft/internal/version"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// Server carries the handler dependencies: the geometry store, the
// loaded configuration, and a clock so loft timing is testable.
type Server struct {
	db    *db.DB
	cfg   *config.WingConfig
	clock timeutil.Clock
}

func NewServer(database *db.DB, cfg *config.WingConfig) *Server {
	if cfg == nil {
		cfg = config.DefaultWingConfig()
	}
	return &Server{
		db:    database,
		cfg:   cfg,
		clock: timeutil.RealClock{},
	}
}

// chartOptions translates the configured chart shell into render options.
func (s *Server) chartOptions() render.ChartOptions {
	return render.ChartOptions{
		Theme:  s.cfg.GetChartTheme(),
		Width:  s.cfg.GetChartWidth(),
		Height: s.cfg.GetChartHeight(),
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400 && statusCode < 500:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 500:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration, and
// stamps every response with the serving version.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		w.Header().Set("X-Wingloft-Version", version.Version)
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/airfoils", s.handleAirfoils)
	mux.HandleFunc("/api/airfoils/", s.handleAirfoilByID)
	mux.HandleFunc("/api/planforms", s.handlePlanforms)
	mux.HandleFunc("/api/planforms/", s.handlePlanformByID)
	mux.HandleFunc("/api/loft", s.handleLoft)
	mux.HandleFunc("/api/runs", s.handleRuns)
	mux.HandleFunc("/api/runs/", s.handleRunByID)
	mux.HandleFunc("/api/config", s.showConfig)
	mux.HandleFunc("/api/health", s.showHealth)
	mux.HandleFunc("/charts/wing", s.handleWingChart)
	mux.HandleFunc("/charts/planform", s.handlePlanformChart)
	mux.HandleFunc("/charts/airfoil", s.handleAirfoilChart)
	return mux
}

func (s *Server) showConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	// Report the effective values, not the sparse file contents, so
	// clients see what the server will actually use.
	cfg := map[string]interface{}{
		"max_degree":   s.cfg.GetMaxDegree(),
		"samples_u":    s.cfg.GetSamplesU(),
		"samples_v":    s.cfg.GetSamplesV(),
		"chart_theme":  s.cfg.GetChartTheme(),
		"chart_width":  s.cfg.GetChartWidth(),
		"chart_height": s.cfg.GetChartHeight(),
		"output_dir":   s.cfg.GetOutputDir(),
		"db_path":      s.cfg.GetDBPath(),
		"units":        s.cfg.GetUnits(),
	}

	httputil.WriteJSONOK(w, cfg)
}

func (s *Server) showHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	httputil.WriteJSONOK(w, map[string]string{
		"status":    "ok",
		"service":   "wingloft",
		"version":   version.Version,
		"timestamp": s.clock.Now().UTC().Format(time.RFC3339),
	})
}
