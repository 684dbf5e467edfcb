// Package server exposes the dashboard pipeline over HTTP for the
// browser frontend.
package server

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/peter890821/esg-eval-dashboard/internal/board"
	"github.com/peter890821/esg-eval-dashboard/internal/export"
	"github.com/peter890821/esg-eval-dashboard/internal/filter"
	"github.com/peter890821/esg-eval-dashboard/internal/model"
	"github.com/peter890821/esg-eval-dashboard/internal/view"
)

// Options configures the dashboard API server.
type Options struct {
	AllowedOrigins []string
	// SearchRatePerSec throttles search-bearing requests, the
	// server-side counterpart of the client's input debounce.
	SearchRatePerSec float64
}

// Server serves the dashboard API over an immutable record set. When
// the dataset failed to load, every API route reports the failure
// instead of a silent empty board.
type Server struct {
	records []model.Record
	loadErr error
	opts    Options

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	perSec   float64
}

// New creates a Server. Exactly one of records and loadErr should be
// meaningful: pass the load error to put the server into the visible
// failure state.
func New(records []model.Record, loadErr error, opts Options) *Server {
	perSec := opts.SearchRatePerSec
	if perSec <= 0 {
		perSec = 5
	}
	return &Server{
		records:  records,
		loadErr:  loadErr,
		opts:     opts,
		limiters: make(map[string]*rate.Limiter),
		perSec:   perSec,
	}
}

// limiterFor returns the per-client limiter, creating it on first use.
func (s *Server) limiterFor(remoteAddr string) *rate.Limiter {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Limit(s.perSec), int(s.perSec))
		s.limiters[host] = l
	}
	return l
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireDataset)
		r.Use(s.throttleSearch)
		r.Get("/indicators", s.handleIndicators)
		r.Get("/indicators/{id}", s.handleDetail)
		r.Get("/board", s.handleBoard)
		r.Get("/departments", s.handleDepartments)
		r.Get("/export.csv", s.handleExportCSV)
		r.Get("/export.xlsx", s.handleExportXLSX)
	})

	return r
}

// requireDataset turns a terminal load failure into a visible 503 on
// every API route.
func (s *Server) requireDataset(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if s.loadErr != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"error": "資料載入失敗：" + s.loadErr.Error(),
			})
			return
		}
		next.ServeHTTP(w, req)
	})
}

// throttleSearch rate-limits requests carrying a search term.
func (s *Server) throttleSearch(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Query().Get("q") != "" && !s.limiterFor(req.RemoteAddr).Allow() {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "search rate exceeded"})
			return
		}
		next.ServeHTTP(w, req)
	})
}

func (s *Server) handleIndicators(w http.ResponseWriter, req *http.Request) {
	filtered := filter.Apply(s.records, criteriaFromQuery(req))
	writeJSON(w, http.StatusOK, map[string]any{
		"total": len(filtered),
		"rows":  view.SummarizeAll(filtered),
	})
}

func (s *Server) handleBoard(w http.ResponseWriter, req *http.Request) {
	filtered := filter.Apply(s.records, criteriaFromQuery(req))
	writeJSON(w, http.StatusOK, map[string]any{
		"total":   len(filtered),
		"columns": view.ProjectGroups(board.Build(filtered)),
	})
}

func (s *Server) handleDetail(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	for _, r := range s.records {
		if r.ID == id {
			writeJSON(w, http.StatusOK, view.Project(r))
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown indicator " + id})
}

func (s *Server) handleDepartments(w http.ResponseWriter, req *http.Request) {
	departments := filter.Departments(s.records)
	writeJSON(w, http.StatusOK, map[string]any{"departments": departments})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, req *http.Request) {
	filtered := filter.Apply(s.records, criteriaFromQuery(req))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.CSVFilename+`"`)
	if _, err := w.Write(export.CSV(filtered)); err != nil {
		zap.L().Warn("csv export write failed", zap.Error(err))
	}
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, req *http.Request) {
	filtered := filter.Apply(s.records, criteriaFromQuery(req))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.XLSXFilename+`"`)
	if err := export.XLSX(filtered, w); err != nil {
		zap.L().Warn("xlsx export write failed", zap.Error(err))
	}
}

// criteriaFromQuery maps the filter controls' query parameters onto
// the filter predicate.
func criteriaFromQuery(req *http.Request) filter.Criteria {
	q := req.URL.Query()
	return filter.Criteria{
		Face:       model.Face(q.Get("face")),
		Status:     model.StatusTag(q.Get("status")),
		Department: q.Get("department"),
		Search:     q.Get("q"),
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("response encode failed", zap.Error(err))
	}
}
