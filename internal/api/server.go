// Package api serves the planning and conflict services over HTTP with
// JSON request and response bodies.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/mangala/internal/repository"
	"github.com/alexanderramin/mangala/internal/service"
)

const maxBodyBytes = 1 << 20

// Server routes requests to the planning and conflict services.
type Server struct {
	planning  service.PlanningService
	conflicts service.ConflictService
	metrics   *Metrics
	logger    *slog.Logger
	mux       *http.ServeMux
}

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics shares a Metrics value with other components, typically so
// the services can report use cases to the same registry.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

func NewServer(planning service.PlanningService, conflicts service.ConflictService, opts ...Option) *Server {
	s := &Server{
		planning:  planning,
		conflicts: conflicts,
		logger:    slog.Default(),
		mux:       http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/rituals", s.handleListRituals)
	s.mux.HandleFunc("GET /api/rituals/{id}", s.handleGetRitual)
	s.mux.HandleFunc("POST /api/rituals/tasks", s.handleGenerateTasks)
	s.mux.HandleFunc("POST /api/rituals/validate", s.handleValidate)
	s.mux.HandleFunc("POST /api/rituals/timeline", s.handleTimeline)

	s.mux.HandleFunc("POST /api/conflicts/detect", s.handleDetect)
	s.mux.HandleFunc("GET /api/conflicts", s.handleListConflicts)
	s.mux.HandleFunc("GET /api/conflicts/{id}", s.handleGetConflict)
	s.mux.HandleFunc("POST /api/conflicts/{id}/resolve", s.handleResolve)
	s.mux.HandleFunc("POST /api/conflicts/{id}/dismiss", s.handleDismiss)

	s.mux.Handle("GET /metrics", s.metrics.Handler())
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Handler returns the instrumented router.
func (s *Server) Handler() http.Handler {
	return instrument(s.mux, s.metrics, s.logger)
}

func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// decode reads a size-limited JSON body into v. Unknown fields are
// rejected.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusFor maps service and repository errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotActive):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidResolution),
		errors.Is(err, service.ErrMissingReason),
		errors.Is(err, service.ErrMissingWeddingID):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
