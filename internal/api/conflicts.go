package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/alexanderramin/mangala/internal/conflict"
	"github.com/alexanderramin/mangala/internal/domain"
)

type resolveRequest struct {
	ResolutionID string `json:"resolutionId"`
}

type dismissRequest struct {
	Reason string `json:"reason"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type conflictListResponse struct {
	Conflicts []*domain.Conflict `json:"conflicts"`
}

// handleDetect runs detection and stores the result for the wedding.
// ?persist=false returns the result without storing it.
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	persist := true
	if raw := r.URL.Query().Get("persist"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid persist value %q", raw))
			return
		}
		persist = v
	}

	var req conflict.DetectionRequest
	if err := decode(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	resp, err := s.conflicts.Detect(r.Context(), req, persist)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.observeDetection(resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListConflicts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := domain.ConflictStatus(q.Get("status"))
	switch status {
	case "", domain.ConflictActive, domain.ConflictResolved, domain.ConflictDismissed:
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid status %q", status))
		return
	}

	conflicts, err := s.conflicts.List(r.Context(), q.Get("wedding_id"), status)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if conflicts == nil {
		conflicts = []*domain.Conflict{}
	}
	writeJSON(w, http.StatusOK, conflictListResponse{Conflicts: conflicts})
}

func (s *Server) handleGetConflict(w http.ResponseWriter, r *http.Request) {
	c, err := s.conflicts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decode(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	if req.ResolutionID == "" {
		writeError(w, http.StatusBadRequest, "resolutionId is required")
		return
	}
	ok, err := s.conflicts.Resolve(r.Context(), r.PathValue("id"), req.ResolutionID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: ok})
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	var req dismissRequest
	if err := decode(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	ok, err := s.conflicts.Dismiss(r.Context(), r.PathValue("id"), req.Reason)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: ok})
}
