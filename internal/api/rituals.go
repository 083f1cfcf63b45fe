package api

import (
	"net/http"

	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/alexanderramin/mangala/internal/generator"
)

// ritualRequest is the body shared by the validate and timeline routes.
type ritualRequest struct {
	Rituals     []string `json:"rituals"`
	WeddingDate string   `json:"weddingDate"`
}

type timelineResponse struct {
	Timeline []generator.TimelineEntry `json:"timeline"`
}

func (s *Server) handleListRituals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.planning.Rituals(r.Context()))
}

func (s *Server) handleGetRitual(w http.ResponseWriter, r *http.Request) {
	id := domain.RitualType(r.PathValue("id"))
	tmpl, ok := s.planning.Ritual(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown ritual "+string(id))
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}

func (s *Server) handleGenerateTasks(w http.ResponseWriter, r *http.Request) {
	var req generator.GenerationRequest
	if err := decode(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	resp, err := s.planning.GenerateTasks(r.Context(), req)
	if err != nil {
		// The only generation failure is an unparseable wedding date.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ritualRequest
	if err := decode(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.planning.Validate(r.Context(), req.Rituals, req.WeddingDate))
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	var req ritualRequest
	if err := decode(w, r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	entries, err := s.planning.Timeline(r.Context(), req.Rituals, req.WeddingDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if entries == nil {
		entries = []generator.TimelineEntry{}
	}
	writeJSON(w, http.StatusOK, timelineResponse{Timeline: entries})
}
