package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/opportunity-matcher/internal/config"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

// handleListOpportunities lists the newest opportunities, optionally of one type
func (s *Server) handleListOpportunities(w http.ResponseWriter, r *http.Request) {
	filter := types.OpportunityFilter{
		Type:  r.URL.Query().Get("type"),
		Limit: parseQueryInt(r, "limit", config.DefaultLimit, config.MaxLimit),
	}

	opportunities, err := s.store.ListOpportunities(r.Context(), filter)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if opportunities == nil {
		opportunities = []types.Opportunity{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"opportunities": opportunities,
		"count":         len(opportunities),
	})
}

// handleGetOpportunity returns a single opportunity by ID
func (s *Server) handleGetOpportunity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid opportunity ID")
		return
	}

	opportunity, err := s.store.GetOpportunity(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if opportunity == nil {
		s.handleError(w, &ErrOpportunityNotFound{ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, opportunity)
}
