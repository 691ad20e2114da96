package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/opportunity-matcher/internal/config"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

// MatchesResponse is the body of both matching endpoints.
type MatchesResponse struct {
	Matches []types.Match `json:"matches"`
	Count   int           `json:"count"`
}

// handleGetMatches returns personalized matches for the user
func (s *Server) handleGetMatches(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	limit := parseQueryInt(r, "limit", config.DefaultLimit, config.MaxLimit)
	useRAG := parseQueryBool(r, "rag", s.useRAG)

	matches := s.matcher.GetPersonalizedOpportunities(r.Context(), userID, limit, useRAG)
	s.jsonResponse(w, http.StatusOK, MatchesResponse{Matches: matches, Count: len(matches)})
}

// handleSearchMatches searches opportunities and ranks them for the user
func (s *Server) handleSearchMatches(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	filters, err := parseSearchFilters(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := parseQueryInt(r, "limit", config.DefaultLimit, config.MaxLimit)
	useRAG := parseQueryBool(r, "rag", s.useRAG)

	matches := s.matcher.SearchOpportunities(r.Context(), userID, query, filters, limit, useRAG)
	s.jsonResponse(w, http.StatusOK, MatchesResponse{Matches: matches, Count: len(matches)})
}

// parseSearchFilters reads type, grade_level and comma-separated interests.
func parseSearchFilters(r *http.Request) (*types.SearchFilters, error) {
	q := r.URL.Query()
	filters := &types.SearchFilters{
		Type:       strings.TrimSpace(q.Get("type")),
		GradeLevel: strings.TrimSpace(q.Get("grade_level")),
		Interests:  splitList(q.Get("interests")),
	}

	if err := filters.Validate(); err != nil {
		return nil, &ErrValidation{Field: "filters", Message: err.Error()}
	}
	if filters.IsEmpty() {
		return nil, nil
	}
	return filters, nil
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
