package ranking

import (
	"strings"

	"github.com/jonathan/opportunity-matcher/internal/types"
)

// FilterOpportunities applies the client-side search filters and the free-text query.
// The type filter is expected to have been applied by the store.
func FilterOpportunities(opps []types.Opportunity, query string, filters *types.SearchFilters) []types.Opportunity {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]types.Opportunity, 0, len(opps))
	for _, opp := range opps {
		if filters != nil {
			if filters.GradeLevel != "" && !opp.OpenToAllGrades() && !containsGrade(opp.GradeLevels, filters.GradeLevel) {
				continue
			}
			if len(filters.Interests) > 0 && !hasInterestSubstring(opp.Interests, filters.Interests) {
				continue
			}
		}
		if q != "" && !matchesQuery(&opp, q) {
			continue
		}
		out = append(out, opp)
	}
	return out
}

// hasInterestSubstring reports whether any wanted interest is a substring of any tag.
func hasInterestSubstring(tags, wanted []string) bool {
	for _, w := range wanted {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		for _, tag := range tags {
			if strings.Contains(strings.ToLower(tag), w) {
				return true
			}
		}
	}
	return false
}

// matchesQuery expects q to be lower-cased already.
func matchesQuery(opp *types.Opportunity, q string) bool {
	if strings.Contains(strings.ToLower(opp.Title), q) ||
		strings.Contains(strings.ToLower(opp.Description), q) ||
		strings.Contains(strings.ToLower(opp.Organization), q) {
		return true
	}
	for _, interest := range opp.Interests {
		if strings.Contains(strings.ToLower(interest), q) {
			return true
		}
	}
	return false
}

// titleOrDescriptionContains expects q to be lower-cased already.
func titleOrDescriptionContains(opp *types.Opportunity, q string) bool {
	if q == "" {
		return false
	}
	return strings.Contains(strings.ToLower(opp.Title), q) ||
		strings.Contains(strings.ToLower(opp.Description), q)
}

func typeFilter(filters *types.SearchFilters) types.OpportunityFilter {
	if filters == nil {
		return types.OpportunityFilter{}
	}
	return types.OpportunityFilter{Type: filters.Type}
}
