package ranking

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/opportunity-matcher/internal/types"
)

// ProfileEmbeddingText concatenates the free-text fields of a profile.
func ProfileEmbeddingText(p *types.Profile) string {
	parts := []string{p.Bio, p.School}
	parts = append(parts, p.Interests...)
	parts = append(parts, p.Skills...)
	parts = append(parts, p.Achievements...)
	parts = append(parts, p.Projects...)
	return joinLower(parts)
}

// OpportunityEmbeddingText concatenates the free-text fields of an opportunity.
func OpportunityEmbeddingText(o *types.Opportunity) string {
	parts := []string{o.Title, o.Description, o.Organization, o.Type}
	parts = append(parts, o.Interests...)
	return joinLower(parts)
}

func joinLower(parts []string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.ToLower(strings.Join(nonEmpty, " "))
}

// isRemote reports whether a location marks a remote or virtual opportunity.
func isRemote(location string) bool {
	loc := strings.ToLower(location)
	return strings.Contains(loc, "remote") || strings.Contains(loc, "virtual")
}

// locationsOverlap reports whether either location contains the other.
func locationsOverlap(profileLocation, opportunityLocation string) bool {
	p := strings.ToLower(strings.TrimSpace(profileLocation))
	o := strings.ToLower(strings.TrimSpace(opportunityLocation))
	if p == "" || o == "" {
		return false
	}
	return strings.Contains(o, p) || strings.Contains(p, o)
}

// daysUntil returns the whole days from now to t, rounded up.
func daysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// gradeAdjacent reports whether grade is one year away from any of grades.
func gradeAdjacent(grade string, grades []string) bool {
	g, err := strconv.Atoi(grade)
	if err != nil {
		return false
	}
	for _, other := range grades {
		o, err := strconv.Atoi(other)
		if err != nil {
			continue
		}
		if o-g == 1 || g-o == 1 {
			return true
		}
	}
	return false
}

func containsGrade(grades []string, grade string) bool {
	if grade == "" {
		return false
	}
	for _, g := range grades {
		if g == grade {
			return true
		}
	}
	return false
}

// matchedInterests returns the profile interests that equal an opportunity interest,
// ignoring case.
func matchedInterests(profileInterests, opportunityInterests []string) []string {
	tags := make(map[string]struct{}, len(opportunityInterests))
	for _, interest := range opportunityInterests {
		tags[strings.ToLower(interest)] = struct{}{}
	}

	var matched []string
	for _, interest := range profileInterests {
		if _, ok := tags[strings.ToLower(interest)]; ok {
			matched = append(matched, interest)
		}
	}
	return matched
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
