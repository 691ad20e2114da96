package ranking

import (
	"time"

	"github.com/jonathan/opportunity-matcher/internal/types"
)

const (
	featuredBonus      = 0.10
	preferredTypeBonus = 0.05
	recencyBonus       = 0.05

	recentWindow = 30 * 24 * time.Hour
)

// preferredTypes receive a small bonus regardless of the profile.
var preferredTypes = map[string]bool{
	types.OpportunityInternship:    true,
	types.OpportunityResearch:      true,
	types.OpportunitySummerProgram: true,
}

// RuleBasedScore returns fixed bonuses that do not depend on the profile.
func RuleBasedScore(opp *types.Opportunity, now time.Time) (float64, []string) {
	score := 0.0
	var reasons []string

	if opp.IsFeatured {
		score += featuredBonus
		reasons = append(reasons, "Featured opportunity")
	}

	if preferredTypes[opp.Type] {
		score += preferredTypeBonus
	}

	if isRecent(opp.CreatedAt, now) {
		score += recencyBonus
		reasons = append(reasons, "Recently added")
	}

	return clamp(score, 0, 1), reasons
}

func isRecent(createdAt, now time.Time) bool {
	if createdAt.IsZero() {
		return false
	}
	return now.Sub(createdAt) <= recentWindow
}
