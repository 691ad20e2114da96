package ranking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/opportunity-matcher/internal/logger"
	"github.com/jonathan/opportunity-matcher/internal/types"
	"go.uber.org/zap"
)

// Points awarded by the fallback scorer, out of 100
const (
	gradePoints         = 40.0
	openGradePoints     = 20.0
	interestPoints      = 30.0
	locationPoints      = 10.0
	featuredPoints      = 10.0
	urgentDeadlinePts   = 10.0
	upcomingDeadlinePts = 5.0
)

// RuleBasedMatch scores an opportunity on a 0-100 scale from grade, interests,
// location, featured flag and deadline. An opportunity with no reasons scores zero.
func RuleBasedMatch(profile *types.Profile, opp *types.Opportunity, now time.Time) (float64, []string) {
	score := 0.0
	var reasons []string

	if containsGrade(opp.GradeLevels, profile.GradeLevel) {
		score += gradePoints
		reasons = append(reasons, fmt.Sprintf("Perfect grade level match (Grade %s)", profile.GradeLevel))
	} else if opp.OpenToAllGrades() {
		score += openGradePoints
		reasons = append(reasons, "Open to all grade levels")
	}

	if len(profile.Interests) > 0 {
		if matched := matchedInterests(profile.Interests, opp.Interests); len(matched) > 0 {
			score += interestPoints * float64(len(matched)) / float64(len(profile.Interests))
			reasons = append(reasons, fmt.Sprintf("Matches %d of your interests", len(matched)))
		}
	}

	if isRemote(opp.Location) {
		score += locationPoints
		reasons = append(reasons, "Remote/Virtual opportunity")
	} else if locationsOverlap(profile.Location, opp.Location) {
		score += locationPoints
		reasons = append(reasons, fmt.Sprintf("Located near you (%s)", opp.Location))
	}

	if opp.IsFeatured {
		score += featuredPoints
		reasons = append(reasons, "Featured opportunity")
	}

	if opp.Deadline != nil {
		days := daysUntil(*opp.Deadline, now)
		switch {
		case days >= 0 && days <= urgentDeadlineDays:
			score += urgentDeadlinePts
			reasons = append(reasons, fmt.Sprintf("Urgent: deadline in %d days", days))
		case days > urgentDeadlineDays && days <= soonDeadlineDays:
			score += upcomingDeadlinePts
			reasons = append(reasons, fmt.Sprintf("Deadline in %d days", days))
		}
	}

	if len(reasons) == 0 {
		return 0, nil
	}
	return clamp(score, 0, 100), reasons
}

// FallbackMatcher ranks opportunities with RuleBasedMatch only.
type FallbackMatcher struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewFallbackMatcher creates a FallbackMatcher reading from store.
func NewFallbackMatcher(store Store, logger *zap.Logger) *FallbackMatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackMatcher{store: store, logger: logger, now: time.Now}
}

// WithClock replaces the time source used for deadline rules.
func (f *FallbackMatcher) WithClock(now func() time.Time) *FallbackMatcher {
	f.now = now
	return f
}

// MatchOpportunities scores the whole corpus for a user.
// Fetch failures yield an empty result and a nil error.
func (f *FallbackMatcher) MatchOpportunities(ctx context.Context, userID uuid.UUID, limit int) ([]types.Match, error) {
	profile, opps, err := loadInputs(ctx, f.store, userID, types.OpportunityFilter{})
	if err != nil {
		f.logger.Warn("rule-based match: no data",
			zap.String(logger.FieldUserID, userID.String()),
			zap.Error(err),
		)
		return []types.Match{}, nil
	}
	return f.rank(profile, opps, limit), nil
}

// SearchOpportunities applies the search filters before scoring.
func (f *FallbackMatcher) SearchOpportunities(ctx context.Context, userID uuid.UUID, query string, filters *types.SearchFilters, limit int) ([]types.Match, error) {
	profile, opps, err := loadInputs(ctx, f.store, userID, typeFilter(filters))
	if err != nil {
		f.logger.Warn("rule-based search: no data",
			zap.String(logger.FieldUserID, userID.String()),
			zap.Error(err),
		)
		return []types.Match{}, nil
	}
	return f.rank(profile, FilterOpportunities(opps, query, filters), limit), nil
}

func (f *FallbackMatcher) rank(profile *types.Profile, opps []types.Opportunity, limit int) []types.Match {
	now := f.now()

	matches := make([]types.Match, 0, len(opps))
	for i := range opps {
		score, reasons := RuleBasedMatch(profile, &opps[i], now)
		if score <= 0 {
			continue
		}
		matches = append(matches, types.Match{
			Opportunity: opps[i],
			Score:       score,
			Reasons:     reasons,
		})
	}

	sortMatches(matches)
	return truncate(matches, normalizeLimit(limit))
}
