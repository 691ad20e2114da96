// Package ranking scores opportunities against a learner profile.
//
// Two matchers live here. Matcher combines term-frequency similarity, a contextual
// attribute comparison and small rule-based bonuses into a weighted score.
// FallbackMatcher is an independent points-based scorer used when the first one fails
// or is disabled.
package ranking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/opportunity-matcher/internal/types"
	"golang.org/x/sync/errgroup"
)

// DefaultLimit is used when a caller passes a non-positive limit.
const DefaultLimit = 10

// ErrProfileNotFound is returned by loaders when the store has no profile for the user.
var ErrProfileNotFound = errors.New("profile not found")

// Store is the data boundary of the matcher.
// GetProfile returns nil, nil when the profile does not exist.
// ListOpportunities returns opportunities ordered by creation date, newest first.
type Store interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	ListOpportunities(ctx context.Context, filter types.OpportunityFilter) ([]types.Opportunity, error)
}

// loadInputs fetches the profile and the opportunity corpus concurrently.
func loadInputs(ctx context.Context, store Store, userID uuid.UUID, filter types.OpportunityFilter) (*types.Profile, []types.Opportunity, error) {
	var profile *types.Profile
	var opportunities []types.Opportunity

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := store.GetProfile(gCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}
		if p == nil {
			return fmt.Errorf("%w: %s", ErrProfileNotFound, userID)
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		opps, err := store.ListOpportunities(gCtx, filter)
		if err != nil {
			return fmt.Errorf("failed to fetch opportunities: %w", err)
		}
		opportunities = opps
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return profile, opportunities, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
