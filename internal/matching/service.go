// Package matching is the entry point used by the API and the CLI. It runs the
// ranking strategies in order and never fails the caller.
package matching

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/opportunity-matcher/internal/logger"
	"github.com/jonathan/opportunity-matcher/internal/ranking"
	"github.com/jonathan/opportunity-matcher/internal/types"
	"go.uber.org/zap"
)

// Strategy names, in chain order.
const (
	StrategyRAG   = "rag"
	StrategyRules = "rules"
)

// Matcher is a ranking strategy.
type Matcher interface {
	MatchOpportunities(ctx context.Context, userID uuid.UUID, limit int) ([]types.Match, error)
	SearchOpportunities(ctx context.Context, userID uuid.UUID, query string, filters *types.SearchFilters, limit int) ([]types.Match, error)
}

// Step is a named strategy in the chain.
type Step struct {
	Name    string
	Matcher Matcher
}

// Service runs an ordered chain of strategies.
// A strategy that errors, panics or returns nothing yields to the next one.
type Service struct {
	steps  []Step
	logger *zap.Logger
}

// NewService builds the default chain over store: rag, then rules.
func NewService(store ranking.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return NewWithSteps(logger,
		Step{Name: StrategyRAG, Matcher: ranking.NewMatcher(store, logger)},
		Step{Name: StrategyRules, Matcher: ranking.NewFallbackMatcher(store, logger)},
	)
}

// NewWithSteps builds a Service from explicit steps.
func NewWithSteps(logger *zap.Logger, steps ...Step) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{steps: steps, logger: logger}
}

// GetPersonalizedOpportunities returns ranked matches for a user.
// When useRAG is false the rag strategy is skipped.
func (s *Service) GetPersonalizedOpportunities(ctx context.Context, userID uuid.UUID, limit int, useRAG bool) []types.Match {
	return s.run(ctx, "match", userID, useRAG, func(m Matcher) ([]types.Match, error) {
		return m.MatchOpportunities(ctx, userID, limit)
	})
}

// SearchOpportunities returns ranked matches narrowed by query and filters.
func (s *Service) SearchOpportunities(ctx context.Context, userID uuid.UUID, query string, filters *types.SearchFilters, limit int, useRAG bool) []types.Match {
	return s.run(ctx, "search", userID, useRAG, func(m Matcher) ([]types.Match, error) {
		return m.SearchOpportunities(ctx, userID, query, filters, limit)
	})
}

func (s *Service) run(ctx context.Context, op string, userID uuid.UUID, useRAG bool, call func(Matcher) ([]types.Match, error)) []types.Match {
	log := logger.WithFields(s.logger,
		zap.String("op", op),
		zap.String(logger.FieldUserID, userID.String()),
	)

	for _, step := range s.steps {
		if step.Name == StrategyRAG && !useRAG {
			continue
		}
		if err := ctx.Err(); err != nil {
			log.Warn("matching cancelled", zap.Error(err))
			break
		}

		stepLog := log.With(zap.String(logger.FieldStrategy, step.Name))

		matches, err := invoke(step.Matcher, call)
		if err != nil {
			stepLog.Warn("strategy failed", zap.Error(err))
			continue
		}
		if len(matches) == 0 {
			stepLog.Debug("strategy returned no matches")
			continue
		}

		stepLog.Info("strategy step", zap.Int("returned", len(matches)))
		return matches
	}
	return []types.Match{}
}

// invoke converts a panic inside a strategy into an error.
func invoke(m Matcher, call func(Matcher) ([]types.Match, error)) (matches []types.Match, err error) {
	defer func() {
		if r := recover(); r != nil {
			matches = nil
			err = fmt.Errorf("strategy panicked: %v", r)
		}
	}()
	return call(m)
}
