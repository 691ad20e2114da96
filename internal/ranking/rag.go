package ranking

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/opportunity-matcher/internal/embeddings"
	"github.com/jonathan/opportunity-matcher/internal/logger"
	"github.com/jonathan/opportunity-matcher/internal/types"
	"go.uber.org/zap"
)

// Blend of term-frequency cosine similarity and keyword overlap
const (
	cosineShare  = 0.7
	keywordShare = 0.3
)

// Reason thresholds on the raw similarity signals
const (
	strongSemanticThreshold = 0.3
	keywordAlignThreshold   = 0.2
)

// Confidence thresholds on the unscaled final score
const (
	highConfidence   = 0.70
	mediumConfidence = 0.40
)

// minMatchScore is the display score a personalized match must exceed.
const minMatchScore = 10

// maxLoggedQuery bounds the query text written to debug logs.
const maxLoggedQuery = 80

// queryBoostValue is added, before weighting, when the title or description contains the query.
const queryBoostValue = 0.15

type weights struct {
	semantic   float64
	contextual float64
	ruleBased  float64
	query      float64
}

var (
	matchWeights  = weights{semantic: 0.40, contextual: 0.45, ruleBased: 0.15}
	searchWeights = weights{semantic: 0.35, contextual: 0.40, ruleBased: 0.10, query: 0.15}
)

// Matcher scores opportunities by combining term-frequency similarity with
// contextual and rule-based scores.
type Matcher struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewMatcher creates a Matcher reading from store.
func NewMatcher(store Store, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{store: store, logger: logger, now: time.Now}
}

// WithClock replaces the time source used for deadline and recency rules.
func (m *Matcher) WithClock(now func() time.Time) *Matcher {
	m.now = now
	return m
}

// MatchOpportunities returns the best personalized matches for a user.
//
// Fetch failures and missing profiles yield an empty result and a nil error.
// The result is truncated to limit first and then stripped of scores at or below 10,
// so it can hold fewer than limit items.
func (m *Matcher) MatchOpportunities(ctx context.Context, userID uuid.UUID, limit int) ([]types.Match, error) {
	profile, opps, err := loadInputs(ctx, m.store, userID, types.OpportunityFilter{})
	if err != nil {
		m.logger.Warn("rag match: no data",
			zap.String(logger.FieldUserID, userID.String()),
			zap.Error(err),
		)
		return []types.Match{}, nil
	}

	matches, err := m.scoreCorpus(profile, ProfileEmbeddingText(profile), "", opps, matchWeights)
	if err != nil {
		return nil, err
	}

	sortMatches(matches)
	matches = truncate(matches, normalizeLimit(limit))

	filtered := make([]types.Match, 0, len(matches))
	for _, match := range matches {
		if match.Score > minMatchScore {
			filtered = append(filtered, match)
		}
	}

	m.logger.Debug("rag match complete",
		zap.String(logger.FieldUserID, userID.String()),
		zap.Int("corpus", len(opps)),
		zap.Int("returned", len(filtered)),
	)
	return filtered, nil
}

// SearchOpportunities filters the corpus by type, grade level, interests and query,
// then scores what is left. The query is appended to the profile text and boosts
// opportunities whose title or description contains it.
func (m *Matcher) SearchOpportunities(ctx context.Context, userID uuid.UUID, query string, filters *types.SearchFilters, limit int) ([]types.Match, error) {
	profile, opps, err := loadInputs(ctx, m.store, userID, typeFilter(filters))
	if err != nil {
		m.logger.Warn("rag search: no data",
			zap.String(logger.FieldUserID, userID.String()),
			zap.Error(err),
		)
		return []types.Match{}, nil
	}

	candidates := FilterOpportunities(opps, query, filters)

	profileText := ProfileEmbeddingText(profile)
	q := strings.ToLower(strings.TrimSpace(query))
	if q != "" {
		profileText = profileText + " " + q
	}

	matches, err := m.scoreCorpus(profile, profileText, q, candidates, searchWeights)
	if err != nil {
		return nil, err
	}

	sortMatches(matches)
	matches = truncate(matches, normalizeLimit(limit))

	m.logger.Debug("rag search complete",
		zap.String(logger.FieldUserID, userID.String()),
		zap.String("query", logger.TruncateForLog(q, maxLoggedQuery)),
		zap.Int("corpus", len(opps)),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(matches)),
	)
	return matches, nil
}

// scoreCorpus scores every opportunity against the profile text over one shared vocabulary.
func (m *Matcher) scoreCorpus(profile *types.Profile, profileText, query string, opps []types.Opportunity, w weights) ([]types.Match, error) {
	now := m.now()

	texts := make([]string, len(opps))
	for i := range opps {
		texts[i] = OpportunityEmbeddingText(&opps[i])
	}

	vocab := embeddings.BuildVocabulary(texts)
	profileVector := embeddings.TextToEmbedding(profileText, vocab)
	profileKeywords := embeddings.ExtractKeywords(profileText, embeddings.DefaultKeywordMinLength)

	matches := make([]types.Match, 0, len(opps))
	for i := range opps {
		opp := &opps[i]

		vector := embeddings.TextToEmbedding(texts[i], vocab)
		similarity, err := embeddings.CosineSimilarity(profileVector, vector)
		if err != nil {
			return nil, fmt.Errorf("failed to compare opportunity %s: %w", opp.ID, err)
		}
		keywordScore := embeddings.KeywordOverlapScore(profileKeywords, embeddings.ExtractKeywords(texts[i], embeddings.DefaultKeywordMinLength))
		semantic := clamp(cosineShare*similarity+keywordShare*keywordScore, 0, 1)

		contextual, contextualReasons := ContextualScore(profile, opp, now)
		ruleBased, ruleReasons := RuleBasedScore(opp, now)

		queryBoost := 0.0
		if titleOrDescriptionContains(opp, query) {
			queryBoost = queryBoostValue
		}

		final := clamp(w.semantic*semantic+w.contextual*contextual+w.ruleBased*ruleBased+w.query*queryBoost, 0, 1)

		var reasons []string
		if similarity > strongSemanticThreshold {
			reasons = append(reasons, "Strong semantic match with your profile")
		}
		if keywordScore > keywordAlignThreshold {
			reasons = append(reasons, "Keyword alignment with your profile")
		}
		reasons = append(reasons, contextualReasons...)
		reasons = append(reasons, ruleReasons...)
		if len(reasons) == 0 {
			reasons = []string{"General match"}
		}

		matches = append(matches, types.Match{
			Opportunity:     *opp,
			Score:           clamp(math.Round(final*100), 0, 100),
			Reasons:         reasons,
			SemanticScore:   float64Ptr(semantic),
			ContextualScore: float64Ptr(contextual),
			RuleBasedScore:  float64Ptr(ruleBased),
			Confidence:      confidenceTier(final),
		})
	}
	return matches, nil
}

func confidenceTier(final float64) string {
	switch {
	case final >= highConfidence:
		return types.ConfidenceHigh
	case final >= mediumConfidence:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// sortMatches orders by score, descending. Equal scores keep corpus order.
func sortMatches(matches []types.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
}

func truncate(matches []types.Match, limit int) []types.Match {
	if limit < len(matches) {
		return matches[:limit]
	}
	return matches
}

func float64Ptr(v float64) *float64 {
	return &v
}
