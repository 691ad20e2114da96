package types

// Confidence tiers for RAG matches
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Match is one scored opportunity returned to callers. The opportunity is embedded
// so its fields are promoted, but it stays nested in JSON.
// Score is on a 0-100 scale; sub-scores are in [0,1] and only set by the RAG matcher.
type Match struct {
	Opportunity     `json:"opportunity"`
	Score           float64  `json:"score"`
	Reasons         []string `json:"reasons"`
	SemanticScore   *float64 `json:"semantic_score,omitempty"`
	ContextualScore *float64 `json:"contextual_score,omitempty"`
	RuleBasedScore  *float64 `json:"rule_based_score,omitempty"`
	Confidence      string   `json:"confidence,omitempty"`
}
