package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_PromotesOpportunityFields(t *testing.T) {
	m := Match{Opportunity: Opportunity{Title: "Robotics Internship", GradeLevels: []string{Grade12}}}

	assert.Equal(t, "Robotics Internship", m.Title)
	assert.False(t, m.OpenToAllGrades())
}

func TestMatch_JSONNestsOpportunity(t *testing.T) {
	semantic := 0.5
	m := Match{
		Opportunity:   Opportunity{Title: "Robotics Internship", Type: OpportunityInternship},
		Score:         72,
		Reasons:       []string{"Remote/Virtual opportunity"},
		SemanticScore: &semantic,
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "opportunity")
	assert.NotContains(t, raw, "title")
	assert.Contains(t, raw, "semantic_score")
	assert.NotContains(t, raw, "contextual_score")
	assert.NotContains(t, raw, "confidence")
}
