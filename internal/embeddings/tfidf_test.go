package embeddings

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermFrequency(t *testing.T) {
	tokens := []string{"robotics", "camp", "robotics", "lab"}
	assert.InDelta(t, 0.5, TermFrequency("robotics", tokens), 1e-9)
	assert.Equal(t, 0.0, TermFrequency("missing", tokens))
	assert.Equal(t, 0.0, TermFrequency("robotics", nil))
}

func TestInverseDocumentFrequency(t *testing.T) {
	docs := [][]string{
		{"robotics", "camp"},
		{"research", "lab"},
		{"robotics", "competition"},
		{"art", "scholarship"},
	}

	assert.InDelta(t, math.Log(4.0/3.0), InverseDocumentFrequency("robotics", docs), 1e-9)
	assert.InDelta(t, math.Log(4.0/2.0), InverseDocumentFrequency("research", docs), 1e-9)
	assert.InDelta(t, math.Log(4.0), InverseDocumentFrequency("missing", docs), 1e-9)
	assert.Equal(t, 0.0, InverseDocumentFrequency("robotics", nil))
}

func TestCalculateTFIDF_RareTermsScoreHigher(t *testing.T) {
	corpus := []string{
		"summer robotics camp",
		"summer research lab",
		"summer art scholarship",
		"summer coding bootcamp",
	}

	scores := CalculateTFIDF("summer robotics camp", corpus)

	require.Contains(t, scores, "robotics")
	require.Contains(t, scores, "summer")
	assert.Greater(t, scores["robotics"], scores["summer"])
}

func TestTopTerms(t *testing.T) {
	scores := map[string]float64{"beta": 0.2, "alpha": 0.2, "gamma": 0.9, "delta": 0.1}

	top := TopTerms(scores, 3)

	require.Len(t, top, 3)
	assert.Equal(t, "gamma", top[0].Term)
	assert.Equal(t, "alpha", top[1].Term)
	assert.Equal(t, "beta", top[2].Term)
	assert.Len(t, TopTerms(scores, 0), 4)
}
