package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/opportunity-matcher/internal/embeddings"
	"github.com/jonathan/opportunity-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.Profile{
		ID:         uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		GradeLevel: "11",
		Location:   "Boston",
		Interests:  []string{"AI", "Robotics", "Math", "Art", "Music", "Chess"},
	}

	p.PrintProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "PROFILE")
	assert.Contains(t, output, "550e8400")
	assert.Contains(t, output, "Boston")
	assert.Contains(t, output, "AI, Robotics")
	assert.Contains(t, output, "(+1 more)")
	assert.NotContains(t, output, "Chess")
}

func TestPrintProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(nil)

	assert.Empty(t, buf.String())
}

func TestPrintMatches(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	matches := []types.Match{
		{
			Opportunity: types.Opportunity{Title: "Robotics Internship", Organization: "TechCorp", Type: "internship"},
			Score:       87,
			Confidence:  types.ConfidenceHigh,
			Reasons: []string{
				"Strong semantic match with your profile",
				"Perfect grade level match (Grade 12)",
				"Remote/Virtual opportunity",
				"Featured opportunity",
			},
		},
		{
			Opportunity: types.Opportunity{Title: "Art Scholarship"},
			Score:       40,
			Reasons:     []string{"Open to all grade levels"},
		},
	}

	p.PrintMatches("PERSONALIZED MATCHES", matches)
	output := buf.String()

	assert.Contains(t, output, "PERSONALIZED MATCHES")
	assert.Contains(t, output, "Found 2 opportunities")
	assert.Contains(t, output, "#1  Robotics Internship")
	assert.Contains(t, output, "Score: 87 (high confidence)")
	assert.Contains(t, output, "internship @ TechCorp")
	assert.Contains(t, output, "... and 1 more")
	assert.NotContains(t, output, "Featured opportunity")
	assert.NotContains(t, output, "Score: 40 (")
}

func TestPrintMatches_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatches("SEARCH RESULTS", nil)

	assert.Contains(t, buf.String(), "NO MATCHING OPPORTUNITIES")
}

func TestPrintTopTerms(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTopTerms("TOP TERMS", []embeddings.TermScore{
		{Term: "robotics", Score: 0.4},
		{Term: "research", Score: 0.2},
	})
	output := buf.String()

	assert.Contains(t, output, "TOP TERMS")
	assert.Contains(t, output, " 1. robotics")
	assert.Contains(t, output, "0.2000")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
